// Package model содержит типы, которые хранилища отдают наружу: ленте, сервису и шаблонам.
package model

import "time"

type User struct {
	ID       uint
	Username string
	Email    string
}

type Group struct {
	ID          uint
	Title       string
	Slug        string
	Description string
}

func (g *Group) String() string {
	return g.Title
}

type Post struct {
	ID         uint
	Text       string
	PubDate    time.Time
	AuthorID   uint
	AuthorName string
	GroupID    *uint
	Group      *Group
	Image      string
}

func (p *Post) String() string {
	return p.Text
}

type Comment struct {
	ID         uint
	Text       string
	Created    time.Time
	AuthorID   uint
	AuthorName string
	PostID     uint
}

type Follow struct {
	ID       uint
	UserID   uint
	AuthorID uint
}
