package models

import (
	"time"
)

// User принадлежит внешней подсистеме аутентификации, ядро только ссылается на него.
type User struct {
	ID        uint   `gorm:"primary_key"`
	Username  string `gorm:"unique;not null"`
	Email     string
	Password  string
	CreatedAt time.Time
	Posts     []Post    `gorm:"foreignkey:AuthorID"`
	Comments  []Comment `gorm:"foreignkey:AuthorID"`
}

type Group struct {
	ID          uint   `gorm:"primary_key"`
	Title       string `gorm:"not null"`
	Slug        string `gorm:"unique;not null"`
	Description string `gorm:"type:text"`
	Posts       []Post `gorm:"foreignkey:GroupID"`
}

type Post struct {
	ID       uint      `gorm:"primary_key"`
	Text     string    `gorm:"type:text;not null"`
	PubDate  time.Time `gorm:"index;not null"`
	AuthorID uint      `gorm:"index;not null"`
	Author   User      `gorm:"foreignkey:AuthorID"`
	GroupID  *uint     `gorm:"index"`
	Group    *Group    `gorm:"foreignkey:GroupID"`
	Image    string
	Comments []Comment `gorm:"foreignkey:PostID"`
}

type Comment struct {
	ID       uint      `gorm:"primary_key"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"not null"`
	AuthorID uint      `gorm:"not null"`
	Author   User      `gorm:"foreignkey:AuthorID"`
	PostID   uint      `gorm:"index;not null"`
}

// Follow - ребро подписки user -> author. Без DeletedAt: отписка удаляет строку физически,
// иначе уникальный индекс не даст подписаться повторно.
type Follow struct {
	ID        uint `gorm:"primary_key"`
	UserID    uint `gorm:"not null;unique_index:idx_follow_user_author"`
	AuthorID  uint `gorm:"not null;unique_index:idx_follow_user_author;index"`
	CreatedAt time.Time
}
