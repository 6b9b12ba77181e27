// Package feed собирает упорядоченные постраничные ленты постов: общую, группы, профиля и подписок.
//
// Порядок у всех лент один: pub_date по убыванию, при равенстве id по убыванию.
// Общая лента дополнительно кешируется целиком отрисованной страницей.
package feed

import (
	"fmt"

	"github.com/VitaminP8/yatube/internal/cache"
	"github.com/VitaminP8/yatube/internal/comment"
	"github.com/VitaminP8/yatube/internal/follow"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/model"
	"github.com/VitaminP8/yatube/internal/paginator"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/user"
)

// Page - одна страница ленты
type Page struct {
	Posts []*model.Post
	Count int
	paginator.Bounds
}

type GroupPage struct {
	Page
	Group *model.Group
}

type ProfilePage struct {
	Page
	Author    *model.User
	PostCount int
	// Following - зритель уже подписан на автора
	Following bool
}

// PostView - страница одного поста с комментариями
type PostView struct {
	Post      *model.Post
	Author    *model.User
	PostCount int
	Comments  []*model.Comment
}

type Assembler struct {
	Posts    post.PostStorage
	Groups   group.GroupStorage
	Users    user.UserStorage
	Comments comment.CommentStorage
	Follows  follow.FollowStorage
	PageSize int
	// Cache хранит отрисованные страницы общей ленты, может быть nil
	Cache *cache.PageCache
}

func (a *Assembler) Global(page string) (*Page, error) {
	return a.page(post.Filter{}, page)
}

func (a *Assembler) Group(slug, page string) (*GroupPage, error) {
	g, err := a.Groups.GetGroupBySlug(slug)
	if err != nil {
		return nil, err
	}

	p, err := a.page(post.ByGroup(g.ID), page)
	if err != nil {
		return nil, err
	}
	return &GroupPage{Page: *p, Group: g}, nil
}

// Profile собирает ленту автора. Для анонима и для самого автора Following всегда false.
func (a *Assembler) Profile(username string, viewerID uint, authenticated bool, page string) (*ProfilePage, error) {
	author, err := a.Users.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	p, err := a.page(post.ByAuthor(author.ID), page)
	if err != nil {
		return nil, err
	}

	result := &ProfilePage{Page: *p, Author: author, PostCount: p.Count}
	if authenticated && viewerID != author.ID {
		result.Following, err = a.Follows.IsFollowing(viewerID, author.ID)
		if err != nil {
			return nil, fmt.Errorf("could not check following: %w", err)
		}
	}
	return result, nil
}

// Following - посты авторов, на которых подписан зритель. Без подписок - пустая страница.
func (a *Assembler) Following(viewerID uint, page string) (*Page, error) {
	ids, err := a.Follows.GetFollowedAuthorIds(viewerID)
	if err != nil {
		return nil, fmt.Errorf("could not get followed authors: %w", err)
	}
	return a.page(post.ByAuthors(ids), page)
}

// Post возвращает пост username/postID. Пост чужого автора считается отсутствующим.
func (a *Assembler) Post(username string, postID uint) (*PostView, error) {
	author, err := a.Users.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	p, err := a.Posts.GetPostById(postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != author.ID {
		return nil, fmt.Errorf("post %d of %s: %w", postID, username, storage.ErrNotFound)
	}

	count, err := a.Posts.CountPosts(post.ByAuthor(author.ID))
	if err != nil {
		return nil, fmt.Errorf("could not count posts: %w", err)
	}

	comments, err := a.Comments.GetComments(p.ID)
	if err != nil {
		return nil, err
	}

	return &PostView{Post: p, Author: author, PostCount: count, Comments: comments}, nil
}

// CachedGlobal отдает отрисованную страницу общей ленты из кеша или рисует ее через render.
// Ошибки render не кешируются.
func (a *Assembler) CachedGlobal(key string, render func() ([]byte, error)) ([]byte, bool, error) {
	if a.Cache != nil {
		if body, ok := a.Cache.Get(key); ok {
			return body, true, nil
		}
	}

	body, err := render()
	if err != nil {
		return nil, false, err
	}
	if a.Cache != nil {
		a.Cache.Put(key, body)
	}
	return body, false, nil
}

func (a *Assembler) page(filter post.Filter, raw string) (*Page, error) {
	count, err := a.Posts.CountPosts(filter)
	if err != nil {
		return nil, fmt.Errorf("could not count posts: %w", err)
	}

	bounds := paginator.New(count, a.PageSize).Page(raw)
	posts := []*model.Post{}
	if bounds.Limit > 0 {
		posts, err = a.Posts.ListPosts(filter, bounds.Limit, bounds.Offset)
		if err != nil {
			return nil, fmt.Errorf("could not list posts: %w", err)
		}
	}

	return &Page{Posts: posts, Count: count, Bounds: bounds}, nil
}
