package post

import (
	"github.com/VitaminP8/yatube/internal/model"
)

// Filter сужает выборку постов. Нулевое значение - все посты.
// AuthorIDs == nil - без ограничения по авторам, пустой срез - ни одного поста.
type Filter struct {
	AuthorID  *uint
	GroupID   *uint
	AuthorIDs []uint
}

type PostStorage interface {
	CreatePost(authorID uint, text string, groupID *uint, image string) (*model.Post, error)
	GetPostById(id uint) (*model.Post, error)
	UpdatePost(id, authorID uint, text string, groupID *uint, image string) (*model.Post, error)
	// ListPosts всегда сортирует по pub_date DESC, id DESC
	ListPosts(filter Filter, limit, offset int) ([]*model.Post, error)
	CountPosts(filter Filter) (int, error)
}

func ByAuthor(id uint) Filter {
	return Filter{AuthorID: &id}
}

func ByGroup(id uint) Filter {
	return Filter{GroupID: &id}
}

func ByAuthors(ids []uint) Filter {
	if ids == nil {
		ids = []uint{}
	}
	return Filter{AuthorIDs: ids}
}
