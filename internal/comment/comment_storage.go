package comment

import (
	"github.com/VitaminP8/yatube/internal/model"
)

type CommentStorage interface {
	CreateComment(postID, authorID uint, text string) (*model.Comment, error)
	// GetComments возвращает комментарии поста, старые первыми
	GetComments(postID uint) ([]*model.Comment, error)
}
