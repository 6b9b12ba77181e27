package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/model"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/user"
)

type CommentMemoryStorage struct {
	mu          sync.Mutex
	comments    map[uint]*model.Comment
	nextID      uint
	postStorage post.PostStorage // Хранилище постов (внедрение зависимости (DI))
	users       user.UserStorage
}

func NewCommentMemoryStorage(postStore post.PostStorage, users user.UserStorage) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments:    make(map[uint]*model.Comment),
		nextID:      1,
		postStorage: postStore,
		users:       users,
	}
}

func (s *CommentMemoryStorage) CreateComment(postID, authorID uint, text string) (*model.Comment, error) {
	if _, err := s.postStorage.GetPostById(postID); err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}
	author, err := s.users.GetUserById(authorID)
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := &model.Comment{
		ID:         s.nextID,
		Text:       text,
		Created:    time.Now().UTC(),
		AuthorID:   author.ID,
		AuthorName: author.Username,
		PostID:     postID,
	}
	s.nextID++
	s.comments[c.ID] = c

	out := *c
	return &out, nil
}

func (s *CommentMemoryStorage) GetComments(postID uint) ([]*model.Comment, error) {
	if _, err := s.postStorage.GetPostById(postID); err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*model.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			out := *c
			result = append(result, &out)
		}
	}
	// id растет вместе со временем создания
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}
