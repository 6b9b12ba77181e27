package postgres

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/yatube/internal/model"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type CommentPostgresStorage struct {
	db *gorm.DB
}

func NewCommentPostgresStorage(db *gorm.DB) *CommentPostgresStorage {
	return &CommentPostgresStorage{db: db}
}

func (s *CommentPostgresStorage) CreateComment(postID, authorID uint, text string) (*model.Comment, error) {
	if err := s.checkPost(postID); err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	var author models.User
	err := s.db.First(&author, authorID).Error
	if notFound(err) {
		return nil, fmt.Errorf("could not create comment: author %d: %w", authorID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	c := &models.Comment{
		Text:     text,
		Created:  time.Now().UTC(),
		AuthorID: authorID,
		PostID:   postID,
	}

	err = s.db.Create(c).Error
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	c.Author = author
	return toComment(c), nil
}

func (s *CommentPostgresStorage) GetComments(postID uint) ([]*model.Comment, error) {
	if err := s.checkPost(postID); err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	var comments []models.Comment
	err := s.db.Where("post_id = ?", postID).
		Preload("Author").
		Order("created asc").
		Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	results := make([]*model.Comment, 0, len(comments))
	for i := range comments {
		results = append(results, toComment(&comments[i]))
	}
	return results, nil
}

func (s *CommentPostgresStorage) checkPost(postID uint) error {
	err := s.db.First(&models.Post{}, postID).Error
	if notFound(err) {
		return fmt.Errorf("post %d: %w", postID, storage.ErrNotFound)
	}
	return err
}

func toComment(c *models.Comment) *model.Comment {
	return &model.Comment{
		ID:         c.ID,
		Text:       c.Text,
		Created:    c.Created,
		AuthorID:   c.AuthorID,
		AuthorName: c.Author.Username,
		PostID:     c.PostID,
	}
}
