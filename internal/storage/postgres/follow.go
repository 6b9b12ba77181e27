package postgres

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type FollowPostgresStorage struct {
	db *gorm.DB
}

func NewFollowPostgresStorage(db *gorm.DB) *FollowPostgresStorage {
	return &FollowPostgresStorage{db: db}
}

func (s *FollowPostgresStorage) CreateFollow(userID, authorID uint) error {
	// одна вставка: повтор отклоняет уникальный индекс (user_id, author_id)
	err := s.db.Create(&models.Follow{UserID: userID, AuthorID: authorID}).Error
	if uniqueViolation(err) {
		return fmt.Errorf("follow %d -> %d: %w", userID, authorID, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("could not create follow: %w", err)
	}
	return nil
}

func (s *FollowPostgresStorage) DeleteFollow(userID, authorID uint) error {
	res := s.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	if res.Error != nil {
		return fmt.Errorf("could not delete follow: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow %d -> %d: %w", userID, authorID, storage.ErrNotFound)
	}
	return nil
}

func (s *FollowPostgresStorage) IsFollowing(userID, authorID uint) (bool, error) {
	var count int
	err := s.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("could not check follow: %w", err)
	}
	return count > 0, nil
}

func (s *FollowPostgresStorage) GetFollowedAuthorIds(userID uint) ([]uint, error) {
	ids := []uint{}
	err := s.db.Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Order("author_id asc").
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("could not get followed authors: %w", err)
	}
	return ids, nil
}
