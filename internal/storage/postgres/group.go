package postgres

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/yatube/internal/model"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type GroupPostgresStorage struct {
	db *gorm.DB
}

func NewGroupPostgresStorage(db *gorm.DB) *GroupPostgresStorage {
	return &GroupPostgresStorage{db: db}
}

func (s *GroupPostgresStorage) CreateGroup(title, slug, description string) (*model.Group, error) {
	var exist models.Group
	err := s.db.Where("slug = ?", slug).First(&exist).Error
	if err == nil {
		return nil, fmt.Errorf("group %s: %w", slug, storage.ErrAlreadyExists)
	}
	if !notFound(err) {
		return nil, fmt.Errorf("failed to check group: %w", err)
	}

	g := &models.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	if err := s.db.Create(g).Error; err != nil {
		return nil, fmt.Errorf("could not create group: %w", err)
	}
	return toGroup(g), nil
}

func (s *GroupPostgresStorage) GetGroupById(id uint) (*model.Group, error) {
	var g models.Group
	err := s.db.First(&g, id).Error
	if notFound(err) {
		return nil, fmt.Errorf("group %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get group by id: %w", err)
	}
	return toGroup(&g), nil
}

func (s *GroupPostgresStorage) GetGroupBySlug(slug string) (*model.Group, error) {
	var g models.Group
	err := s.db.Where("slug = ?", slug).First(&g).Error
	if notFound(err) {
		return nil, fmt.Errorf("group %s: %w", slug, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get group by slug: %w", err)
	}
	return toGroup(&g), nil
}

func (s *GroupPostgresStorage) GetAllGroups() ([]*model.Group, error) {
	var groups []models.Group
	err := s.db.Order("title asc, id asc").Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("could not get groups: %w", err)
	}

	results := make([]*model.Group, 0, len(groups))
	for i := range groups {
		results = append(results, toGroup(&groups[i]))
	}
	return results, nil
}

func toGroup(g *models.Group) *model.Group {
	return &model.Group{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}
