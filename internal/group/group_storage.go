package group

import (
	"github.com/VitaminP8/yatube/internal/model"
)

// Группы создаются администратором, для ядра они неизменяемы.
type GroupStorage interface {
	CreateGroup(title, slug, description string) (*model.Group, error)
	GetGroupById(id uint) (*model.Group, error)
	GetGroupBySlug(slug string) (*model.Group, error)
	GetAllGroups() ([]*model.Group, error)
}
