package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/VitaminP8/yatube/internal/model"
	"github.com/VitaminP8/yatube/internal/storage"
)

type GroupMemoryStorage struct {
	mu     sync.Mutex
	groups map[uint]*model.Group
	slugs  map[string]uint
	nextId uint
}

func NewGroupMemoryStorage() *GroupMemoryStorage {
	return &GroupMemoryStorage{
		groups: make(map[uint]*model.Group),
		slugs:  make(map[string]uint),
		nextId: 1,
	}
}

func (s *GroupMemoryStorage) CreateGroup(title, slug, description string) (*model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.slugs[slug]; exists {
		return nil, fmt.Errorf("group %s: %w", slug, storage.ErrAlreadyExists)
	}

	g := &model.Group{
		ID:          s.nextId,
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	s.nextId++

	s.groups[g.ID] = g
	s.slugs[slug] = g.ID

	out := *g
	return &out, nil
}

func (s *GroupMemoryStorage) GetGroupById(id uint) (*model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, exists := s.groups[id]
	if !exists {
		return nil, fmt.Errorf("group %d: %w", id, storage.ErrNotFound)
	}
	out := *g
	return &out, nil
}

func (s *GroupMemoryStorage) GetGroupBySlug(slug string) (*model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.slugs[slug]
	if !exists {
		return nil, fmt.Errorf("group %s: %w", slug, storage.ErrNotFound)
	}
	out := *s.groups[id]
	return &out, nil
}

func (s *GroupMemoryStorage) GetAllGroups() ([]*model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make([]*model.Group, 0, len(s.groups))
	for _, g := range s.groups {
		out := *g
		groups = append(groups, &out)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Title == groups[j].Title {
			return groups[i].ID < groups[j].ID
		}
		return groups[i].Title < groups[j].Title
	})
	return groups, nil
}
