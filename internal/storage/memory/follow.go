package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/VitaminP8/yatube/internal/storage"
)

type followKey struct {
	user, author uint
}

// FollowMemoryStorage - множество ребер (user, author); составной ключ дает уникальность
type FollowMemoryStorage struct {
	mu    sync.Mutex
	edges map[followKey]struct{}
}

func NewFollowMemoryStorage() *FollowMemoryStorage {
	return &FollowMemoryStorage{
		edges: make(map[followKey]struct{}),
	}
}

func (s *FollowMemoryStorage) CreateFollow(userID, authorID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey{userID, authorID}
	if _, exists := s.edges[key]; exists {
		return fmt.Errorf("follow %d -> %d: %w", userID, authorID, storage.ErrAlreadyExists)
	}
	s.edges[key] = struct{}{}
	return nil
}

func (s *FollowMemoryStorage) DeleteFollow(userID, authorID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey{userID, authorID}
	if _, exists := s.edges[key]; !exists {
		return fmt.Errorf("follow %d -> %d: %w", userID, authorID, storage.ErrNotFound)
	}
	delete(s.edges, key)
	return nil
}

func (s *FollowMemoryStorage) IsFollowing(userID, authorID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.edges[followKey{userID, authorID}]
	return exists, nil
}

func (s *FollowMemoryStorage) GetFollowedAuthorIds(userID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []uint{}
	for key := range s.edges {
		if key.user == userID {
			ids = append(ids, key.author)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
