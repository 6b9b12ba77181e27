package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/model"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/user"
)

type PostMemoryStorage struct {
	mu      sync.Mutex
	posts   map[uint]*model.Post
	nextId  uint
	lastPub time.Time
	users   user.UserStorage   // для имени автора
	groups  group.GroupStorage // для группы поста
	now     func() time.Time
}

func NewPostMemoryStorage(users user.UserStorage, groups group.GroupStorage) *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:  make(map[uint]*model.Post),
		nextId: 1,
		users:  users,
		groups: groups,
		now:    time.Now,
	}
}

func (s *PostMemoryStorage) CreatePost(authorID uint, text string, groupID *uint, image string) (*model.Post, error) {
	author, err := s.users.GetUserById(authorID)
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}
	g, err := s.lookupGroup(groupID)
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &model.Post{
		ID:         s.nextId,
		Text:       text,
		PubDate:    s.nextPubDate(),
		AuthorID:   author.ID,
		AuthorName: author.Username,
		GroupID:    copyID(groupID),
		Group:      g,
		Image:      image,
	}
	s.nextId++
	s.posts[p.ID] = p

	return clonePost(p), nil
}

// nextPubDate строго возрастает от вставки к вставке, даже если часы не сдвинулись.
// Шаг в микросекунду - точность timestamp в postgres.
func (s *PostMemoryStorage) nextPubDate() time.Time {
	now := s.now().UTC().Truncate(time.Microsecond)
	if !now.After(s.lastPub) {
		now = s.lastPub.Add(time.Microsecond)
	}
	s.lastPub = now
	return now
}

func (s *PostMemoryStorage) GetPostById(id uint) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	return clonePost(p), nil
}

func (s *PostMemoryStorage) UpdatePost(id, authorID uint, text string, groupID *uint, image string) (*model.Post, error) {
	g, err := s.lookupGroup(groupID)
	if err != nil {
		return nil, fmt.Errorf("could not update post: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists || p.AuthorID != authorID {
		return nil, fmt.Errorf("post %d of author %d: %w", id, authorID, storage.ErrNotFound)
	}

	p.Text = text
	p.GroupID = copyID(groupID)
	p.Group = g
	p.Image = image

	return clonePost(p), nil
}

func (s *PostMemoryStorage) ListPosts(filter post.Filter, limit, offset int) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.match(filter)
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].PubDate.Equal(matched[j].PubDate) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].PubDate.After(matched[j].PubDate)
	})

	if offset >= len(matched) {
		return []*model.Post{}, nil
	}
	end := len(matched)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}

	result := make([]*model.Post, 0, end-offset)
	for _, p := range matched[offset:end] {
		result = append(result, clonePost(p))
	}
	return result, nil
}

func (s *PostMemoryStorage) CountPosts(filter post.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.match(filter)), nil
}

func (s *PostMemoryStorage) match(filter post.Filter) []*model.Post {
	var authors map[uint]bool
	if filter.AuthorIDs != nil {
		authors = make(map[uint]bool, len(filter.AuthorIDs))
		for _, id := range filter.AuthorIDs {
			authors[id] = true
		}
	}

	var matched []*model.Post
	for _, p := range s.posts {
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.GroupID != nil && (p.GroupID == nil || *p.GroupID != *filter.GroupID) {
			continue
		}
		if authors != nil && !authors[p.AuthorID] {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func (s *PostMemoryStorage) lookupGroup(groupID *uint) (*model.Group, error) {
	if groupID == nil {
		return nil, nil
	}
	return s.groups.GetGroupById(*groupID)
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func clonePost(p *model.Post) *model.Post {
	out := *p
	out.GroupID = copyID(p.GroupID)
	if p.Group != nil {
		g := *p.Group
		out.Group = &g
	}
	return &out
}
