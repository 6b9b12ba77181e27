package memory

import (
	"fmt"
	"sync"

	"github.com/VitaminP8/yatube/internal/model"
	"github.com/VitaminP8/yatube/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type UserMemoryStorage struct {
	mu        sync.Mutex
	users     map[string]*model.User // username -> user
	byID      map[uint]*model.User
	passwords map[string]string
	nextId    uint
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:     make(map[string]*model.User),
		byID:      make(map[uint]*model.User),
		passwords: make(map[string]string),
		nextId:    1,
	}
}

func (s *UserMemoryStorage) RegisterUser(username, email, password string) (*model.User, error) {
	// bcrypt медленный, хэшируем до захвата мьютекса
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrAlreadyExists)
	}

	user := &model.User{
		ID:       s.nextId,
		Username: username,
		Email:    email,
	}
	s.nextId++

	s.users[username] = user
	s.byID[user.ID] = user
	s.passwords[username] = string(hashedPassword)

	u := *user
	return &u, nil
}

func (s *UserMemoryStorage) Authenticate(username, password string) (*model.User, error) {
	s.mu.Lock()
	user, exists := s.users[username]
	hashedPassword := s.passwords[username]
	s.mu.Unlock()

	if !exists {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("password for user %s is incorrect", username)
	}

	u := *user
	return &u, nil
}

func (s *UserMemoryStorage) GetUserById(id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.byID[id]
	if !exists {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	u := *user
	return &u, nil
}

func (s *UserMemoryStorage) GetUserByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
	}
	u := *user
	return &u, nil
}
