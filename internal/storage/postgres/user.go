package postgres

import (
	"fmt"

	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"

	"github.com/VitaminP8/yatube/internal/model"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type UserPostgresStorage struct {
	db *gorm.DB
}

func NewUserPostgresStorage(db *gorm.DB) *UserPostgresStorage {
	return &UserPostgresStorage{db: db}
}

func (s *UserPostgresStorage) RegisterUser(username, email, password string) (*model.User, error) {
	// проверка - существует ли такой пользователь
	var existUser models.User
	err := s.db.Where("username = ?", username).First(&existUser).Error
	if err == nil {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrAlreadyExists)
	}
	if !notFound(err) {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}

	// уникальный индекс на username страхует от гонки между проверкой и вставкой
	err = s.db.Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toUser(user), nil
}

func (s *UserPostgresStorage) Authenticate(username, password string) (*model.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if notFound(err) {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("password for user %s is incorrect", username)
	}

	return toUser(&user), nil
}

func (s *UserPostgresStorage) GetUserById(id uint) (*model.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if notFound(err) {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}
	return toUser(&user), nil
}

func (s *UserPostgresStorage) GetUserByUsername(username string) (*model.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if notFound(err) {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by username: %w", err)
	}
	return toUser(&user), nil
}

func toUser(u *models.User) *model.User {
	return &model.User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
