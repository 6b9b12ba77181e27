package user

import (
	"github.com/VitaminP8/yatube/internal/model"
)

type UserStorage interface {
	RegisterUser(username, email, password string) (*model.User, error)
	Authenticate(username, password string) (*model.User, error)
	GetUserById(id uint) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
}
