// Package service выполняет изменяющие действия: посты, комментарии, подписки и учетные записи.
// Каждое действие проверяет права, затем форму, затем пишет в хранилище одной операцией.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/comment"
	"github.com/VitaminP8/yatube/internal/follow"
	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/model"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/user"
)

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following")
)

// ValidationError - форма не прошла проверку, Fields уходят обратно в шаблон
type ValidationError struct {
	Fields forms.FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return "invalid form fields: " + strings.Join(keys, ", ")
}

func invalid(field, msg string) *ValidationError {
	errs := forms.FieldErrors{}
	errs.Add(field, msg)
	return &ValidationError{Fields: errs}
}

// Image - загруженный файл из формы поста
type Image struct {
	Filename string
	Body     io.Reader
}

type Service struct {
	Posts    post.PostStorage
	Groups   group.GroupStorage
	Users    user.UserStorage
	Comments comment.CommentStorage
	Follows  follow.FollowStorage
	Media    *media.Store

	JWTSecret  string
	SessionTTL time.Duration
}

func (s *Service) CreatePost(ctx context.Context, in forms.PostInput, img *Image) (*model.Post, error) {
	authorID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	valid, err := s.validatePost(in)
	if err != nil {
		return nil, err
	}

	image, err := s.saveImage(img)
	if err != nil {
		return nil, err
	}

	p, err := s.Posts.CreatePost(authorID, valid.Text, valid.GroupID, image)
	if err != nil {
		s.dropImage(image)
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	log.WithFields(log.Fields{"post_id": p.ID, "author_id": authorID}).Info("post created")
	return p, nil
}

// EditPost меняет текст, группу и, если прислана, картинку. Автор и pub_date остаются прежними.
// Пост не автора username - ErrNotFound, чужой пост или аноним - auth.ErrForbidden.
func (s *Service) EditPost(ctx context.Context, username string, postID uint, in forms.PostInput, img *Image) (*model.Post, error) {
	p, err := s.EditablePost(ctx, username, postID)
	if err != nil {
		return nil, err
	}
	viewerID := p.AuthorID

	valid, err := s.validatePost(in)
	if err != nil {
		return nil, err
	}

	image := p.Image
	if img != nil {
		image, err = s.saveImage(img)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.Posts.UpdatePost(p.ID, viewerID, valid.Text, valid.GroupID, image)
	if err != nil {
		if image != p.Image {
			s.dropImage(image)
		}
		return nil, fmt.Errorf("could not update post: %w", err)
	}
	if image != p.Image {
		s.dropImage(p.Image)
	}

	log.WithFields(log.Fields{"post_id": p.ID, "author_id": viewerID}).Info("post updated")
	return updated, nil
}

// EditablePost находит пост по адресу /username/postID/ и проверяет, что зритель его автор.
// При ErrForbidden пост тоже возвращается.
func (s *Service) EditablePost(ctx context.Context, username string, postID uint) (*model.Post, error) {
	p, err := s.Posts.GetPostById(postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorName != username {
		return nil, fmt.Errorf("post %d of %s: %w", postID, username, storage.ErrNotFound)
	}

	viewerID, err := auth.GetUserIDFromContext(ctx)
	if !auth.CanEditPost(viewerID, err == nil, p) {
		return p, fmt.Errorf("post %d: %w", postID, auth.ErrForbidden)
	}
	return p, nil
}

func (s *Service) AddComment(ctx context.Context, username string, postID uint, in forms.CommentInput) (*model.Comment, error) {
	authorID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.Posts.GetPostById(postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorName != username {
		return nil, fmt.Errorf("post %d of %s: %w", postID, username, storage.ErrNotFound)
	}

	text, errs := forms.ValidateComment(in)
	if errs.Any() {
		return nil, &ValidationError{Fields: errs}
	}

	c, err := s.Comments.CreateComment(p.ID, authorID, text)
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}
	return c, nil
}

func (s *Service) Follow(ctx context.Context, username string) error {
	viewerID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	author, err := s.Users.GetUserByUsername(username)
	if err != nil {
		return err
	}
	if !auth.CanFollow(viewerID, true, author.ID) {
		return ErrSelfFollow
	}

	err = s.Follows.CreateFollow(viewerID, author.ID)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return fmt.Errorf("%s: %w", username, ErrAlreadyFollowing)
	}
	if err != nil {
		return fmt.Errorf("could not follow: %w", err)
	}

	log.WithFields(log.Fields{"user_id": viewerID, "author_id": author.ID}).Info("follow created")
	return nil
}

// Unfollow удаляет подписку, отсутствующая подписка - storage.ErrNotFound
func (s *Service) Unfollow(ctx context.Context, username string) error {
	viewerID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	author, err := s.Users.GetUserByUsername(username)
	if err != nil {
		return err
	}

	if err := s.Follows.DeleteFollow(viewerID, author.ID); err != nil {
		return err
	}

	log.WithFields(log.Fields{"user_id": viewerID, "author_id": author.ID}).Info("follow deleted")
	return nil
}

func (s *Service) Signup(in forms.SignupInput) (*model.User, error) {
	valid, errs := forms.ValidateSignup(in)
	if errs.Any() {
		return nil, &ValidationError{Fields: errs}
	}

	u, err := s.Users.RegisterUser(valid.Username, valid.Email, valid.Password)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return nil, invalid("username", "Пользователь с таким именем уже существует.")
	}
	if err != nil {
		return nil, fmt.Errorf("could not register user: %w", err)
	}

	log.WithField("user_id", u.ID).Info("user registered")
	return u, nil
}

// Login проверяет пароль и выдает токен сессии
func (s *Service) Login(username, password string) (*model.User, string, error) {
	u, err := s.Users.Authenticate(strings.TrimSpace(username), password)
	if err != nil {
		log.WithField("username", username).Debugf("login failed: %v", err)
		return nil, "", invalid("__all__", "Пожалуйста, введите правильные имя пользователя и пароль.")
	}

	token, err := auth.IssueToken(s.JWTSecret, u.ID, u.Username, s.SessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("could not issue token: %w", err)
	}
	return u, token, nil
}

// Viewer возвращает текущего пользователя или nil для анонима
func (s *Service) Viewer(ctx context.Context) (*model.User, error) {
	id, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, nil
	}
	u, err := s.Users.GetUserById(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *Service) validatePost(in forms.PostInput) (forms.ValidatedPost, error) {
	groups, err := s.Groups.GetAllGroups()
	if err != nil {
		return forms.ValidatedPost{}, fmt.Errorf("could not get groups: %w", err)
	}
	valid, errs := forms.ValidatePost(in, groups)
	if errs.Any() {
		return forms.ValidatedPost{}, &ValidationError{Fields: errs}
	}
	return valid, nil
}

func (s *Service) saveImage(img *Image) (string, error) {
	if img == nil {
		return "", nil
	}
	if s.Media == nil {
		return "", errors.New("media storage not configured")
	}

	rel, err := s.Media.Save(img.Filename, img.Body)
	switch {
	case errors.Is(err, media.ErrTooLarge):
		return "", invalid("image", "Размер файла не должен превышать 10 МБ.")
	case errors.Is(err, media.ErrInvalidType):
		return "", invalid("image", "Загрузите правильное изображение.")
	case err != nil:
		return "", fmt.Errorf("could not save image: %w", err)
	}
	return rel, nil
}

func (s *Service) dropImage(rel string) {
	if rel == "" || s.Media == nil {
		return
	}
	if err := s.Media.Delete(rel); err != nil {
		log.WithError(err).WithField("image", rel).Warn("could not delete image")
	}
}
