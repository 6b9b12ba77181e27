package postgres

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/yatube/internal/model"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type PostPostgresStorage struct {
	db *gorm.DB
}

func NewPostPostgresStorage(db *gorm.DB) *PostPostgresStorage {
	return &PostPostgresStorage{db: db}
}

func (s *PostPostgresStorage) CreatePost(authorID uint, text string, groupID *uint, image string) (*model.Post, error) {
	if err := s.checkRefs(authorID, groupID); err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	p := &models.Post{
		Text:     text,
		PubDate:  time.Now().UTC().Truncate(time.Microsecond),
		AuthorID: authorID,
		GroupID:  groupID,
		Image:    image,
	}

	err := s.db.Create(p).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return s.GetPostById(p.ID)
}

func (s *PostPostgresStorage) GetPostById(id uint) (*model.Post, error) {
	var p models.Post
	err := s.db.Preload("Author").Preload("Group").First(&p, id).Error
	if notFound(err) {
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}
	return toPost(&p), nil
}

// UpdatePost - один UPDATE с условием на автора: чужой пост не меняется ни при каких гонках
func (s *PostPostgresStorage) UpdatePost(id, authorID uint, text string, groupID *uint, image string) (*model.Post, error) {
	if err := s.checkRefs(authorID, groupID); err != nil {
		return nil, fmt.Errorf("could not update post: %w", err)
	}

	fields := map[string]interface{}{
		"text":     text,
		"group_id": nil,
		"image":    image,
	}
	if groupID != nil {
		fields["group_id"] = *groupID
	}

	res := s.db.Model(&models.Post{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("could not update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("post %d of author %d: %w", id, authorID, storage.ErrNotFound)
	}

	return s.GetPostById(id)
}

func (s *PostPostgresStorage) ListPosts(filter post.Filter, limit, offset int) ([]*model.Post, error) {
	if filter.AuthorIDs != nil && len(filter.AuthorIDs) == 0 {
		return []*model.Post{}, nil
	}

	var posts []models.Post
	err := s.filtered(filter).
		Preload("Author").
		Preload("Group").
		Order("pub_date desc").
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	results := make([]*model.Post, 0, len(posts))
	for i := range posts {
		results = append(results, toPost(&posts[i]))
	}
	return results, nil
}

func (s *PostPostgresStorage) CountPosts(filter post.Filter) (int, error) {
	if filter.AuthorIDs != nil && len(filter.AuthorIDs) == 0 {
		return 0, nil
	}

	var count int
	err := s.filtered(filter).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count posts: %w", err)
	}
	return count, nil
}

func (s *PostPostgresStorage) filtered(filter post.Filter) *gorm.DB {
	q := s.db.Model(&models.Post{})
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.GroupID != nil {
		q = q.Where("group_id = ?", *filter.GroupID)
	}
	if filter.AuthorIDs != nil {
		q = q.Where("author_id IN (?)", filter.AuthorIDs)
	}
	return q
}

// checkRefs проверяет внешние ключи: AutoMigrate в gorm v1 не создает FOREIGN KEY
func (s *PostPostgresStorage) checkRefs(authorID uint, groupID *uint) error {
	err := s.db.First(&models.User{}, authorID).Error
	if notFound(err) {
		return fmt.Errorf("author %d: %w", authorID, storage.ErrNotFound)
	}
	if err != nil {
		return err
	}

	if groupID == nil {
		return nil
	}
	err = s.db.First(&models.Group{}, *groupID).Error
	if notFound(err) {
		return fmt.Errorf("group %d: %w", *groupID, storage.ErrNotFound)
	}
	return err
}

func toPost(p *models.Post) *model.Post {
	result := &model.Post{
		ID:         p.ID,
		Text:       p.Text,
		PubDate:    p.PubDate,
		AuthorID:   p.AuthorID,
		AuthorName: p.Author.Username,
		Image:      p.Image,
	}
	if p.GroupID != nil {
		id := *p.GroupID
		result.GroupID = &id
	}
	if p.Group != nil {
		result.Group = toGroup(p.Group)
	}
	return result
}
