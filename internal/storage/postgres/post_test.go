package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
)

type fixture struct {
	db       *gorm.DB
	users    *UserPostgresStorage
	groups   *GroupPostgresStorage
	posts    *PostPostgresStorage
	comments *CommentPostgresStorage
	follows  *FollowPostgresStorage
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	return &fixture{
		db:       db,
		users:    NewUserPostgresStorage(db),
		groups:   NewGroupPostgresStorage(db),
		posts:    NewPostPostgresStorage(db),
		comments: NewCommentPostgresStorage(db),
		follows:  NewFollowPostgresStorage(db),
	}
}

// createTestUser создает тестового пользователя и возвращает его ID
func (f *fixture) createTestUser(t *testing.T, username string) uint {
	user, err := f.users.RegisterUser(username, "", "password123")
	require.NoError(t, err, "Failed to create test user")
	return user.ID
}

func (f *fixture) createTestGroup(t *testing.T, slug string) uint {
	g, err := f.groups.CreateGroup("Группа "+slug, slug, "")
	require.NoError(t, err, "Failed to create test group")
	return g.ID
}

func TestPostPostgresStorage_CreatePost(t *testing.T) {
	f := newFixture(t)
	userID := f.createTestUser(t, "author")
	groupID := f.createTestGroup(t, "test-slug")

	t.Run("Without group", func(t *testing.T) {
		p, err := f.posts.CreatePost(userID, "Тестовый пост", nil, "")
		require.NoError(t, err)
		assert.NotZero(t, p.ID)
		assert.Equal(t, "author", p.AuthorName)
		assert.Nil(t, p.GroupID)
		assert.Nil(t, p.Group)
		assert.False(t, p.PubDate.IsZero())
		assert.True(t, p.PubDate.Equal(p.PubDate.Truncate(time.Microsecond)))
	})

	t.Run("With group and image", func(t *testing.T) {
		p, err := f.posts.CreatePost(userID, "С группой", &groupID, "posts/small.gif")
		require.NoError(t, err)
		require.NotNil(t, p.Group)
		assert.Equal(t, "test-slug", p.Group.Slug)
		assert.Equal(t, "posts/small.gif", p.Image)
	})

	t.Run("Unknown author", func(t *testing.T) {
		_, err := f.posts.CreatePost(999, "Текст", nil, "")
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})

	t.Run("Unknown group", func(t *testing.T) {
		missing := uint(999)
		_, err := f.posts.CreatePost(userID, "Текст", &missing, "")
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
}

func TestPostPostgresStorage_GetPostById(t *testing.T) {
	f := newFixture(t)
	userID := f.createTestUser(t, "author")

	created, err := f.posts.CreatePost(userID, "Тестовый пост", nil, "")
	require.NoError(t, err)

	p, err := f.posts.GetPostById(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Тестовый пост", p.Text)
	assert.Equal(t, userID, p.AuthorID)

	_, err = f.posts.GetPostById(999)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestPostPostgresStorage_UpdatePost(t *testing.T) {
	f := newFixture(t)
	authorID := f.createTestUser(t, "author")
	otherID := f.createTestUser(t, "other")
	groupID := f.createTestGroup(t, "test-slug")

	created, err := f.posts.CreatePost(authorID, "Исходный текст", &groupID, "posts/a.gif")
	require.NoError(t, err)

	t.Run("Author edits text and clears group", func(t *testing.T) {
		p, err := f.posts.UpdatePost(created.ID, authorID, "Новый текст", nil, "posts/a.gif")
		require.NoError(t, err)
		assert.Equal(t, "Новый текст", p.Text)
		assert.Nil(t, p.GroupID)
		assert.Equal(t, created.PubDate.Unix(), p.PubDate.Unix())
	})

	t.Run("Other user cannot edit", func(t *testing.T) {
		_, err := f.posts.UpdatePost(created.ID, otherID, "Чужой текст", nil, "")
		assert.True(t, errors.Is(err, storage.ErrNotFound))

		p, err := f.posts.GetPostById(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Новый текст", p.Text)
	})

	t.Run("Missing post", func(t *testing.T) {
		_, err := f.posts.UpdatePost(999, authorID, "Текст", nil, "")
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
}

func TestPostPostgresStorage_ListPosts(t *testing.T) {
	f := newFixture(t)
	authorID := f.createTestUser(t, "author")
	otherID := f.createTestUser(t, "other")
	groupID := f.createTestGroup(t, "test-slug")

	for i := 0; i < 13; i++ {
		_, err := f.posts.CreatePost(authorID, fmt.Sprintf("Пост %d", i), &groupID, "")
		require.NoError(t, err)
	}
	_, err := f.posts.CreatePost(otherID, "Пост без группы", nil, "")
	require.NoError(t, err)

	t.Run("Newest first with limit and offset", func(t *testing.T) {
		first, err := f.posts.ListPosts(post.Filter{}, 10, 0)
		require.NoError(t, err)
		require.Len(t, first, 10)
		assert.Equal(t, "Пост без группы", first[0].Text)
		assert.Equal(t, "Пост 12", first[1].Text)

		second, err := f.posts.ListPosts(post.Filter{}, 10, 10)
		require.NoError(t, err)
		require.Len(t, second, 4)
		assert.Equal(t, "Пост 0", second[3].Text)
	})

	t.Run("By group", func(t *testing.T) {
		count, err := f.posts.CountPosts(post.ByGroup(groupID))
		require.NoError(t, err)
		assert.Equal(t, 13, count)

		posts, err := f.posts.ListPosts(post.ByGroup(groupID), 10, 10)
		require.NoError(t, err)
		assert.Len(t, posts, 3)
		for _, p := range posts {
			require.NotNil(t, p.Group)
			assert.Equal(t, "test-slug", p.Group.Slug)
		}
	})

	t.Run("By author", func(t *testing.T) {
		count, err := f.posts.CountPosts(post.ByAuthor(otherID))
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("By authors", func(t *testing.T) {
		count, err := f.posts.CountPosts(post.ByAuthors([]uint{authorID, otherID}))
		require.NoError(t, err)
		assert.Equal(t, 14, count)
	})

	t.Run("Empty authors set matches nothing", func(t *testing.T) {
		count, err := f.posts.CountPosts(post.ByAuthors(nil))
		require.NoError(t, err)
		assert.Zero(t, count)

		posts, err := f.posts.ListPosts(post.ByAuthors([]uint{}), 10, 0)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("Total count", func(t *testing.T) {
		count, err := f.posts.CountPosts(post.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 14, count)
	})
}
