package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentMemoryStorage_CreateComment(t *testing.T) {
	f := newFixture(t)
	vg := f.user(t, "VG")
	vgv := f.user(t, "VGV")
	comments := NewCommentMemoryStorage(f.posts, f.users)

	p, err := f.posts.CreatePost(vg.ID, "Тестовый", nil, "")
	require.NoError(t, err)

	t.Run("Successful comment creation", func(t *testing.T) {
		c, err := comments.CreateComment(p.ID, vgv.ID, "Комментарий")
		require.NoError(t, err)
		assert.NotZero(t, c.ID)
		assert.Equal(t, p.ID, c.PostID)
		assert.Equal(t, vgv.ID, c.AuthorID)
		assert.Equal(t, "VGV", c.AuthorName)
		assert.Equal(t, "Комментарий", c.Text)
		assert.False(t, c.Created.IsZero())
	})

	t.Run("Error when creating comment for non-existent post", func(t *testing.T) {
		_, err := comments.CreateComment(999, vgv.ID, "Комментарий")
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})

	t.Run("Error when author does not exist", func(t *testing.T) {
		_, err := comments.CreateComment(p.ID, 999, "Комментарий")
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
}

func TestCommentMemoryStorage_GetComments(t *testing.T) {
	f := newFixture(t)
	vg := f.user(t, "VG")
	comments := NewCommentMemoryStorage(f.posts, f.users)

	p1, err := f.posts.CreatePost(vg.ID, "Первый", nil, "")
	require.NoError(t, err)
	p2, err := f.posts.CreatePost(vg.ID, "Второй", nil, "")
	require.NoError(t, err)

	for _, text := range []string{"a", "b", "c"} {
		_, err := comments.CreateComment(p1.ID, vg.ID, text)
		require.NoError(t, err)
	}
	_, err = comments.CreateComment(p2.ID, vg.ID, "other")
	require.NoError(t, err)

	t.Run("Only comments of the post, oldest first", func(t *testing.T) {
		list, err := comments.GetComments(p1.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "a", list[0].Text)
		assert.Equal(t, "c", list[2].Text)
	})

	t.Run("Post without comments", func(t *testing.T) {
		p3, err := f.posts.CreatePost(vg.ID, "Третий", nil, "")
		require.NoError(t, err)

		list, err := comments.GetComments(p3.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Getting comments for non-existent post", func(t *testing.T) {
		_, err := comments.GetComments(999)
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
}

func TestCommentMemoryStorage_ConcurrentOperations(t *testing.T) {
	f := newFixture(t)
	vg := f.user(t, "VG")
	comments := NewCommentMemoryStorage(f.posts, f.users)

	p, err := f.posts.CreatePost(vg.ID, "Тестовый", nil, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := comments.CreateComment(p.ID, vg.ID, "concurrent")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := comments.GetComments(p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 30)
}
