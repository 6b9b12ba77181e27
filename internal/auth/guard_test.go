package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VitaminP8/yatube/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestLoginRedirectURL(t *testing.T) {
	assert.Equal(t, "/auth/login/?next=/new/", LoginRedirectURL("/new/"))
	assert.Equal(t, "/auth/login/?next=/follow/%3Fpage%3D2", LoginRedirectURL("/follow/?page=2"))
}

func TestLoginRequired(t *testing.T) {
	handler := LoginRequired(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Anonymous is redirected to login with next", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/new/", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/auth/login/?next=/new/", w.Header().Get("Location"))
	})

	t.Run("Authenticated passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/new/", nil)
		req = req.WithContext(WithUserID(req.Context(), 1))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/new/", SafeNext("/new/"))
	assert.Equal(t, "/", SafeNext(""))
	assert.Equal(t, "/", SafeNext("https://evil.example"))
	assert.Equal(t, "/", SafeNext("//evil.example"))
}

func TestCanEditPost(t *testing.T) {
	p := &model.Post{ID: 1, AuthorID: 7}

	assert.True(t, CanEditPost(7, true, p))
	assert.False(t, CanEditPost(8, true, p))
	assert.False(t, CanEditPost(7, false, p))
	assert.False(t, CanEditPost(7, true, nil))
}

func TestCanFollow(t *testing.T) {
	assert.True(t, CanFollow(1, true, 2))
	assert.False(t, CanFollow(1, true, 1))
	assert.False(t, CanFollow(1, false, 2))
}
