package forms

import (
	"testing"

	"github.com/VitaminP8/yatube/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePost(t *testing.T) {
	groups := []*model.Group{{ID: 1, Slug: "test-post-slug"}, {ID: 2, Slug: "other"}}

	t.Run("Text only", func(t *testing.T) {
		out, errs := ValidatePost(PostInput{Text: "  Тестовый  "}, groups)
		require.False(t, errs.Any())
		assert.Equal(t, "Тестовый", out.Text)
		assert.Nil(t, out.GroupID)
	})

	t.Run("Text with group", func(t *testing.T) {
		out, errs := ValidatePost(PostInput{Text: "Тестовый", Group: "2"}, groups)
		require.False(t, errs.Any())
		require.NotNil(t, out.GroupID)
		assert.Equal(t, uint(2), *out.GroupID)
	})

	t.Run("Empty text", func(t *testing.T) {
		_, errs := ValidatePost(PostInput{Text: "   "}, groups)
		assert.True(t, errs.Any())
		assert.NotEmpty(t, errs.Get("text"))
	})

	t.Run("Unknown group", func(t *testing.T) {
		_, errs := ValidatePost(PostInput{Text: "Тестовый", Group: "99"}, groups)
		assert.True(t, errs.Any())
		assert.NotEmpty(t, errs.Get("group"))
	})

	t.Run("Non numeric group", func(t *testing.T) {
		_, errs := ValidatePost(PostInput{Text: "Тестовый", Group: "abc"}, groups)
		assert.NotEmpty(t, errs.Get("group"))
		assert.Empty(t, errs.Get("text"))
	})
}

func TestValidateComment(t *testing.T) {
	text, errs := ValidateComment(CommentInput{Text: " Комментарий "})
	require.False(t, errs.Any())
	assert.Equal(t, "Комментарий", text)

	_, errs = ValidateComment(CommentInput{Text: ""})
	assert.NotEmpty(t, errs.Get("text"))
}

func TestValidateSignup(t *testing.T) {
	valid := SignupInput{Username: "VG", Email: "vg@example.com", Password: "password123", Password2: "password123"}

	t.Run("Valid", func(t *testing.T) {
		out, errs := ValidateSignup(valid)
		require.False(t, errs.Any())
		assert.Equal(t, "VG", out.Username)
	})

	t.Run("Reserved username", func(t *testing.T) {
		in := valid
		in.Username = "follow"
		_, errs := ValidateSignup(in)
		assert.NotEmpty(t, errs.Get("username"))
	})

	t.Run("Username with spaces", func(t *testing.T) {
		in := valid
		in.Username = "two words"
		_, errs := ValidateSignup(in)
		assert.NotEmpty(t, errs.Get("username"))
	})

	t.Run("Bad email", func(t *testing.T) {
		in := valid
		in.Email = "not-an-email"
		_, errs := ValidateSignup(in)
		assert.NotEmpty(t, errs.Get("email"))
	})

	t.Run("Email is optional", func(t *testing.T) {
		in := valid
		in.Email = ""
		_, errs := ValidateSignup(in)
		assert.False(t, errs.Any())
	})

	t.Run("Short password", func(t *testing.T) {
		in := valid
		in.Password, in.Password2 = "short", "short"
		_, errs := ValidateSignup(in)
		assert.NotEmpty(t, errs.Get("password1"))
	})

	t.Run("Passwords differ", func(t *testing.T) {
		in := valid
		in.Password2 = "password124"
		_, errs := ValidateSignup(in)
		assert.NotEmpty(t, errs.Get("password2"))
	})
}
