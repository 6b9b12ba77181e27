package media

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestStore_Save(t *testing.T) {
	t.Run("Saves a gif under posts/", func(t *testing.T) {
		store := NewStore(t.TempDir())

		rel, err := store.Save("small.gif", bytes.NewReader(smallGIF))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(rel, "posts/"))
		assert.True(t, strings.HasSuffix(rel, ".gif"))

		data, err := os.ReadFile(filepath.Join(store.Root(), filepath.FromSlash(rel)))
		require.NoError(t, err)
		assert.Equal(t, smallGIF, data)
	})

	t.Run("Rejects unknown extension", func(t *testing.T) {
		store := NewStore(t.TempDir())

		_, err := store.Save("notes.txt", bytes.NewReader(smallGIF))
		assert.True(t, errors.Is(err, ErrInvalidType))
	})

	t.Run("Rejects non image content", func(t *testing.T) {
		store := NewStore(t.TempDir())

		_, err := store.Save("fake.png", strings.NewReader("plain text, not a picture"))
		assert.True(t, errors.Is(err, ErrInvalidType))
	})

	t.Run("Rejects too large file", func(t *testing.T) {
		store := NewStore(t.TempDir())
		big := append(append([]byte{}, smallGIF...), make([]byte, MaxImageSize)...)

		_, err := store.Save("big.gif", bytes.NewReader(big))
		assert.True(t, errors.Is(err, ErrTooLarge))
	})
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(t.TempDir())
	rel, err := store.Save("small.gif", bytes.NewReader(smallGIF))
	require.NoError(t, err)

	require.NoError(t, store.Delete(rel))
	_, err = os.Stat(filepath.Join(store.Root(), filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete("posts/missing.gif"))
	assert.NoError(t, store.Delete(""))
}
