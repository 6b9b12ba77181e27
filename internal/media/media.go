package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxImageSize = 10 << 20 // 10 MB
	postsDir     = "posts"
)

var (
	ErrTooLarge    = errors.New("file size exceeds maximum limit of 10 MB")
	ErrInvalidType = errors.New("invalid image type")
)

var validExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Store сохраняет картинки постов под корнем MEDIA_ROOT
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

// Save проверяет и записывает картинку, возвращает путь относительно корня
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !validExt[ext] {
		return "", fmt.Errorf("%w: %s", ErrInvalidType, ext)
	}

	// читаем на байт больше лимита, чтобы заметить превышение
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > MaxImageSize {
		return "", ErrTooLarge
	}
	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidType, ct)
	}

	dir := filepath.Join(s.root, postsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return postsDir + "/" + name, nil
}

func (s *Store) Delete(rel string) error {
	if rel == "" {
		return nil
	}
	path := filepath.Join(s.root, filepath.FromSlash(rel))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}
