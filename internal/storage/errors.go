// Package storage объединяет общие для всех бэкендов ошибки.
// Реализации лежат в подпакетах memory и postgres.
package storage

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)
