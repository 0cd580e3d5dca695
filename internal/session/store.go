package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore хранит токен в файле, доступном только владельцу
type FileStore struct {
	path string
}

// NewFileStore создает хранилище токена в файле path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load возвращает сохранённый токен или пустую строку, если файла нет
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrStore, s.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save перезаписывает файл токеном
func (s *FileStore) Save(token string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: create dir %s: %v", ErrStore, dir, err)
		}
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStore, s.path, err)
	}
	return nil
}

// Clear удаляет файл; отсутствие файла не ошибка
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %v", ErrStore, s.path, err)
	}
	return nil
}
