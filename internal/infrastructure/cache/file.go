package cache

import (
	"context"
	"os"
	"path/filepath"
)

// FileStore keeps one file per key under dir. This is the default backend;
// it plays the role browser local storage played for the web dashboard.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrMiss
	}
	return b, err
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	return os.WriteFile(s.path(key), value, 0o600)
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
