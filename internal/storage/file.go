package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

type fileStore struct {
	fs   afero.Fs
	dir  string
	mu   sync.Mutex
	once sync.Once
}

// NewFileStore returns a Store that keeps each key in its own file under dir.
// This is the default backend: a single-user session persisting to local disk.
func NewFileStore(fs afero.Fs, dir string) Store {
	return &fileStore{
		fs:  fs,
		dir: dir,
	}
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileStore) ensureDir() error {
	var err error
	s.once.Do(func() {
		err = s.fs.MkdirAll(s.dir, 0o755)
	})
	return err
}

func (s *fileStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path(key), err)
	}

	return data, nil
}

func (s *fileStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDir(); err != nil {
		return fmt.Errorf("failed to create storage dir %s: %w", s.dir, err)
	}

	if err := afero.WriteFile(s.fs, s.path(key), value, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path(key), err)
	}
	return nil
}

func (s *fileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.fs.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", s.path(key), err)
	}
	return nil
}
