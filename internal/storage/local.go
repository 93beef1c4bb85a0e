package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps condition documents on the local filesystem.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(name string) string {
	// Base strips any path components a crafted name could smuggle in.
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *LocalStore) Save(_ context.Context, name string, r io.Reader) error {
	f, err := os.Create(s.path(name))
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	return f.Close()
}

func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, int64, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}

	return f, info.Size(), nil
}

var _ ConditionStore = (*LocalStore)(nil)
