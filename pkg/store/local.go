package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// LocalStore keeps objects as files under a root directory. Keys map to
// slash-separated relative paths.
type LocalStore struct {
	dir string

	mu        sync.Mutex
	connected bool
}

// NewLocalStore returns a store rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Connect creates the root directory.
func (l *LocalStore) Connect(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}
	l.connected = true
	return nil
}

// IsConnected reports whether Connect has created the root directory.
func (l *LocalStore) IsConnected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connected
}

// Exists reports whether key is a regular file under the root.
func (l *LocalStore) Exists(_ context.Context, key string) (bool, error) {
	info, err := os.Stat(l.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// Get reads the file for key. It returns [ErrNotFound] when it is missing.
func (l *LocalStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(l.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

// Put writes through a temp file and rename so readers never see a partial object.
func (l *LocalStore) Put(_ context.Context, key string, data []byte) error {
	path := l.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Location returns the file path for key.
func (l *LocalStore) Location(key string) string { return l.path(key) }

// Close does nothing.
func (l *LocalStore) Close(context.Context) error { return nil }

func (l *LocalStore) path(key string) string {
	return filepath.Join(l.dir, filepath.FromSlash(key))
}
