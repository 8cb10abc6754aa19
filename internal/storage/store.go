// Package storage keeps the stand-in files written by the server rendition,
// either on the local filesystem or in a MinIO bucket.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ytget/playlist-demo/internal/platform"
)

// ErrInvalidName is returned for file names that are not a plain base name.
var ErrInvalidName = errors.New("invalid file name")

// ErrNotFound is returned when a stored file does not exist.
var ErrNotFound = errors.New("file not found")

// Store persists stand-in files per session.
type Store interface {
	Saver(sessionID string, faults platform.FaultInjector) platform.Saver
	Read(ctx context.Context, sessionID, name string) ([]byte, error)
	RemoveSession(ctx context.Context, sessionID string) error
}

// LocalStore keeps files under Root/<session id>/.
type LocalStore struct {
	Root string
}

// NewLocalStore creates a store rooted at root
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

// Saver returns a file saver writing into the session's directory.
func (s *LocalStore) Saver(sessionID string, faults platform.FaultInjector) platform.Saver {
	return platform.NewFileSaver(filepath.Join(s.Root, sessionID), faults)
}

// Read returns the content of a saved file.
func (s *LocalStore) Read(_ context.Context, sessionID, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.Root, sessionID, name))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, errors.Wrap(err, "read stored file")
}

// RemoveSession deletes the session's directory.
func (s *LocalStore) RemoveSession(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return os.RemoveAll(filepath.Join(s.Root, sessionID))
}

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return ErrInvalidName
	}
	return nil
}
