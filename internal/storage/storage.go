// Package storage keeps uploaded files on a public storage root.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"

	"github.com/spf13/afero"
)

// Storage saves and removes files addressed by slash-separated relative paths.
type Storage interface {
	Save(ctx context.Context, name string, content []byte) error
	Delete(ctx context.Context, name string) error
}

// FileStorage is an afero backed Storage.
type FileStorage struct {
	fs afero.Fs
}

// NewDisk returns a FileStorage rooted at dir on the local disk.
func NewDisk(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", dir, err)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// New returns a FileStorage on top of fs. Names are resolved from the root of fs.
func New(fs afero.Fs) *FileStorage {
	return &FileStorage{fs: fs}
}

// Save writes content to name, creating parent directories as needed.
func (s *FileStorage) Save(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name = clean(name)
	if err := s.fs.MkdirAll(path.Dir(name), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := afero.WriteFile(s.fs, name, content, 0o644); err != nil {
		return fmt.Errorf("failed to store file %s: %w", name, err)
	}
	return nil
}

// Delete removes name. A missing file is not an error.
func (s *FileStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.fs.Remove(clean(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file %s: %w", name, err)
	}
	return nil
}

// HTTPFileSystem exposes the storage root for static file serving.
func (s *FileStorage) HTTPFileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs)
}

func clean(name string) string {
	return path.Join("/", name)
}
