package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore persists uploaded files and hands back an opaque reference.
type FileStore interface {
	Store(filename string, contents io.Reader) (string, error)
	Remove(ref string) error
}

// LocalFileStore writes uploads to a directory on disk. The reference is
// the generated file name, never a caller-controlled path.
type LocalFileStore struct {
	dir string
}

// NewLocalFileStore creates the upload directory if needed.
func NewLocalFileStore(dir string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalFileStore{dir: dir}, nil
}

func (s *LocalFileStore) Store(filename string, contents io.Reader) (string, error) {
	ref := uuid.NewString() + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, contents); err != nil {
		return "", err
	}
	return ref, nil
}

func (s *LocalFileStore) Remove(ref string) error {
	if ref == "" {
		return nil
	}
	// refs are server-generated; refuse anything that escapes the dir
	if filepath.Base(ref) != ref {
		return fmt.Errorf("invalid file reference %q", ref)
	}
	err := os.Remove(filepath.Join(s.dir, ref))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
