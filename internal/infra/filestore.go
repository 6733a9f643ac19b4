package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore persists profile pictures on disk. Rows store only the returned
// path, never the blob.
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create root: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Save writes data under a generated name and returns the stored path.
func (s *FileStore) Save(data []byte, ext string) (string, error) {
	name := uuid.NewString() + ext
	path := filepath.Join(s.root, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("filestore: write %s: %w", name, err)
	}
	return path, nil
}

// Read loads a previously stored file by path.
func (s *FileStore) Read(path string) ([]byte, error) {
	// Refuse paths outside the store root.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(rootAbs, abs)
	if err != nil || rel == ".." || filepath.IsAbs(rel) || len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator) {
		return nil, fmt.Errorf("filestore: path %s outside store", path)
	}
	return os.ReadFile(abs)
}

// Remove deletes a stored file; a missing file is not an error.
func (s *FileStore) Remove(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
