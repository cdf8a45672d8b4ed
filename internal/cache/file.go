package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSnapshotStore stores the graph snapshot as a single file. It is used
// when Redis is disabled; writes go through a temp file and rename so a
// crash mid-write never leaves a truncated snapshot behind.
type FileSnapshotStore struct {
	path string
}

// NewFileSnapshotStore creates a file-backed snapshot store at path.
func NewFileSnapshotStore(path string) (*FileSnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	return &FileSnapshotStore{path: path}, nil
}

// Save atomically replaces the snapshot file.
func (s *FileSnapshotStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing snapshot file: %w", err)
	}
	return nil
}

// Load reads the snapshot file. A missing file is a cache miss.
func (s *FileSnapshotStore) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading snapshot file: %w", err)
	}
	return data, true, nil
}
