package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// FileSlots stores each slot as a JSON file in a directory.
// Writes go to a temporary file that is renamed over the target, so a crash
// mid-write leaves the previous value intact.
type FileSlots struct {
	dir string
}

// NewFileSlots returns a SlotRepo rooted at dir, creating it if needed.
func NewFileSlots(dir string) (*FileSlots, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("repo.NewFileSlots: %w", err)
	}
	return &FileSlots{dir: dir}, nil
}

func (f *FileSlots) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

// Get implements SlotRepo.
func (f *FileSlots) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("repo.FileSlots.Get: %w", err)
	}
	return b, true, nil
}

// Put implements SlotRepo.
func (f *FileSlots) Put(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("repo.FileSlots.Put: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("repo.FileSlots.Put: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("repo.FileSlots.Put: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repo.FileSlots.Put: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("repo.FileSlots.Put: rename: %w", err)
	}
	return nil
}
