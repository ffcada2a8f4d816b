package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"taskboard/internal/models"
)

// fileCollection is a JSON array file mirrored in memory. Every write
// serializes the whole collection and replaces the file via rename, so a
// crashed write never leaves a half-written document behind. There is no
// transactional isolation across read-modify-write sequences; that limitation
// is accepted at this scale.
type fileCollection[T any] struct {
	path  string
	mu    sync.RWMutex
	items []T
}

func newFileCollection[T any](path string) (*fileCollection[T], error) {
	c := &fileCollection[T]{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c.items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func (c *fileCollection[T]) readAll() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *fileCollection[T]) writeAll(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.path, err)
	}

	tmp := c.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", c.path, err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace %s: %w", c.path, err)
	}

	c.items = make([]T, len(items))
	copy(c.items, items)
	return nil
}

type FileTaskStore struct {
	col *fileCollection[models.Task]
}

func NewFileTaskStore(path string) (*FileTaskStore, error) {
	col, err := newFileCollection[models.Task](path)
	if err != nil {
		return nil, err
	}
	return &FileTaskStore{col: col}, nil
}

func (s *FileTaskStore) ReadAll(ctx context.Context) ([]models.Task, error) {
	return s.col.readAll(), nil
}

func (s *FileTaskStore) WriteAll(ctx context.Context, tasks []models.Task) error {
	return s.col.writeAll(tasks)
}

type FileUserStore struct {
	col *fileCollection[models.User]
}

func NewFileUserStore(path string) (*FileUserStore, error) {
	col, err := newFileCollection[models.User](path)
	if err != nil {
		return nil, err
	}
	return &FileUserStore{col: col}, nil
}

func (s *FileUserStore) ReadAll(ctx context.Context) ([]models.User, error) {
	return s.col.readAll(), nil
}

func (s *FileUserStore) WriteAll(ctx context.Context, users []models.User) error {
	return s.col.writeAll(users)
}
