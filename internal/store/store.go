// Package store holds the document-store contract the services persist
// through: whole-collection read and whole-collection overwrite, nothing
// incremental. The JSON file store is the primary implementation; the GORM
// store exists so the layer can be swapped for a real database without
// touching the services.
package store

import (
	"context"

	"taskboard/internal/models"
)

type TaskStore interface {
	// ReadAll returns the entire task collection.
	ReadAll(ctx context.Context) ([]models.Task, error)
	// WriteAll replaces the entire task collection.
	WriteAll(ctx context.Context, tasks []models.Task) error
}

type UserStore interface {
	ReadAll(ctx context.Context) ([]models.User, error)
	WriteAll(ctx context.Context, users []models.User) error
}
