// Package store persists finished briefs. The pipeline treats a failed
// insert as fatal: a brief that was generated but not recorded must not
// be reported as success.
package store

import (
	"context"
	"errors"

	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

// ErrNotFound is returned when a brief id does not exist.
var ErrNotFound = errors.New("store: brief not found")

// Store is the persistence boundary for briefs.
type Store interface {
	// Insert writes a new brief and fills in its ID and CreatedAt.
	Insert(ctx context.Context, b *models.Brief) error
	// ListAll returns all briefs, newest first.
	ListAll(ctx context.Context) ([]models.Brief, error)
	// GetByID returns one brief, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Brief, error)
	Close() error
}
