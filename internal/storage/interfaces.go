package storage

import (
	"context"

	"dao-activity-lab/internal/domain"
)

// RecordSource provides read access to raw per-platform tables.
// Tables are keyed by (platform, category); category names are the export
// file stems ("organizations", "proposals", ...).
type RecordSource interface {
	// Platforms returns the platforms that have at least one table, sorted.
	Platforms(ctx context.Context) ([]domain.Platform, error)

	// Categories returns the sorted category names available for platform.
	Categories(ctx context.Context, platform domain.Platform) ([]string, error)

	// Load retrieves one table. Returns ErrNotFound if the category is absent.
	Load(ctx context.Context, platform domain.Platform, category string) (*domain.Table, error)
}

// RecordStore is a RecordSource that accepts imported tables.
type RecordStore interface {
	RecordSource

	// InsertTable stores a table under (platform, t.Category).
	// Returns ErrDuplicateKey if that category was already imported.
	InsertTable(ctx context.Context, platform domain.Platform, t *domain.Table) error
}

// ValidateTable checks a table can be stored.
func ValidateTable(platform domain.Platform, t *domain.Table) error {
	if !platform.IsValid() || t == nil || t.Category == "" || len(t.Columns) == 0 {
		return ErrInvalidInput
	}
	return nil
}
