package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/storage"
)

// RecordStore implements storage.RecordStore using PostgreSQL.
type RecordStore struct {
	pool *Pool
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(pool *Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RecordStore = (*RecordStore)(nil)

// InsertTable stores the table header and all rows in one transaction.
// Returns ErrDuplicateKey if (platform, category) was already imported.
func (s *RecordStore) InsertTable(ctx context.Context, platform domain.Platform, t *domain.Table) error {
	if err := storage.ValidateTable(platform, t); err != nil {
		return err
	}

	return s.pool.inTx(ctx, func(tx pgx.Tx) error {
		var tableID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO dataset_tables (platform, category, columns, row_count)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, string(platform), t.Category, t.Columns, len(t.Rows)).Scan(&tableID)
		if err != nil {
			return translate("insert dataset table", err)
		}
		if len(t.Rows) == 0 {
			return nil
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"dataset_rows"},
			[]string{"table_id", "row_index", "cells"},
			pgx.CopyFromSlice(len(t.Rows), func(i int) ([]any, error) {
				return []any{tableID, int32(i), t.Rows[i]}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy dataset rows: %w", err)
		}
		return nil
	})
}

// Platforms returns platforms with at least one imported table.
func (s *RecordStore) Platforms(ctx context.Context) ([]domain.Platform, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT platform FROM dataset_tables ORDER BY platform`)
	if err != nil {
		return nil, fmt.Errorf("query platforms: %w", err)
	}
	defer rows.Close()

	var result []domain.Platform
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan platform: %w", err)
		}
		result = append(result, domain.Platform(p))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate platforms: %w", err)
	}
	return result, nil
}

// Categories returns the imported category names for platform, sorted.
func (s *RecordStore) Categories(ctx context.Context, platform domain.Platform) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT category FROM dataset_tables
		WHERE platform = $1
		ORDER BY category ASC
	`, string(platform))
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return result, nil
}

// Load reads a table with rows in import order. Returns ErrNotFound if absent.
func (s *RecordStore) Load(ctx context.Context, platform domain.Platform, category string) (*domain.Table, error) {
	var (
		tableID  int64
		columns  []string
		rowCount int32
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, columns, row_count FROM dataset_tables
		WHERE platform = $1 AND category = $2
	`, string(platform), category).Scan(&tableID, &columns, &rowCount)
	if err != nil {
		return nil, translate("get dataset table", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT cells FROM dataset_rows
		WHERE table_id = $1
		ORDER BY row_index ASC
	`, tableID)
	if err != nil {
		return nil, fmt.Errorf("query dataset rows: %w", err)
	}
	defer rows.Close()

	t := &domain.Table{
		Category: category,
		Columns:  columns,
		Rows:     make([][]string, 0, rowCount),
	}
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("scan dataset row: %w", err)
		}
		t.Rows = append(t.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dataset rows: %w", err)
	}
	return t, nil
}
