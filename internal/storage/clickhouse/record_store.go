package clickhouse

import (
	"context"
	"fmt"

	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/storage"
)

// RecordStore implements storage.RecordStore using ClickHouse.
type RecordStore struct {
	conn *Conn
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(conn *Conn) *RecordStore {
	return &RecordStore{conn: conn}
}

// Compile-time interface check.
var _ storage.RecordStore = (*RecordStore)(nil)

// InsertTable batches all rows, then registers the table header.
// MergeTree does not enforce uniqueness, so duplicates are checked first.
// Rows left behind by an import that failed before its header was written
// are deleted before the batch.
func (s *RecordStore) InsertTable(ctx context.Context, platform domain.Platform, t *domain.Table) error {
	if err := storage.ValidateTable(platform, t); err != nil {
		return err
	}

	exists, err := s.exists(ctx, platform, t.Category)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	err = s.conn.Exec(ctx, `
		DELETE FROM dataset_rows
		WHERE platform = ? AND category = ?
	`, string(platform), t.Category)
	if err != nil {
		return fmt.Errorf("delete orphan rows: %w", err)
	}

	if len(t.Rows) > 0 {
		batch, err := s.conn.PrepareBatch(ctx, `
			INSERT INTO dataset_rows (platform, category, row_index, cells)
		`)
		if err != nil {
			return fmt.Errorf("prepare rows batch: %w", err)
		}
		for i, row := range t.Rows {
			if err := batch.Append(string(platform), t.Category, uint32(i), row); err != nil {
				return fmt.Errorf("append to batch: %w", err)
			}
		}
		if err := batch.Send(); err != nil {
			return fmt.Errorf("send rows batch: %w", err)
		}
	}

	err = s.conn.Exec(ctx, `
		INSERT INTO dataset_tables (platform, category, columns, row_count)
		VALUES (?, ?, ?, ?)
	`, string(platform), t.Category, t.Columns, uint32(len(t.Rows)))
	if err != nil {
		return fmt.Errorf("insert dataset table: %w", err)
	}
	return nil
}

// Platforms returns platforms with at least one imported table.
func (s *RecordStore) Platforms(ctx context.Context) ([]domain.Platform, error) {
	rows, err := s.conn.Query(ctx, `SELECT DISTINCT platform FROM dataset_tables ORDER BY platform`)
	if err != nil {
		return nil, fmt.Errorf("query platforms: %w", err)
	}
	defer rows.Close()

	names, err := scanStrings(rows)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Platform, 0, len(names))
	for _, n := range names {
		result = append(result, domain.Platform(n))
	}
	return result, nil
}

// Categories returns the imported category names for platform, sorted.
func (s *RecordStore) Categories(ctx context.Context, platform domain.Platform) ([]string, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT DISTINCT category FROM dataset_tables
		WHERE platform = ?
		ORDER BY category ASC
	`, string(platform))
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// Load reads a table with rows in import order. Returns ErrNotFound if absent.
func (s *RecordStore) Load(ctx context.Context, platform domain.Platform, category string) (*domain.Table, error) {
	header, err := s.conn.Query(ctx, `
		SELECT columns FROM dataset_tables FINAL
		WHERE platform = ? AND category = ?
		LIMIT 1
	`, string(platform), category)
	if err != nil {
		return nil, fmt.Errorf("query dataset table: %w", err)
	}
	defer header.Close()

	if !header.Next() {
		if err := header.Err(); err != nil {
			return nil, fmt.Errorf("iterate dataset table: %w", err)
		}
		return nil, storage.ErrNotFound
	}
	var columns []string
	if err := header.Scan(&columns); err != nil {
		return nil, fmt.Errorf("scan dataset table: %w", err)
	}

	rows, err := s.conn.Query(ctx, `
		SELECT cells FROM dataset_rows
		WHERE platform = ? AND category = ?
		ORDER BY row_index ASC
	`, string(platform), category)
	if err != nil {
		return nil, fmt.Errorf("query dataset rows: %w", err)
	}
	defer rows.Close()

	t := &domain.Table{Category: category, Columns: columns}
	if t.Rows, err = scanCells(rows); err != nil {
		return nil, err
	}
	return t, nil
}

// exists checks if a table header for (platform, category) exists.
func (s *RecordStore) exists(ctx context.Context, platform domain.Platform, category string) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `
		SELECT count(*) FROM dataset_tables
		WHERE platform = ? AND category = ?
	`, string(platform), category).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func scanStrings(rows chRows) ([]string, error) {
	var result []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}

func scanCells(rows chRows) ([][]string, error) {
	var result [][]string
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("scan dataset row: %w", err)
		}
		result = append(result, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dataset rows: %w", err)
	}
	return result, nil
}
