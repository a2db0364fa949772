// Package csvdir reads a dataset laid out as <root>/<platform>/<category>.csv.
package csvdir

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/storage"
)

const fileExt = ".csv"

// Source implements storage.RecordStore over a directory of CSV exports.
type Source struct {
	root string
}

// New creates a Source rooted at dir. The directory is not checked until
// the first read.
func New(dir string) *Source {
	return &Source{root: dir}
}

// Root returns the dataset directory.
func (s *Source) Root() string {
	return s.root
}

// Compile-time interface check.
var _ storage.RecordStore = (*Source)(nil)

// Platforms returns supported platforms that have a subdirectory, sorted.
func (s *Source) Platforms(_ context.Context) ([]domain.Platform, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dataset dir: %w", err)
	}

	var result []domain.Platform
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if p := domain.Platform(strings.ToLower(e.Name())); p.IsValid() {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

// Categories returns the sorted CSV file stems under the platform directory.
func (s *Source) Categories(_ context.Context, platform domain.Platform) ([]string, error) {
	entries, err := os.ReadDir(s.platformDir(platform))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s dir: %w", platform, err)
	}

	var result []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		result = append(result, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(result)
	return result, nil
}

// Load reads <root>/<platform>/<category>.csv. Returns ErrNotFound if the
// file does not exist.
func (s *Source) Load(ctx context.Context, platform domain.Platform, category string) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.platformDir(platform), category+fileExt)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, category)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

func (s *Source) platformDir(platform domain.Platform) string {
	return filepath.Join(s.root, string(platform))
}

// Read parses one CSV stream. The first record is the header; rows shorter
// than the header are padded with empty cells.
func Read(r io.Reader, category string) (*domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &domain.Table{Category: category}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &domain.Table{Category: category, Columns: header}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// Write renders a table as CSV with a header row.
func Write(w io.Writer, t *domain.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// InsertTable writes t to <root>/<platform>/<t.Category>.csv, creating
// directories as needed. Returns ErrDuplicateKey if the file exists.
func (s *Source) InsertTable(_ context.Context, platform domain.Platform, t *domain.Table) error {
	if err := storage.ValidateTable(platform, t); err != nil {
		return err
	}
	if err := os.MkdirAll(s.platformDir(platform), 0o755); err != nil {
		return fmt.Errorf("create %s dir: %w", platform, err)
	}

	path := filepath.Join(s.platformDir(platform), t.Category+fileExt)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Write(f, t); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
