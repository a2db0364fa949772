// Package structure describes the files and columns available in a record
// source, with catalog descriptions and sample values.
package structure

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/storage"
)

// MaxSamples is the number of sample values kept per column.
const MaxSamples = 3

// ColumnInfo describes one column of one file.
type ColumnInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	SampleValues []string `json:"sample_values"`
}

// FileStructure describes one category table.
type FileStructure struct {
	Name    string       `json:"name"` // category name
	Rows    int          `json:"rows"`
	Columns []ColumnInfo `json:"columns"`
}

// PlatformStructure lists a platform's files in category order.
type PlatformStructure struct {
	Platform domain.Platform `json:"platform"`
	Files    []FileStructure `json:"files"`
}

// ColumnMatch is one FindColumn hit.
type ColumnMatch struct {
	Platform domain.Platform
	File     string
	Column   ColumnInfo
}

// Inspect describes the given platform, or every platform in source when
// platform is empty. Unknown names return *domain.UnsupportedPlatformError;
// a supported platform without data returns storage.ErrNotFound.
func Inspect(ctx context.Context, source storage.RecordSource, platform string) ([]PlatformStructure, error) {
	available, err := source.Platforms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}

	platforms := available
	if platform != "" {
		p, err := domain.ParsePlatform(platform)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(available, p) {
			return nil, fmt.Errorf("platform %s: %w", p, storage.ErrNotFound)
		}
		platforms = []domain.Platform{p}
	}

	out := make([]PlatformStructure, 0, len(platforms))
	for _, p := range platforms {
		ps, err := inspectPlatform(ctx, source, p)
		if err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, nil
}

func inspectPlatform(ctx context.Context, source storage.RecordSource, p domain.Platform) (PlatformStructure, error) {
	categories, err := source.Categories(ctx, p)
	if err != nil {
		return PlatformStructure{}, fmt.Errorf("list %s categories: %w", p, err)
	}

	ps := PlatformStructure{Platform: p, Files: make([]FileStructure, 0, len(categories))}
	for _, c := range categories {
		t, err := source.Load(ctx, p, c)
		if err != nil {
			return PlatformStructure{}, fmt.Errorf("load %s %s: %w", p, c, err)
		}
		ps.Files = append(ps.Files, describeTable(p, t))
	}
	return ps, nil
}

func describeTable(p domain.Platform, t *domain.Table) FileStructure {
	fs := FileStructure{
		Name:    t.Category,
		Rows:    len(t.Rows),
		Columns: make([]ColumnInfo, 0, len(t.Columns)),
	}
	samples := min(len(t.Rows), MaxSamples)
	for _, col := range t.Columns {
		info := ColumnInfo{
			Name:         col,
			Description:  Describe(p, t.Category, col),
			SampleValues: make([]string, 0, samples),
		}
		for i := 0; i < samples; i++ {
			info.SampleValues = append(info.SampleValues, t.Value(i, col))
		}
		fs.Columns = append(fs.Columns, info)
	}
	return fs
}

// FindColumn returns every column whose name contains query,
// case-insensitively, in platform, file and column order.
func FindColumn(structures []PlatformStructure, query string) []ColumnMatch {
	needle := strings.ToLower(query)
	var matches []ColumnMatch
	for _, ps := range structures {
		for _, f := range ps.Files {
			for _, c := range f.Columns {
				if strings.Contains(strings.ToLower(c.Name), needle) {
					matches = append(matches, ColumnMatch{Platform: ps.Platform, File: f.Name, Column: c})
				}
			}
		}
	}
	return matches
}
