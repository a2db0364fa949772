package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"dao-activity-lab/internal/observability"
	"dao-activity-lab/internal/storage"
)

// importer copies every table of a source into a target store.
type importer struct {
	source       storage.RecordSource
	target       storage.RecordStore
	backend      string
	skipExisting bool
	metrics      *observability.Metrics
	logger       *log.Logger
}

type importSummary struct {
	tables  int
	rows    int
	skipped int
}

// Run copies tables platform by platform in category order. It stops at
// the first failure unless the failure is an already-imported table and
// skipExisting is set.
func (im *importer) Run(ctx context.Context) (importSummary, error) {
	var sum importSummary

	platforms, err := im.source.Platforms(ctx)
	if err != nil {
		return sum, fmt.Errorf("list platforms: %w", err)
	}
	if len(platforms) == 0 {
		return sum, fmt.Errorf("no platform data in source: %w", storage.ErrNotFound)
	}

	for _, p := range platforms {
		categories, err := im.source.Categories(ctx, p)
		if err != nil {
			return sum, fmt.Errorf("list %s categories: %w", p, err)
		}

		for _, c := range categories {
			t, err := im.source.Load(ctx, p, c)
			if err != nil {
				return sum, fmt.Errorf("load %s %s: %w", p, c, err)
			}

			err = im.target.InsertTable(ctx, p, t)
			if errors.Is(err, storage.ErrDuplicateKey) && im.skipExisting {
				im.logger.Printf("%s/%s already imported, skipping", p, c)
				sum.skipped++
				continue
			}
			im.metrics.RecordImport(im.backend, len(t.Rows), err)
			if err != nil {
				return sum, fmt.Errorf("import %s %s: %w", p, c, err)
			}

			im.logger.Printf("%s/%s: %d rows", p, c, len(t.Rows))
			sum.tables++
			sum.rows += len(t.Rows)
		}
	}
	return sum, nil
}
