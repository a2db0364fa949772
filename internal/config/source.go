package config

import (
	"context"
	"fmt"
	"time"

	"dao-activity-lab/internal/fixtures"
	"dao-activity-lab/internal/storage"
	chstore "dao-activity-lab/internal/storage/clickhouse"
	"dao-activity-lab/internal/storage/csvdir"
	"dao-activity-lab/internal/storage/memory"
	"dao-activity-lab/internal/storage/postgres"
)

// OpenSource opens the record source selected by c.Source. The returned
// close function releases any connection and is never nil. Fixture
// timestamps are relative to now.
func OpenSource(ctx context.Context, c Config, now time.Time) (storage.RecordSource, func(), error) {
	noop := func() {}

	switch c.Source {
	case SourceCSV:
		return csvdir.New(c.DataDir), noop, nil

	case SourceFixtures:
		store := memory.NewRecordStore()
		if err := fixtures.LoadFixtures(ctx, store, now); err != nil {
			return nil, noop, fmt.Errorf("load fixtures: %w", err)
		}
		return store, noop, nil

	case SourcePostgres:
		pool, err := postgres.NewPool(ctx, c.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return postgres.NewRecordStore(pool), pool.Close, nil

	case SourceClickhouse:
		conn, err := chstore.NewConn(ctx, c.ClickhouseDSN)
		if err != nil {
			return nil, noop, err
		}
		return chstore.NewRecordStore(conn), func() { _ = conn.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown source %q", c.Source)
	}
}
