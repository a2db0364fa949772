package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dao-activity-lab/internal/config"
	"dao-activity-lab/internal/observability"
	"dao-activity-lab/internal/storage"
	chstore "dao-activity-lab/internal/storage/clickhouse"
	"dao-activity-lab/internal/storage/csvdir"
	"dao-activity-lab/internal/storage/migrations"
	pgstore "dao-activity-lab/internal/storage/postgres"
)

// Import targets.
const (
	targetPostgres   = "postgres"
	targetClickhouse = "clickhouse"
	targetCSV        = "csv"
)

type options struct {
	to           string
	outDir       string
	skipExisting bool
	cfg          config.Config
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := options{cfg: cfg}
	flag.StringVar(&opts.cfg.Source, "from", config.SourceCSV, "Input source (csv, fixtures)")
	flag.StringVar(&opts.cfg.DataDir, "data-dir", cfg.DataDir, "Dataset directory to import from")
	flag.StringVar(&opts.to, "to", targetPostgres, "Import target (postgres, clickhouse, csv)")
	flag.StringVar(&opts.outDir, "out-dir", "", "Target directory for -to csv")
	flag.StringVar(&opts.cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	flag.StringVar(&opts.cfg.ClickhouseDSN, "clickhouse-dsn", cfg.ClickhouseDSN, "ClickHouse connection string")
	flag.BoolVar(&opts.skipExisting, "skip-existing", false, "Skip tables that were already imported")
	flag.Parse()

	logger := log.New(os.Stdout, "[import] ", log.LstdFlags|log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *log.Logger) error {
	if opts.cfg.Source != config.SourceCSV && opts.cfg.Source != config.SourceFixtures {
		return fmt.Errorf("unsupported input %q (want csv or fixtures)", opts.cfg.Source)
	}
	if err := opts.cfg.Validate(); err != nil {
		return err
	}

	source, closeSource, err := config.OpenSource(ctx, opts.cfg, time.Now().UTC())
	if err != nil {
		return err
	}
	defer closeSource()

	target, closeTarget, err := openTarget(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer closeTarget()

	imp := &importer{
		source:       source,
		target:       target,
		backend:      opts.to,
		skipExisting: opts.skipExisting,
		metrics:      observability.DefaultMetrics,
		logger:       logger,
	}
	sum, err := imp.Run(ctx)
	if err != nil {
		return err
	}

	logger.Printf("Imported %d tables (%d rows) into %s, skipped %d", sum.tables, sum.rows, opts.to, sum.skipped)
	return nil
}

// openTarget connects to the import target and applies its migrations.
func openTarget(ctx context.Context, opts options, logger *log.Logger) (storage.RecordStore, func(), error) {
	noop := func() {}

	switch opts.to {
	case targetPostgres:
		if opts.cfg.PostgresDSN == "" {
			return nil, noop, errors.New("-postgres-dsn is required for -to postgres")
		}
		pool, err := pgstore.NewPool(ctx, opts.cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, err
		}
		logger.Println("Postgres migrations applied")
		return pgstore.NewRecordStore(pool), pool.Close, nil

	case targetClickhouse:
		if opts.cfg.ClickhouseDSN == "" {
			return nil, noop, errors.New("-clickhouse-dsn is required for -to clickhouse")
		}
		conn, err := migrations.RunClickhouseMigrations(ctx, opts.cfg.ClickhouseDSN)
		if err != nil {
			return nil, noop, err
		}
		logger.Println("ClickHouse migrations applied")
		return chstore.NewRecordStore(conn), func() { _ = conn.Close() }, nil

	case targetCSV:
		if opts.outDir == "" {
			return nil, noop, errors.New("-out-dir is required for -to csv")
		}
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return nil, noop, fmt.Errorf("create output dir: %w", err)
		}
		return csvdir.New(opts.outDir), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown target %q (want postgres, clickhouse or csv)", opts.to)
	}
}
