package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dao-activity-lab/internal/classify"
	"dao-activity-lab/internal/config"
	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/observability"
	"dao-activity-lab/internal/stats"
	"dao-activity-lab/internal/storage"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Dataset directory for the csv source")
	flag.StringVar(&cfg.Source, "source", cfg.Source, "Record source (csv, fixtures, postgres, clickhouse)")
	flag.StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	flag.StringVar(&cfg.ClickhouseDSN, "clickhouse-dsn", cfg.ClickhouseDSN, "ClickHouse connection string")
	flag.StringVar(&cfg.ThresholdsFile, "thresholds", cfg.ThresholdsFile, "YAML thresholds override file")
	flag.StringVar(&cfg.MetricsAddr, "addr", cfg.MetricsAddr, "HTTP listen address")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent table loads per platform")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Println("Shutdown complete")
}

func serve(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	var overrides map[domain.Platform]classify.Thresholds
	if cfg.ThresholdsFile != "" {
		var err error
		if overrides, err = config.LoadThresholds(cfg.ThresholdsFile); err != nil {
			return err
		}
		logger.Printf("Loaded threshold overrides for %d platforms", len(overrides))
	}

	started := time.Now().UTC()
	source, closeSource, err := config.OpenSource(ctx, cfg, started)
	if err != nil {
		return fmt.Errorf("open %s source: %w", cfg.Source, err)
	}
	defer closeSource()

	aggregator := newAggregator(cfg, source, overrides, started, logger)

	s := newServer(aggregator, source, observability.DefaultMetrics, logger)
	httpServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           s.routes(observability.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("Starting HTTP server on %s (source %s)", cfg.MetricsAddr, cfg.Source)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logger.Println("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newAggregator builds the server's aggregator. Fixture timestamps are
// relative to started, so the fixtures source classifies against that
// instant for the life of the process.
func newAggregator(cfg config.Config, source storage.RecordSource, overrides map[domain.Platform]classify.Thresholds, started time.Time, logger *log.Logger) *stats.Aggregator {
	a := stats.NewAggregator(source).
		WithThresholds(overrides).
		WithLogger(logger).
		WithWorkers(cfg.Workers)
	if cfg.Source == config.SourceFixtures {
		a = a.WithClock(func() time.Time { return started })
	}
	return a
}
