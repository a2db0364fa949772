package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"dao-activity-lab/internal/config"
	"dao-activity-lab/internal/reporting"
	"dao-activity-lab/internal/structure"
)

type options struct {
	platform string
	output   string
	column   string
	color    bool
	cfg      config.Config
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := options{cfg: cfg}
	flag.StringVar(&opts.platform, "platform", "", "Platform to describe (all when empty)")
	flag.StringVar(&opts.output, "output", "text", "Output mode (text, detailed, json)")
	flag.StringVar(&opts.column, "column", "", "Find columns whose name contains this text")
	flag.StringVar(&opts.cfg.DataDir, "data-dir", cfg.DataDir, "Dataset directory for the csv source")
	flag.StringVar(&opts.cfg.Source, "source", cfg.Source, "Record source (csv, fixtures, postgres, clickhouse)")
	flag.StringVar(&opts.cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	flag.StringVar(&opts.cfg.ClickhouseDSN, "clickhouse-dsn", cfg.ClickhouseDSN, "ClickHouse connection string")
	flag.BoolVar(&opts.color, "color", false, "Colorize output")
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	switch opts.output {
	case "text", "detailed", "json":
	default:
		return fmt.Errorf("unknown output %q (want text, detailed or json)", opts.output)
	}
	if err := opts.cfg.Validate(); err != nil {
		return err
	}

	source, closeSource, err := config.OpenSource(ctx, opts.cfg, time.Now().UTC())
	if err != nil {
		return err
	}
	defer closeSource()

	structures, err := structure.Inspect(ctx, source, opts.platform)
	if err != nil {
		return err
	}

	textOpts := reporting.TextOptions{Color: opts.color}
	var out string
	switch {
	case opts.column != "":
		matches := structure.FindColumn(structures, opts.column)
		if opts.output == "json" {
			out, err = reporting.RenderJSON(matches)
		} else {
			out = reporting.RenderColumnMatches(opts.column, matches, textOpts)
		}
	case opts.output == "json":
		out, err = reporting.RenderJSON(structures)
	default:
		out = reporting.RenderStructure(structures, opts.output == "detailed", textOpts)
	}
	if err != nil {
		return err
	}

	if _, err := io.WriteString(stdout, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
