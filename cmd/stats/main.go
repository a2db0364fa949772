package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"dao-activity-lab/internal/classify"
	"dao-activity-lab/internal/config"
	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/reporting"
	"dao-activity-lab/internal/stats"
)

// Output formats.
const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatCSV      = "csv"
	formatJSON     = "json"
)

var formats = []string{formatText, formatMarkdown, formatCSV, formatJSON}

type options struct {
	platform   string
	all        bool
	format     string
	sort       string
	thresholds string
	now        string
	color      bool
	verbose    bool
	cfg        config.Config
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := options{cfg: cfg}
	flag.StringVar(&opts.platform, "platform", "", "Platform to analyze (aragon, daohaus, daostack)")
	flag.BoolVar(&opts.all, "all", false, "Analyze every platform")
	flag.StringVar(&opts.cfg.DataDir, "data-dir", cfg.DataDir, "Dataset directory for the csv source")
	flag.StringVar(&opts.cfg.Source, "source", cfg.Source, "Record source (csv, fixtures, postgres, clickhouse)")
	flag.StringVar(&opts.cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	flag.StringVar(&opts.cfg.ClickhouseDSN, "clickhouse-dsn", cfg.ClickhouseDSN, "ClickHouse connection string")
	flag.IntVar(&opts.cfg.Workers, "workers", cfg.Workers, "Concurrent table loads per platform")
	flag.StringVar(&opts.format, "format", formatText, "Output format (text, markdown, csv, json)")
	flag.StringVar(&opts.sort, "sort", "", "Sort listings (recency)")
	flag.StringVar(&opts.thresholds, "thresholds", cfg.ThresholdsFile, "YAML thresholds override file")
	flag.StringVar(&opts.now, "now", "", "Reference time (RFC3339), defaults to the current time")
	flag.BoolVar(&opts.color, "color", false, "Colorize text output")
	flag.BoolVar(&opts.verbose, "v", false, "Log progress to stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	if opts.platform == "" && !opts.all {
		return errors.New("-platform is required unless -all is set")
	}
	if !slices.Contains(formats, opts.format) {
		return fmt.Errorf("unknown format %q (want one of %v)", opts.format, formats)
	}
	if opts.sort != "" && opts.sort != "recency" {
		return fmt.Errorf("unknown sort %q (want recency)", opts.sort)
	}
	if err := opts.cfg.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if opts.now != "" {
		t, err := time.Parse(time.RFC3339, opts.now)
		if err != nil {
			return fmt.Errorf("parse -now: %w", err)
		}
		now = t
	}

	var overrides map[domain.Platform]classify.Thresholds
	if opts.thresholds != "" {
		var err error
		if overrides, err = config.LoadThresholds(opts.thresholds); err != nil {
			return err
		}
	}

	source, closeSource, err := config.OpenSource(ctx, opts.cfg, now)
	if err != nil {
		return err
	}
	defer closeSource()

	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(stderr, "[stats] ", log.LstdFlags|log.Lshortfile)
	}

	aggregator := stats.NewAggregator(source).
		WithClock(func() time.Time { return now }).
		WithThresholds(overrides).
		WithLogger(logger).
		WithWorkers(opts.cfg.Workers)

	var reports []reporting.PlatformReport
	if opts.all {
		for _, ps := range aggregator.GetAllStats(ctx) {
			reports = append(reports, reporting.PlatformReport(ps))
		}
	} else {
		result, err := aggregator.GetStats(ctx, opts.platform)
		if err != nil {
			return err
		}
		reports = []reporting.PlatformReport{{Platform: result.Platform, Result: result}}
	}

	if opts.sort == "recency" {
		for i := range reports {
			if reports[i].Result != nil {
				reports[i].Result = reporting.SortResultByRecency(reports[i].Result)
			}
		}
	}

	out, err := render(reports, opts)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(stdout, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
			if opts.format != formatText {
				fmt.Fprintf(stderr, "Error analyzing %s: %v\n", r.Platform, r.Err)
			}
		}
	}
	if failed == len(reports) {
		return errors.New("no platform could be analyzed")
	}
	return nil
}

// jsonReport is the JSON shape of one platform in -all mode.
type jsonReport struct {
	Platform domain.Platform              `json:"platform"`
	Result   *domain.ClassificationResult `json:"result,omitempty"`
	Error    string                       `json:"error,omitempty"`
}

func render(reports []reporting.PlatformReport, opts options) (string, error) {
	switch opts.format {
	case formatMarkdown:
		return reporting.RenderMarkdown(reports), nil
	case formatCSV:
		return reporting.RenderCSV(reports)
	case formatJSON:
		if !opts.all {
			return reporting.RenderJSON(reports[0].Result)
		}
		out := make([]jsonReport, 0, len(reports))
		for _, r := range reports {
			jr := jsonReport{Platform: r.Platform, Result: r.Result}
			if r.Err != nil {
				jr.Error = r.Err.Error()
			}
			out = append(out, jr)
		}
		return reporting.RenderJSON(out)
	default:
		textOpts := reporting.TextOptions{Color: opts.color}
		var out string
		for _, r := range reports {
			if r.Err != nil {
				out += fmt.Sprintf("\nError analyzing %s: %v\n", r.Platform, r.Err)
				continue
			}
			out += reporting.RenderText(r.Result, textOpts)
		}
		return out, nil
	}
}
