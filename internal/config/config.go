// Package config loads runtime settings from the environment, an optional
// .env file and an optional YAML thresholds override.
package config

import (
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
)

// Source kinds accepted by DAO_SOURCE and the -source flags.
const (
	SourceCSV        = "csv"
	SourceFixtures   = "fixtures"
	SourcePostgres   = "postgres"
	SourceClickhouse = "clickhouse"
)

// Sources lists the accepted source kinds.
var Sources = []string{SourceCSV, SourceFixtures, SourcePostgres, SourceClickhouse}

// Config holds settings shared by every command. Command-line flags default
// to these values.
type Config struct {
	DataDir        string `env:"DAO_DATA_DIR" envDefault:"data"`
	Source         string `env:"DAO_SOURCE" envDefault:"csv"`
	PostgresDSN    string `env:"POSTGRES_DSN"`
	ClickhouseDSN  string `env:"CLICKHOUSE_DSN"`
	ThresholdsFile string `env:"DAO_THRESHOLDS_FILE"`
	MetricsAddr    string `env:"METRICS_ADDR" envDefault:":8080"`
	Workers        int    `env:"DAO_WORKERS" envDefault:"4"`
}

// Load reads envFile (skipped when absent) and then parses the
// environment into a Config.
func Load(envFile string) (Config, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the source kind, its connection settings and the worker
// count.
func (c Config) Validate() error {
	if !slices.Contains(Sources, c.Source) {
		return fmt.Errorf("unknown source %q (want one of %v)", c.Source, Sources)
	}
	switch c.Source {
	case SourcePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("source %s requires POSTGRES_DSN", c.Source)
		}
	case SourceClickhouse:
		if c.ClickhouseDSN == "" {
			return fmt.Errorf("source %s requires CLICKHOUSE_DSN", c.Source)
		}
	case SourceCSV:
		if c.DataDir == "" {
			return fmt.Errorf("source %s requires a data directory", c.Source)
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
