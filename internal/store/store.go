// Package store persists the sales dataset: historical sale records, the
// card catalog, and the agent roster. Three backends are supported: SQLite
// for local single-file use, Postgres for shared deployments, and plain
// JSON files for datasets exported from other tooling.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// Source reads the dataset the analysis engines run on.
type Source interface {
	Sales(ctx context.Context) ([]model.SaleRecord, error)
	Cards(ctx context.Context) ([]model.CardProduct, error)
	Agents(ctx context.Context) ([]model.Agent, error)
	Close() error
}

// Writer replaces the persisted dataset. Each Save call overwrites the
// whole collection; the store never merges.
type Writer interface {
	SaveSales(ctx context.Context, sales []model.SaleRecord) error
	SaveCards(ctx context.Context, cards []model.CardProduct) error
	SaveAgents(ctx context.Context, agents []model.Agent) error
}

// Store is a full read-write backend.
type Store interface {
	Source
	Writer
	Migrate(ctx context.Context) error
}

// Config selects and parameterizes a backend.
type Config struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	// DSN is the SQLite path or Postgres connection string.
	DSN string `yaml:"dsn" mapstructure:"dsn"`
	// Dir is the data directory for the jsonfile driver.
	Dir  string      `yaml:"dir" mapstructure:"dir"`
	Pool *PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// Open builds the backend named by cfg.Driver. An empty driver defaults
// to SQLite.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "sales.db"
		}
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, cfg.DSN, cfg.Pool)
	case "jsonfile":
		return NewJSONFiles(cfg.Dir), nil
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
