package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it
// in tests.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool, used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS sales (
	id          TEXT PRIMARY KEY,
	agent_id    TEXT NOT NULL,
	card_id     TEXT NOT NULL,
	sale_date   TIMESTAMPTZ,
	success     BOOLEAN NOT NULL DEFAULT false,
	commission  DOUBLE PRECISION NOT NULL DEFAULT 0,
	customer    JSONB NOT NULL DEFAULT '{}',
	location    JSONB NOT NULL DEFAULT '{}',
	application JSONB NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS cards (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	issuer             TEXT,
	type               TEXT,
	joining_fee        DOUBLE PRECISION NOT NULL DEFAULT 0,
	annual_fee         DOUBLE PRECISION NOT NULL DEFAULT 0,
	interest_rate      DOUBLE PRECISION NOT NULL DEFAULT 0,
	eligibility        TEXT,
	reward_rate        DOUBLE PRECISION NOT NULL DEFAULT 0,
	credit_limit_range TEXT,
	benefits           JSONB NOT NULL DEFAULT '[]',
	feature_summary    TEXT
);

CREATE TABLE IF NOT EXISTS agents (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	location     TEXT,
	joining_date TIMESTAMPTZ,
	experience   INTEGER NOT NULL DEFAULT 0,
	rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
	active       BOOLEAN NOT NULL DEFAULT true
);

CREATE INDEX IF NOT EXISTS idx_sales_agent_id ON sales(agent_id);
CREATE INDEX IF NOT EXISTS idx_sales_card_id ON sales(card_id);
CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Sales(ctx context.Context) ([]model.SaleRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, agent_id, card_id, sale_date, success, commission, customer, location, application
		 FROM sales ORDER BY sale_date, id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list sales")
	}
	defer rows.Close()

	var sales []model.SaleRecord
	for rows.Next() {
		var r model.SaleRecord
		var date *time.Time
		var customerJSON, locationJSON, applicationJSON []byte

		if err := rows.Scan(&r.SaleID, &r.AgentID, &r.CardID, &date, &r.Success, &r.Commission,
			&customerJSON, &locationJSON, &applicationJSON); err != nil {
			return nil, eris.Wrap(err, "postgres: scan sale")
		}
		if date != nil {
			r.Date = *date
		}
		if err := json.Unmarshal(customerJSON, &r.Customer); err != nil {
			return nil, eris.Wrapf(err, "postgres: unmarshal customer for sale %s", r.SaleID)
		}
		if err := json.Unmarshal(locationJSON, &r.Location); err != nil {
			return nil, eris.Wrapf(err, "postgres: unmarshal location for sale %s", r.SaleID)
		}
		if err := json.Unmarshal(applicationJSON, &r.Application); err != nil {
			return nil, eris.Wrapf(err, "postgres: unmarshal application for sale %s", r.SaleID)
		}
		sales = append(sales, r)
	}
	return sales, eris.Wrap(rows.Err(), "postgres: list sales iterate")
}

func (s *PostgresStore) Cards(ctx context.Context) ([]model.CardProduct, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, issuer, type, joining_fee, annual_fee, interest_rate,
		        eligibility, reward_rate, credit_limit_range, benefits, feature_summary
		 FROM cards ORDER BY id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list cards")
	}
	defer rows.Close()

	var cards []model.CardProduct
	for rows.Next() {
		var c model.CardProduct
		var benefitsJSON []byte
		if err := rows.Scan(&c.CardID, &c.Name, &c.Issuer, &c.Type, &c.JoiningFee, &c.AnnualFee,
			&c.InterestRate, &c.Eligibility, &c.RewardRate, &c.CreditLimitRange,
			&benefitsJSON, &c.FeatureSummary); err != nil {
			return nil, eris.Wrap(err, "postgres: scan card")
		}
		if err := json.Unmarshal(benefitsJSON, &c.Benefits); err != nil {
			return nil, eris.Wrapf(err, "postgres: unmarshal benefits for card %s", c.CardID)
		}
		cards = append(cards, c)
	}
	return cards, eris.Wrap(rows.Err(), "postgres: list cards iterate")
}

func (s *PostgresStore) Agents(ctx context.Context) ([]model.Agent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, location, joining_date, experience, rating, active
		 FROM agents ORDER BY id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list agents")
	}
	defer rows.Close()

	var agents []model.Agent
	for rows.Next() {
		var a model.Agent
		var joined *time.Time
		if err := rows.Scan(&a.AgentID, &a.Name, &a.Location, &joined, &a.Experience, &a.Rating, &a.Active); err != nil {
			return nil, eris.Wrap(err, "postgres: scan agent")
		}
		if joined != nil {
			a.JoiningDate = *joined
		}
		agents = append(agents, a)
	}
	return agents, eris.Wrap(rows.Err(), "postgres: list agents iterate")
}

func (s *PostgresStore) SaveSales(ctx context.Context, sales []model.SaleRecord) error {
	return s.replaceAll(ctx, "sales", func(tx pgx.Tx) error {
		for _, r := range sales {
			customerJSON, err := json.Marshal(r.Customer)
			if err != nil {
				return eris.Wrapf(err, "postgres: marshal customer for sale %s", r.SaleID)
			}
			locationJSON, err := json.Marshal(r.Location)
			if err != nil {
				return eris.Wrapf(err, "postgres: marshal location for sale %s", r.SaleID)
			}
			applicationJSON, err := json.Marshal(r.Application)
			if err != nil {
				return eris.Wrapf(err, "postgres: marshal application for sale %s", r.SaleID)
			}

			var date *time.Time
			if !r.Date.IsZero() {
				d := r.Date.UTC()
				date = &d
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO sales (id, agent_id, card_id, sale_date, success, commission, customer, location, application)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				r.SaleID, r.AgentID, r.CardID, date, r.Success, r.Commission,
				customerJSON, locationJSON, applicationJSON,
			); err != nil {
				return eris.Wrapf(err, "postgres: insert sale %s", r.SaleID)
			}
		}
		return nil
	})
}

func (s *PostgresStore) SaveCards(ctx context.Context, cards []model.CardProduct) error {
	return s.replaceAll(ctx, "cards", func(tx pgx.Tx) error {
		for _, c := range cards {
			benefitsJSON, err := json.Marshal(benefitsOrEmpty(c.Benefits))
			if err != nil {
				return eris.Wrapf(err, "postgres: marshal benefits for card %s", c.CardID)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO cards (id, name, issuer, type, joining_fee, annual_fee, interest_rate,
				                    eligibility, reward_rate, credit_limit_range, benefits, feature_summary)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				c.CardID, c.Name, c.Issuer, c.Type, c.JoiningFee, c.AnnualFee, c.InterestRate,
				c.Eligibility, c.RewardRate, c.CreditLimitRange, benefitsJSON, c.FeatureSummary,
			); err != nil {
				return eris.Wrapf(err, "postgres: insert card %s", c.CardID)
			}
		}
		return nil
	})
}

func (s *PostgresStore) SaveAgents(ctx context.Context, agents []model.Agent) error {
	return s.replaceAll(ctx, "agents", func(tx pgx.Tx) error {
		for _, a := range agents {
			var joined *time.Time
			if !a.JoiningDate.IsZero() {
				d := a.JoiningDate.UTC()
				joined = &d
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO agents (id, name, location, joining_date, experience, rating, active)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				a.AgentID, a.Name, a.Location, joined, a.Experience, a.Rating, a.Active,
			); err != nil {
				return eris.Wrapf(err, "postgres: insert agent %s", a.AgentID)
			}
		}
		return nil
	})
}

func (s *PostgresStore) replaceAll(ctx context.Context, table string, insert func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrapf(err, "postgres: begin replace %s", table)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM `+table); err != nil {
		return eris.Wrapf(err, "postgres: clear %s", table)
	}
	if err := insert(tx); err != nil {
		return err
	}
	return eris.Wrapf(tx.Commit(ctx), "postgres: commit replace %s", table)
}
