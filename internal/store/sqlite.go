package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS sales (
	id          TEXT PRIMARY KEY,
	agent_id    TEXT NOT NULL,
	card_id     TEXT NOT NULL,
	sale_date   DATETIME,
	success     INTEGER NOT NULL DEFAULT 0,
	commission  REAL NOT NULL DEFAULT 0,
	customer    TEXT NOT NULL DEFAULT '{}',
	location    TEXT NOT NULL DEFAULT '{}',
	application TEXT NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS cards (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	issuer             TEXT,
	type               TEXT,
	joining_fee        REAL NOT NULL DEFAULT 0,
	annual_fee         REAL NOT NULL DEFAULT 0,
	interest_rate      REAL NOT NULL DEFAULT 0,
	eligibility        TEXT,
	reward_rate        REAL NOT NULL DEFAULT 0,
	credit_limit_range TEXT,
	benefits           TEXT NOT NULL DEFAULT '[]',
	feature_summary    TEXT
);

CREATE TABLE IF NOT EXISTS agents (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	location     TEXT,
	joining_date DATETIME,
	experience   INTEGER NOT NULL DEFAULT 0,
	rating       REAL NOT NULL DEFAULT 0,
	active       INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_sales_agent_id ON sales(agent_id);
CREATE INDEX IF NOT EXISTS idx_sales_card_id ON sales(card_id);
CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Sales(ctx context.Context) ([]model.SaleRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, agent_id, card_id, sale_date, success, commission, customer, location, application
		 FROM sales ORDER BY sale_date, id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list sales")
	}
	defer rows.Close()

	var sales []model.SaleRecord
	for rows.Next() {
		var r model.SaleRecord
		var date sql.NullTime
		var success int
		var customerJSON, locationJSON, applicationJSON string

		if err := rows.Scan(&r.SaleID, &r.AgentID, &r.CardID, &date, &success, &r.Commission,
			&customerJSON, &locationJSON, &applicationJSON); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan sale")
		}
		if date.Valid {
			r.Date = date.Time
		}
		r.Success = success != 0
		if err := json.Unmarshal([]byte(customerJSON), &r.Customer); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal customer for sale %s", r.SaleID)
		}
		if err := json.Unmarshal([]byte(locationJSON), &r.Location); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal location for sale %s", r.SaleID)
		}
		if err := json.Unmarshal([]byte(applicationJSON), &r.Application); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal application for sale %s", r.SaleID)
		}
		sales = append(sales, r)
	}
	return sales, eris.Wrap(rows.Err(), "sqlite: list sales iterate")
}

func (s *SQLiteStore) Cards(ctx context.Context) ([]model.CardProduct, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, issuer, type, joining_fee, annual_fee, interest_rate,
		        eligibility, reward_rate, credit_limit_range, benefits, feature_summary
		 FROM cards ORDER BY id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list cards")
	}
	defer rows.Close()

	var cards []model.CardProduct
	for rows.Next() {
		var c model.CardProduct
		var benefitsJSON string
		if err := rows.Scan(&c.CardID, &c.Name, &c.Issuer, &c.Type, &c.JoiningFee, &c.AnnualFee,
			&c.InterestRate, &c.Eligibility, &c.RewardRate, &c.CreditLimitRange,
			&benefitsJSON, &c.FeatureSummary); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan card")
		}
		if err := json.Unmarshal([]byte(benefitsJSON), &c.Benefits); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal benefits for card %s", c.CardID)
		}
		cards = append(cards, c)
	}
	return cards, eris.Wrap(rows.Err(), "sqlite: list cards iterate")
}

func (s *SQLiteStore) Agents(ctx context.Context) ([]model.Agent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, location, joining_date, experience, rating, active
		 FROM agents ORDER BY id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list agents")
	}
	defer rows.Close()

	var agents []model.Agent
	for rows.Next() {
		var a model.Agent
		var joined sql.NullTime
		var active int
		if err := rows.Scan(&a.AgentID, &a.Name, &a.Location, &joined, &a.Experience, &a.Rating, &active); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan agent")
		}
		if joined.Valid {
			a.JoiningDate = joined.Time
		}
		a.Active = active != 0
		agents = append(agents, a)
	}
	return agents, eris.Wrap(rows.Err(), "sqlite: list agents iterate")
}

func (s *SQLiteStore) SaveSales(ctx context.Context, sales []model.SaleRecord) error {
	return s.replaceAll(ctx, "sales", func(tx *sql.Tx) error {
		for _, r := range sales {
			customerJSON, err := json.Marshal(r.Customer)
			if err != nil {
				return eris.Wrapf(err, "sqlite: marshal customer for sale %s", r.SaleID)
			}
			locationJSON, err := json.Marshal(r.Location)
			if err != nil {
				return eris.Wrapf(err, "sqlite: marshal location for sale %s", r.SaleID)
			}
			applicationJSON, err := json.Marshal(r.Application)
			if err != nil {
				return eris.Wrapf(err, "sqlite: marshal application for sale %s", r.SaleID)
			}

			var date any
			if !r.Date.IsZero() {
				date = r.Date.UTC()
			}
			success := 0
			if r.Success {
				success = 1
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO sales (id, agent_id, card_id, sale_date, success, commission, customer, location, application)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				r.SaleID, r.AgentID, r.CardID, date, success, r.Commission,
				string(customerJSON), string(locationJSON), string(applicationJSON),
			); err != nil {
				return eris.Wrapf(err, "sqlite: insert sale %s", r.SaleID)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) SaveCards(ctx context.Context, cards []model.CardProduct) error {
	return s.replaceAll(ctx, "cards", func(tx *sql.Tx) error {
		for _, c := range cards {
			benefitsJSON, err := json.Marshal(benefitsOrEmpty(c.Benefits))
			if err != nil {
				return eris.Wrapf(err, "sqlite: marshal benefits for card %s", c.CardID)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO cards (id, name, issuer, type, joining_fee, annual_fee, interest_rate,
				                    eligibility, reward_rate, credit_limit_range, benefits, feature_summary)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				c.CardID, c.Name, c.Issuer, c.Type, c.JoiningFee, c.AnnualFee, c.InterestRate,
				c.Eligibility, c.RewardRate, c.CreditLimitRange, string(benefitsJSON), c.FeatureSummary,
			); err != nil {
				return eris.Wrapf(err, "sqlite: insert card %s", c.CardID)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) SaveAgents(ctx context.Context, agents []model.Agent) error {
	return s.replaceAll(ctx, "agents", func(tx *sql.Tx) error {
		for _, a := range agents {
			var joined any
			if !a.JoiningDate.IsZero() {
				joined = a.JoiningDate.UTC()
			}
			active := 0
			if a.Active {
				active = 1
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO agents (id, name, location, joining_date, experience, rating, active)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				a.AgentID, a.Name, a.Location, joined, a.Experience, a.Rating, active,
			); err != nil {
				return eris.Wrapf(err, "sqlite: insert agent %s", a.AgentID)
			}
		}
		return nil
	})
}

// replaceAll truncates table and runs insert inside one transaction.
func (s *SQLiteStore) replaceAll(ctx context.Context, table string, insert func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrapf(err, "sqlite: begin replace %s", table)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return eris.Wrapf(err, "sqlite: clear %s", table)
	}
	if err := insert(tx); err != nil {
		return err
	}
	return eris.Wrapf(tx.Commit(), "sqlite: commit replace %s", table)
}

func benefitsOrEmpty(b []string) []string {
	if b == nil {
		return []string{}
	}
	return b
}
