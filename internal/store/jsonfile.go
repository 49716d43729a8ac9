package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// JSONFileStore reads and writes the dataset as plain JSON files in a
// directory: sales.json, cards.json and agents.json. A missing file is an
// empty collection, not an error, so partially exported datasets still load.
type JSONFileStore struct {
	dir string
}

// NewJSONFiles builds a JSONFileStore over dir. An empty dir means the
// current directory.
func NewJSONFiles(dir string) *JSONFileStore {
	if dir == "" {
		dir = "."
	}
	return &JSONFileStore{dir: dir}
}

func (s *JSONFileStore) Migrate(ctx context.Context) error {
	return eris.Wrap(os.MkdirAll(s.dir, 0o755), "jsonfile: create data dir")
}

func (s *JSONFileStore) Close() error { return nil }

func (s *JSONFileStore) Sales(ctx context.Context) ([]model.SaleRecord, error) {
	var sales []model.SaleRecord
	if err := s.read("sales.json", &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *JSONFileStore) Cards(ctx context.Context) ([]model.CardProduct, error) {
	var cards []model.CardProduct
	if err := s.read("credit_cards.json", &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *JSONFileStore) Agents(ctx context.Context) ([]model.Agent, error) {
	var agents []model.Agent
	if err := s.read("agents.json", &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (s *JSONFileStore) SaveSales(ctx context.Context, sales []model.SaleRecord) error {
	return s.write("sales.json", sales)
}

func (s *JSONFileStore) SaveCards(ctx context.Context, cards []model.CardProduct) error {
	return s.write("credit_cards.json", cards)
}

func (s *JSONFileStore) SaveAgents(ctx context.Context, agents []model.Agent) error {
	return s.write("agents.json", agents)
}

func (s *JSONFileStore) read(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return eris.Wrapf(err, "jsonfile: read %s", name)
	}
	return eris.Wrapf(json.Unmarshal(data, out), "jsonfile: parse %s", name)
}

// write replaces name atomically via a temp file and rename.
func (s *JSONFileStore) write(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return eris.Wrap(err, "jsonfile: create data dir")
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "jsonfile: marshal %s", name)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrapf(err, "jsonfile: write %s", name)
	}
	return eris.Wrapf(os.Rename(tmp, path), "jsonfile: replace %s", name)
}
