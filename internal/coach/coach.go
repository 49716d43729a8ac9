// Package coach is the facade over the analysis engines. It loads one
// immutable dataset snapshot from a store and answers every product
// question against it: success prediction, card recommendations, lead
// generation, forecasting, performance insights and sales scripts.
package coach

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/aggregate"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/forecast"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/insights"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/leads"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/predictor"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/scoring"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/script"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/store"
)

// ErrCardNotFound signals a card ID with no catalog entry.
var ErrCardNotFound = eris.New("coach: card not found")

// ErrAgentNotFound signals an agent ID with no roster entry and no sales.
var ErrAgentNotFound = eris.New("coach: agent not found")

// Options configures a Coach. The zero value is usable: a time-seeded
// random source, wall-clock time, and no persisted models.
type Options struct {
	Rand *rand.Rand
	Now  func() time.Time
	// ModelDir holds persisted predictor weights (success.json,
	// commission.json). Missing or unreadable blobs leave the predictors
	// untrained; they fall back to the heuristic.
	ModelDir string
}

const (
	successModelFile    = "success.json"
	commissionModelFile = "commission.json"
)

// Coach answers analysis questions over one dataset snapshot.
type Coach struct {
	sales  []model.SaleRecord
	cards  []model.CardProduct
	agents []model.Agent

	success    *predictor.SuccessPredictor
	commission *predictor.CommissionPredictor

	leadGen    *leads.Generator
	forecaster *forecast.Engine
	scripts    *script.Generator
}

// Load reads the full dataset from src concurrently and builds a Coach.
func Load(ctx context.Context, src store.Source, opts Options) (*Coach, error) {
	c := &Coach{
		success:    predictor.NewSuccessPredictor(),
		commission: predictor.NewCommissionPredictor(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		c.sales, err = src.Sales(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		c.cards, err = src.Cards(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		c.agents, err = src.Agents(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "coach: load dataset")
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if opts.ModelDir != "" {
		loadModel(c.success, filepath.Join(opts.ModelDir, successModelFile))
		loadModel(c.commission, filepath.Join(opts.ModelDir, commissionModelFile))
	}

	c.leadGen = leads.NewGenerator(rng, c.predict)
	c.forecaster = forecast.NewEngine(rng, opts.Now)
	c.scripts = script.NewGenerator(rng)
	return c, nil
}

type loadable interface {
	Load(path string) error
}

// loadModel restores persisted weights if the blob exists. A bad blob is
// logged and skipped; the predictor stays on the heuristic path.
func loadModel(p loadable, path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}
	if err := p.Load(path); err != nil {
		zap.L().Warn("coach: skipping persisted model", zap.String("path", path), zap.Error(err))
	}
}

// Sales returns the loaded sales snapshot.
func (c *Coach) Sales() []model.SaleRecord { return c.sales }

// Cards returns the loaded card catalog.
func (c *Coach) Cards() []model.CardProduct { return c.cards }

// Agents returns the loaded roster.
func (c *Coach) Agents() []model.Agent { return c.agents }

// Train fits both predictors on the loaded sales and persists the weights
// under dir when set. A training set below the minimum row threshold is
// logged and skipped; both predictors keep their previous state.
func (c *Coach) Train(dir string) error {
	for _, m := range []struct {
		name  string
		train func() error
		save  func(string) error
		file  string
	}{
		{"success", func() error { return c.success.Train(c.sales) }, c.success.Save, successModelFile},
		{"commission", func() error { return c.commission.Train(c.sales) }, c.commission.Save, commissionModelFile},
	} {
		if err := m.train(); err != nil {
			if errors.Is(err, predictor.ErrInsufficientData) {
				zap.L().Warn("coach: not enough data to train", zap.String("model", m.name), zap.Error(err))
				continue
			}
			return eris.Wrapf(err, "coach: train %s model", m.name)
		}
		if dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return eris.Wrap(err, "coach: create model dir")
			}
			if err := m.save(filepath.Join(dir, m.file)); err != nil {
				return eris.Wrapf(err, "coach: save %s model", m.name)
			}
		}
	}
	return nil
}

// predict is the internal prediction path shared by PredictSuccess and the
// lead generator.
func (c *Coach) predict(customer model.Customer, card model.CardProduct) leads.Prediction {
	p := leads.Prediction{
		SuccessProbability: c.success.Probability(customer, card.CardID),
	}
	if c.commission.Trained() {
		v := c.commission.Value(customer, card.CardID)
		p.ExpectedCommission = &v
	}
	p.KeyFactors = leads.KeyFactors(customer, card, p.SuccessProbability)
	return p
}

// PredictSuccess scores one customer against one card. ErrCardNotFound
// when the card ID has no catalog entry.
func (c *Coach) PredictSuccess(customer model.Customer, cardID string) (leads.Prediction, error) {
	card, ok := c.cardByID(cardID)
	if !ok {
		return leads.Prediction{}, eris.Wrapf(ErrCardNotFound, "card %s", cardID)
	}
	return c.predict(customer, card), nil
}

// RecommendCards ranks the catalog for an agent. Empty when no card data
// is loaded.
func (c *Coach) RecommendCards(agentID string, limit int) []scoring.CardRecommendation {
	return scoring.Recommend(c.cards, c.sales, agentID, limit)
}

// RecommendLeads synthesizes ranked lead candidates for an agent.
func (c *Coach) RecommendLeads(agentID string, limit int) []leads.Candidate {
	return c.leadGen.Recommend(c.sales, c.cards, agentID, limit)
}

// Forecast projects an agent's commissions over the coming months.
// Unknown agents with no sales history return ErrAgentNotFound.
func (c *Coach) Forecast(agentID string, months int) (*forecast.Result, error) {
	agent, known := c.agentByID(agentID)
	if !known && len(aggregate.FilterByAgent(c.sales, agentID)) == 0 {
		return nil, eris.Wrapf(ErrAgentNotFound, "agent %s", agentID)
	}
	return c.forecaster.Forecast(c.sales, agent, agentID, months), nil
}

// Suggestions returns optimization suggestions for an agent outside of a
// full forecast run.
func (c *Coach) Suggestions(agentID string) ([]forecast.Suggestion, error) {
	agentSales := aggregate.FilterByAgent(c.sales, agentID)
	if _, known := c.agentByID(agentID); !known && len(agentSales) == 0 {
		return nil, eris.Wrapf(ErrAgentNotFound, "agent %s", agentID)
	}
	return forecast.StandaloneSuggestions(agentSales), nil
}

// Performance builds the agent's performance report.
func (c *Coach) Performance(agentID string) (*insights.Performance, error) {
	agent, _ := c.agentByID(agentID)
	return insights.Analyze(c.sales, c.cards, agent, agentID)
}

// Insights derives strengths, improvement areas and recommendations for
// an agent from their performance report.
func (c *Coach) Insights(agentID string) (*insights.Insights, error) {
	p, err := c.Performance(agentID)
	if err != nil {
		return nil, err
	}
	return insights.Generate(p, c.sales), nil
}

// Script assembles a full sales script for a card.
func (c *Coach) Script(cardID string) (*script.Script, error) {
	card, ok := c.cardByID(cardID)
	if !ok {
		return nil, eris.Wrapf(ErrCardNotFound, "card %s", cardID)
	}
	return c.scripts.Create(card, c.sales), nil
}

// Objections builds the objection-handling set for a card.
func (c *Coach) Objections(cardID string) (*script.ObjectionSet, error) {
	card, ok := c.cardByID(cardID)
	if !ok {
		return nil, eris.Wrapf(ErrCardNotFound, "card %s", cardID)
	}
	return c.scripts.Objections(card, c.sales), nil
}

func (c *Coach) cardByID(id string) (model.CardProduct, bool) {
	for _, card := range c.cards {
		if card.CardID == id {
			return card, true
		}
	}
	return model.CardProduct{}, false
}

func (c *Coach) agentByID(id string) (*model.Agent, bool) {
	for i := range c.agents {
		if c.agents[i].AgentID == id {
			return &c.agents[i], true
		}
	}
	return nil, false
}
