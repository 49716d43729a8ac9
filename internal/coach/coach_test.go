package coach

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/insights"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/seed"
)

type memSource struct {
	sales  []model.SaleRecord
	cards  []model.CardProduct
	agents []model.Agent
	err    error
}

func (m *memSource) Sales(ctx context.Context) ([]model.SaleRecord, error)  { return m.sales, m.err }
func (m *memSource) Cards(ctx context.Context) ([]model.CardProduct, error) { return m.cards, m.err }
func (m *memSource) Agents(ctx context.Context) ([]model.Agent, error)      { return m.agents, m.err }
func (m *memSource) Close() error                                           { return nil }

var testNow = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

func seededSource(t *testing.T) *memSource {
	t.Helper()
	g := seed.NewGenerator(rand.New(rand.NewSource(42)), testNow)
	agents, cards, sales := g.Generate(seed.Options{Agents: 10, Cards: 8, Sales: 400})
	return &memSource{sales: sales, cards: cards, agents: agents}
}

func testCoach(t *testing.T) (*Coach, *memSource) {
	t.Helper()
	src := seededSource(t)
	c, err := Load(context.Background(), src, Options{
		Rand: rand.New(rand.NewSource(7)),
		Now:  func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return c, src
}

func TestLoadSnapshot(t *testing.T) {
	t.Parallel()

	c, src := testCoach(t)
	assert.Len(t, c.Sales(), len(src.sales))
	assert.Len(t, c.Cards(), 8)
	assert.Len(t, c.Agents(), 10)
}

func TestLoadPropagatesStoreError(t *testing.T) {
	t.Parallel()

	src := &memSource{err: errors.New("connection refused")}
	_, err := Load(context.Background(), src, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load dataset")
}

func TestPredictSuccessUnknownCard(t *testing.T) {
	t.Parallel()

	c, _ := testCoach(t)
	_, err := c.PredictSuccess(model.Customer{}, "CC999999")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestPredictSuccessUntrainedUsesHeuristic(t *testing.T) {
	t.Parallel()

	c, src := testCoach(t)
	p, err := c.PredictSuccess(model.Customer{}, src.cards[0].CardID)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, p.SuccessProbability, 0.1)
	assert.LessOrEqual(t, p.SuccessProbability, 0.9)
	assert.Nil(t, p.ExpectedCommission)
}

func TestPredictSuccessSaturatedProfileHitsCeiling(t *testing.T) {
	t.Parallel()

	c, src := testCoach(t)

	age, income, credit := 40, 1200000.0, 800
	employment := model.EmploymentSalaried
	p, err := c.PredictSuccess(model.Customer{
		Age:            &age,
		Income:         &income,
		CreditScore:    &credit,
		EmploymentType: &employment,
	}, src.cards[0].CardID)
	require.NoError(t, err)

	// A strong profile lands on the 0.9 probability ceiling.
	assert.InDelta(t, 0.9, p.SuccessProbability, 1e-9)
	assert.Nil(t, p.ExpectedCommission)
}

func TestTrainThenPredictHasCommission(t *testing.T) {
	t.Parallel()

	c, src := testCoach(t)
	require.NoError(t, c.Train(""))

	p, err := c.PredictSuccess(model.Customer{}, src.cards[0].CardID)
	require.NoError(t, err)
	require.NotNil(t, p.ExpectedCommission)
	assert.GreaterOrEqual(t, *p.ExpectedCommission, 0.0)
	assert.NotEmpty(t, p.KeyFactors)
}

func TestTrainPersistsAndReloads(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, src := testCoach(t)
	require.NoError(t, c.Train(dir))

	reloaded, err := Load(context.Background(), src, Options{
		Rand:     rand.New(rand.NewSource(7)),
		Now:      func() time.Time { return testNow },
		ModelDir: dir,
	})
	require.NoError(t, err)

	p, err := reloaded.PredictSuccess(model.Customer{}, src.cards[0].CardID)
	require.NoError(t, err)
	assert.NotNil(t, p.ExpectedCommission)
}

func TestTrainInsufficientDataIsSkipped(t *testing.T) {
	t.Parallel()

	src := seededSource(t)
	src.sales = src.sales[:10]
	c, err := Load(context.Background(), src, Options{Rand: rand.New(rand.NewSource(1))})
	require.NoError(t, err)

	require.NoError(t, c.Train(""))

	p, err := c.PredictSuccess(model.Customer{}, src.cards[0].CardID)
	require.NoError(t, err)
	assert.Nil(t, p.ExpectedCommission)
}

func TestRecommendCardsLimit(t *testing.T) {
	t.Parallel()

	c, src := testCoach(t)
	recs := c.RecommendCards(src.agents[0].AgentID, 3)
	require.Len(t, recs, 3)
	assert.GreaterOrEqual(t, recs[0].Score, recs[1].Score)
}

func TestRecommendLeads(t *testing.T) {
	t.Parallel()

	c, src := testCoach(t)
	leads := c.RecommendLeads(src.agents[0].AgentID, 5)
	assert.LessOrEqual(t, len(leads), 5)
	for _, l := range leads {
		assert.NotEmpty(t, l.CardID)
		assert.NotEmpty(t, l.Name)
	}
}

func TestForecastUnknownAgent(t *testing.T) {
	t.Parallel()

	c, _ := testCoach(t)
	_, err := c.Forecast("AG0000", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestForecastKnownAgent(t *testing.T) {
	t.Parallel()

	c, src := testCoach(t)
	res, err := c.Forecast(src.agents[0].AgentID, 3)
	require.NoError(t, err)
	require.Len(t, res.Forecast, 3)
	require.NotNil(t, res.Agent)
	assert.Equal(t, src.agents[0].AgentID, res.Agent.AgentID)
}

func TestSuggestions(t *testing.T) {
	t.Parallel()

	c, src := testCoach(t)
	sugg, err := c.Suggestions(src.agents[0].AgentID)
	require.NoError(t, err)
	assert.NotEmpty(t, sugg)

	_, err = c.Suggestions("AG0000")
	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestPerformanceNoSales(t *testing.T) {
	t.Parallel()

	c, _ := testCoach(t)
	_, err := c.Performance("AG0000")
	require.Error(t, err)
	assert.ErrorIs(t, err, insights.ErrNoSales)
}

func TestInsights(t *testing.T) {
	t.Parallel()

	c, src := testCoach(t)
	ins, err := c.Insights(src.agents[0].AgentID)
	require.NoError(t, err)
	assert.NotEmpty(t, ins.Recommendations)
}

func TestAnalyzeCardsSorted(t *testing.T) {
	t.Parallel()

	c, _ := testCoach(t)
	all := c.AnalyzeCards()
	require.Len(t, all, 8)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].TotalCommission, all[i].TotalCommission)
	}
}

func TestCompareCards(t *testing.T) {
	t.Parallel()

	c, src := testCoach(t)

	got, err := c.CompareCards([]string{src.cards[0].CardID, "CC999999"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, src.cards[0].CardID, got[0].Card.CardID)

	_, err = c.CompareCards([]string{"CC999999"})
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestScriptAndObjections(t *testing.T) {
	t.Parallel()

	c, src := testCoach(t)

	s, err := c.Script(src.cards[0].CardID)
	require.NoError(t, err)
	assert.Equal(t, src.cards[0].Name, s.CardName)

	set, err := c.Objections(src.cards[0].CardID)
	require.NoError(t, err)
	assert.NotEmpty(t, set.Objections)

	_, err = c.Script("CC999999")
	assert.ErrorIs(t, err, ErrCardNotFound)
}
