package main

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/coach"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/config"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/seed"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		Store:    store.Config{Driver: "jsonfile"},
		Models:   config.ModelConfig{Dir: ""},
		Leads:    config.LeadsConfig{DefaultLimit: 10},
		Forecast: config.ForecastConfig{Months: 3},
		Server:   config.ServerConfig{Port: 8080, RatePerMinute: 120, AllowedOrigins: []string{"*"}},
		Log:      config.LogConfig{Level: "info", Format: "json"},
	}
}

// newTestServer loads a seeded dataset through the jsonfile store and mounts
// the full route tree on an httptest server.
func newTestServer(t *testing.T) (*httptest.Server, *coach.Coach) {
	t.Helper()
	cfg = testConfig()

	gen := seed.NewGenerator(rand.New(rand.NewSource(42)), time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC))
	agents, cards, sales := gen.Generate(seed.Options{Agents: 8, Cards: 6, Sales: 300})

	ctx := t.Context()
	st := store.NewJSONFiles(t.TempDir())
	require.NoError(t, st.Migrate(ctx))
	require.NoError(t, st.SaveAgents(ctx, agents))
	require.NoError(t, st.SaveCards(ctx, cards))
	require.NoError(t, st.SaveSales(ctx, sales))

	c, err := coach.Load(ctx, st, coach.Options{Rand: rand.New(rand.NewSource(7))})
	require.NoError(t, err)
	require.NoError(t, c.Train(""))

	r := chi.NewRouter()
	a := &api{coach: c}
	a.routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, c
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func getEnvelope(t *testing.T, srv *httptest.Server, path string) (int, envelope) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func postEnvelope(t *testing.T, srv *httptest.Server, path string, body []byte) (int, envelope) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	code, env := getEnvelope(t, srv, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", env.Status)

	var data struct {
		Status string `json:"status"`
		Agents int    `json:"agents"`
		Cards  int    `json:"cards"`
		Sales  int    `json:"sales"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "healthy", data.Status)
	assert.Equal(t, 8, data.Agents)
	assert.Equal(t, 6, data.Cards)
	assert.Equal(t, 300, data.Sales)
}

func TestCardPerformanceEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	code, env := getEnvelope(t, srv, "/api/cards/performance")
	assert.Equal(t, http.StatusOK, code)

	var analyses []coach.CardAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &analyses))
	assert.Len(t, analyses, 6)
}

func TestRecommendCardsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	code, env := getEnvelope(t, srv, "/api/cards/recommend/AG1001?limit=3")
	assert.Equal(t, http.StatusOK, code)

	var recs []struct {
		CardID string  `json:"card_id"`
		Score  float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &recs))
	assert.LessOrEqual(t, len(recs), 3)
	assert.NotEmpty(t, recs)
}

func TestCompareCardsEndpoint(t *testing.T) {
	srv, c := newTestServer(t)

	t.Run("malformed body", func(t *testing.T) {
		code, env := postEnvelope(t, srv, "/api/cards/compare", []byte("{not json"))
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("missing card_ids", func(t *testing.T) {
		code, _ := postEnvelope(t, srv, "/api/cards/compare", []byte(`{}`))
		assert.Equal(t, http.StatusUnprocessableEntity, code)
	})

	t.Run("unknown cards", func(t *testing.T) {
		code, env := postEnvelope(t, srv, "/api/cards/compare", []byte(`{"card_ids":["CC999999"]}`))
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("known cards", func(t *testing.T) {
		ids := []string{c.Cards()[0].CardID, c.Cards()[1].CardID}
		body, _ := json.Marshal(map[string]any{"card_ids": ids})
		code, env := postEnvelope(t, srv, "/api/cards/compare", body)
		assert.Equal(t, http.StatusOK, code)

		var analyses []coach.CardAnalysis
		require.NoError(t, json.Unmarshal(env.Data, &analyses))
		assert.Len(t, analyses, 2)
	})
}

func TestAgentEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("performance unknown agent", func(t *testing.T) {
		code, env := getEnvelope(t, srv, "/api/agents/performance/AG9999")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("performance known agent", func(t *testing.T) {
		code, env := getEnvelope(t, srv, "/api/agents/performance/AG1001")
		assert.Equal(t, http.StatusOK, code)

		var p struct {
			Overall struct {
				TotalSales int `json:"total_sales"`
			} `json:"overall"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &p))
		assert.Positive(t, p.Overall.TotalSales)
	})

	t.Run("insights known agent", func(t *testing.T) {
		code, env := getEnvelope(t, srv, "/api/agents/insights/AG1001")
		assert.Equal(t, http.StatusOK, code)

		var ins struct {
			Recommendations []string `json:"recommendations"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &ins))
		assert.NotEmpty(t, ins.Recommendations)
	})
}

func TestLeadsEndpoints(t *testing.T) {
	srv, c := newTestServer(t)

	t.Run("recommend", func(t *testing.T) {
		code, env := getEnvelope(t, srv, "/api/leads/recommend/AG1001?limit=5")
		assert.Equal(t, http.StatusOK, code)

		var leads []struct {
			CardID             string  `json:"card_id"`
			SuccessProbability float64 `json:"success_probability"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &leads))
		assert.LessOrEqual(t, len(leads), 5)
	})

	t.Run("predict missing card", func(t *testing.T) {
		code, _ := postEnvelope(t, srv, "/api/leads/predict-success", []byte(`{"age":30}`))
		assert.Equal(t, http.StatusUnprocessableEntity, code)
	})

	t.Run("predict unknown card", func(t *testing.T) {
		code, _ := postEnvelope(t, srv, "/api/leads/predict-success", []byte(`{"card_id":"CC999999","age":30}`))
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("predict known card", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"card_id":      c.Cards()[0].CardID,
			"age":          34,
			"income":       900000.0,
			"credit_score": 780,
		})
		code, env := postEnvelope(t, srv, "/api/leads/predict-success", body)
		assert.Equal(t, http.StatusOK, code)

		var pred struct {
			SuccessProbability float64 `json:"success_probability"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &pred))
		assert.Greater(t, pred.SuccessProbability, 0.0)
		assert.Less(t, pred.SuccessProbability, 1.0)
	})
}

func TestForecastEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("unknown agent", func(t *testing.T) {
		code, _ := getEnvelope(t, srv, "/api/forecast/AG9999")
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("known agent", func(t *testing.T) {
		code, env := getEnvelope(t, srv, "/api/forecast/AG1001?months=4")
		assert.Equal(t, http.StatusOK, code)

		var result struct {
			Forecast []struct {
				Month string `json:"month"`
			} `json:"forecast"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Len(t, result.Forecast, 4)
	})

	t.Run("optimization", func(t *testing.T) {
		code, env := getEnvelope(t, srv, "/api/forecast/optimization/AG1001")
		assert.Equal(t, http.StatusOK, code)

		var suggestions []struct {
			Category string `json:"category"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &suggestions))
		assert.NotEmpty(t, suggestions)
	})
}

func TestScriptEndpoints(t *testing.T) {
	srv, c := newTestServer(t)
	cardID := c.Cards()[0].CardID

	t.Run("generate", func(t *testing.T) {
		code, env := getEnvelope(t, srv, "/api/scripts/generate/"+cardID)
		assert.Equal(t, http.StatusOK, code)

		var s struct {
			CardName string `json:"card_name"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &s))
		assert.Equal(t, c.Cards()[0].Name, s.CardName)
	})

	t.Run("objections", func(t *testing.T) {
		code, env := getEnvelope(t, srv, "/api/scripts/objections/"+cardID)
		assert.Equal(t, http.StatusOK, code)

		var set struct {
			Objections []struct {
				Objection string `json:"objection"`
			} `json:"objections"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &set))
		assert.GreaterOrEqual(t, len(set.Objections), 8)
	})

	t.Run("unknown card", func(t *testing.T) {
		code, _ := getEnvelope(t, srv, "/api/scripts/generate/CC999999")
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := rateLimit(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	handler := requestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
