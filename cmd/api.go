package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/coach"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/insights"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

type api struct {
	coach *coach.Coach
}

type apiResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(apiResponse{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(apiResponse{Status: "error", Message: message})
}

// fail maps domain errors onto HTTP status codes. Unknown card or agent IDs
// and empty sales histories are client lookup failures, not server faults.
func (a *api) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coach.ErrCardNotFound),
		errors.Is(err, coach.ErrAgentNotFound),
		errors.Is(err, insights.ErrNoSales):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		zap.L().Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func (a *api) routes(r chi.Router) {
	r.Get("/health", a.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/cards/performance", a.cardPerformance)
		r.Get("/cards/recommend/{agentID}", a.recommendCards)
		r.Post("/cards/compare", a.compareCards)

		r.Get("/agents/performance/{agentID}", a.agentPerformance)
		r.Get("/agents/insights/{agentID}", a.agentInsights)

		r.Get("/leads/recommend/{agentID}", a.recommendLeads)
		r.Post("/leads/predict-success", a.predictSuccess)

		r.Get("/forecast/{agentID}", a.forecastCommission)
		r.Get("/forecast/optimization/{agentID}", a.forecastOptimization)

		r.Get("/scripts/generate/{cardID}", a.generateScript)
		r.Get("/scripts/objections/{cardID}", a.scriptObjections)
	})
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"sales":  len(a.coach.Sales()),
		"cards":  len(a.coach.Cards()),
		"agents": len(a.coach.Agents()),
	})
}

func (a *api) cardPerformance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.coach.AnalyzeCards())
}

func (a *api) recommendCards(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentID")
	limit := queryInt(r, "limit", 5)
	writeJSON(w, http.StatusOK, a.coach.RecommendCards(agentID, limit))
}

func (a *api) compareCards(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CardIDs []string `json:"card_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if len(req.CardIDs) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "card_ids is required")
		return
	}

	result, err := a.coach.CompareCards(req.CardIDs)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *api) agentPerformance(w http.ResponseWriter, r *http.Request) {
	p, err := a.coach.Performance(chi.URLParam(r, "agentID"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *api) agentInsights(w http.ResponseWriter, r *http.Request) {
	ins, err := a.coach.Insights(chi.URLParam(r, "agentID"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ins)
}

func (a *api) recommendLeads(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentID")
	limit := queryInt(r, "limit", cfg.Leads.DefaultLimit)
	writeJSON(w, http.StatusOK, a.coach.RecommendLeads(agentID, limit))
}

func (a *api) predictSuccess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		model.Customer
		CardID string `json:"card_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if req.CardID == "" {
		writeError(w, http.StatusUnprocessableEntity, "card_id is required")
		return
	}

	pred, err := a.coach.PredictSuccess(req.Customer, req.CardID)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pred)
}

func (a *api) forecastCommission(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentID")
	months := queryInt(r, "months", cfg.Forecast.Months)

	result, err := a.coach.Forecast(agentID, months)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *api) forecastOptimization(w http.ResponseWriter, r *http.Request) {
	suggestions, err := a.coach.Suggestions(chi.URLParam(r, "agentID"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (a *api) generateScript(w http.ResponseWriter, r *http.Request) {
	s, err := a.coach.Script(chi.URLParam(r, "cardID"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *api) scriptObjections(w http.ResponseWriter, r *http.Request) {
	set, err := a.coach.Objections(chi.URLParam(r, "cardID"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}
