// Package predictor provides the two prediction capabilities consulted by
// the lead generator and the prediction endpoint: approval probability and
// expected commission. Each predictor is either trained (a fitted model
// over customer+card features) or untrained (a closed-form heuristic), and
// any inference fault degrades to the heuristic rather than propagating.
package predictor

import (
	"encoding/json"
	"math"
	"os"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/metrics"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// ErrInsufficientData signals a training set below the minimum row count.
// Callers route it to the heuristic path rather than surfacing it.
var ErrInsufficientData = eris.New("predictor: insufficient training data")

// MinSuccessRows is the minimum record count to fit the success model.
const MinSuccessRows = 50

// SuccessPredictor estimates the approval probability of a customer+card
// pair. Retraining is serialized against concurrent inference.
type SuccessPredictor struct {
	mu      sync.RWMutex
	spec    *featureSpec
	weights []float64
	bias    float64
}

// NewSuccessPredictor returns an untrained predictor.
func NewSuccessPredictor() *SuccessPredictor {
	return &SuccessPredictor{}
}

// Trained reports whether a fitted model is loaded.
func (p *SuccessPredictor) Trained() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.spec != nil
}

// Features lists the feature columns of the fitted model, nil if untrained.
func (p *SuccessPredictor) Features() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.spec == nil {
		return nil
	}
	return p.spec.Names()
}

// Train fits the model on the full record set with the success flag as
// label. Fewer than MinSuccessRows rows leaves the predictor in its
// previous state and returns ErrInsufficientData.
func (p *SuccessPredictor) Train(records []model.SaleRecord) error {
	if len(records) < MinSuccessRows {
		return eris.Wrapf(ErrInsufficientData, "success model needs %d rows, have %d",
			MinSuccessRows, len(records))
	}

	spec := buildSpec(records)
	rows := make([][]float64, len(records))
	labels := make([]float64, len(records))
	for i, r := range records {
		rows[i] = spec.Vector(r.Customer, r.CardID)
		if r.Success {
			labels[i] = 1
		}
	}
	weights, bias := fitLogistic(rows, labels)

	p.mu.Lock()
	p.spec, p.weights, p.bias = spec, weights, bias
	p.mu.Unlock()

	zap.L().Info("success model trained",
		zap.Int("rows", len(records)),
		zap.Int("features", spec.Width()))
	return nil
}

// Probability returns the approval probability in [0,1]. Untrained
// predictors and any non-finite model output fall back to the heuristic.
func (p *SuccessPredictor) Probability(c model.Customer, cardID string) float64 {
	p.mu.RLock()
	spec, weights, bias := p.spec, p.weights, p.bias
	p.mu.RUnlock()

	if spec == nil {
		return HeuristicProbability(c)
	}
	v := spec.Vector(c, cardID)
	if len(v) != len(weights) {
		return HeuristicProbability(c)
	}
	prob := sigmoid(dot(weights, v) + bias)
	if math.IsNaN(prob) || math.IsInf(prob, 0) {
		return HeuristicProbability(c)
	}
	return metrics.Clamp(prob, 0, 1)
}

type successBlob struct {
	Spec    *featureSpec `json:"spec"`
	Weights []float64    `json:"weights"`
	Bias    float64      `json:"bias"`
}

// Save writes the fitted state to path.
func (p *SuccessPredictor) Save(path string) error {
	p.mu.RLock()
	blob := successBlob{Spec: p.spec, Weights: p.weights, Bias: p.bias}
	p.mu.RUnlock()
	if blob.Spec == nil {
		return eris.New("predictor: nothing to save, success model untrained")
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return eris.Wrap(err, "predictor: encode success model")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "predictor: write success model")
	}
	return nil
}

// Load restores fitted state from path. A missing or malformed blob leaves
// the predictor untrained and returns the error.
func (p *SuccessPredictor) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrap(err, "predictor: read success model")
	}
	var blob successBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return eris.Wrap(err, "predictor: decode success model")
	}
	if blob.Spec == nil || len(blob.Weights) != blob.Spec.Width() {
		return eris.New("predictor: success model blob is malformed")
	}
	p.mu.Lock()
	p.spec, p.weights, p.bias = blob.Spec, blob.Weights, blob.Bias
	p.mu.Unlock()
	return nil
}
