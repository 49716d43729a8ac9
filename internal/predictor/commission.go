package predictor

import (
	"encoding/json"
	"math"
	"os"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// MinCommissionRows is the minimum count of successful sales to fit the
// commission model.
const MinCommissionRows = 30

// CommissionPredictor estimates the commission of a successful sale for a
// customer+card pair. It trains on successful sales only.
type CommissionPredictor struct {
	mu       sync.RWMutex
	spec     *featureSpec
	weights  []float64
	bias     float64
	fallback float64
}

// NewCommissionPredictor returns an untrained predictor with the fixed
// default fallback.
func NewCommissionPredictor() *CommissionPredictor {
	return &CommissionPredictor{fallback: DefaultCommission}
}

// Trained reports whether a fitted model is loaded.
func (p *CommissionPredictor) Trained() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.spec != nil
}

// Features lists the feature columns of the fitted model, nil if untrained.
func (p *CommissionPredictor) Features() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.spec == nil {
		return nil
	}
	return p.spec.Names()
}

// Train fits a regression on the successful subset of records, with the
// recorded commission as target. The subset's average commission becomes
// the new fallback. Fewer than MinCommissionRows successful rows returns
// ErrInsufficientData and leaves prior state intact.
func (p *CommissionPredictor) Train(records []model.SaleRecord) error {
	var successful []model.SaleRecord
	for _, r := range records {
		if r.Success {
			successful = append(successful, r)
		}
	}
	if len(successful) < MinCommissionRows {
		return eris.Wrapf(ErrInsufficientData, "commission model needs %d successful rows, have %d",
			MinCommissionRows, len(successful))
	}

	spec := buildSpec(successful)
	rows := make([][]float64, len(successful))
	targets := make([]float64, len(successful))
	var sum float64
	for i, r := range successful {
		rows[i] = spec.Vector(r.Customer, r.CardID)
		targets[i] = r.Commission
		sum += r.Commission
	}
	weights, bias := fitLinear(rows, targets)
	if weights == nil {
		return eris.New("predictor: commission regression is singular")
	}

	p.mu.Lock()
	p.spec, p.weights, p.bias = spec, weights, bias
	p.fallback = sum / float64(len(successful))
	p.mu.Unlock()

	zap.L().Info("commission model trained",
		zap.Int("rows", len(successful)),
		zap.Float64("fallback", sum/float64(len(successful))))
	return nil
}

// Value returns the expected commission, never negative. Untrained
// predictors and non-finite model output fall back to the trailing average
// (or the fixed default when never trained).
func (p *CommissionPredictor) Value(c model.Customer, cardID string) float64 {
	p.mu.RLock()
	spec, weights, bias, fallback := p.spec, p.weights, p.bias, p.fallback
	p.mu.RUnlock()

	if spec == nil {
		return fallback
	}
	v := spec.Vector(c, cardID)
	if len(v) != len(weights) {
		return fallback
	}
	est := dot(weights, v) + bias
	if math.IsNaN(est) || math.IsInf(est, 0) {
		return fallback
	}
	if est < 0 {
		return 0
	}
	return est
}

// Fallback returns the current fallback commission.
func (p *CommissionPredictor) Fallback() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fallback
}

type commissionBlob struct {
	Spec     *featureSpec `json:"spec"`
	Weights  []float64    `json:"weights"`
	Bias     float64      `json:"bias"`
	Fallback float64      `json:"fallback"`
}

// Save writes the fitted state to path.
func (p *CommissionPredictor) Save(path string) error {
	p.mu.RLock()
	blob := commissionBlob{Spec: p.spec, Weights: p.weights, Bias: p.bias, Fallback: p.fallback}
	p.mu.RUnlock()
	if blob.Spec == nil {
		return eris.New("predictor: nothing to save, commission model untrained")
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return eris.Wrap(err, "predictor: encode commission model")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "predictor: write commission model")
	}
	return nil
}

// Load restores fitted state from path. A missing or malformed blob leaves
// the predictor untrained and returns the error.
func (p *CommissionPredictor) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrap(err, "predictor: read commission model")
	}
	var blob commissionBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return eris.Wrap(err, "predictor: decode commission model")
	}
	if blob.Spec == nil || len(blob.Weights) != blob.Spec.Width() {
		return eris.New("predictor: commission model blob is malformed")
	}
	p.mu.Lock()
	p.spec, p.weights, p.bias, p.fallback = blob.Spec, blob.Weights, blob.Bias, blob.Fallback
	p.mu.Unlock()
	return nil
}
