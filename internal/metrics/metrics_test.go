package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		successful int
		total      int
		want       float64
	}{
		{"zero total", 0, 0, 0},
		{"zero successful", 0, 10, 0},
		{"half", 5, 10, 0.5},
		{"all", 10, 10, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, SuccessRate(tt.successful, tt.total), 0.0001)
		})
	}
}

func TestAvgCommission(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, AvgCommission(5000, 0))
	assert.InDelta(t, 2500, AvgCommission(5000, 2), 0.0001)
}

func TestGrowthRate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, GrowthRate(10, 0))
	assert.InDelta(t, 0.5, GrowthRate(15, 10), 0.0001)
	assert.InDelta(t, -0.25, GrowthRate(7.5, 10), 0.0001)
}

func TestProfitabilityScore(t *testing.T) {
	t.Parallel()

	// Commission at the cap: 0.6*1 + 0.4*0.5.
	assert.InDelta(t, 0.8, ProfitabilityScore(0.5, 10000), 0.0001)
	// Below the cap: 0.6*(2500/5000) + 0.4*0.8.
	assert.InDelta(t, 0.62, ProfitabilityScore(0.8, 2500), 0.0001)
	assert.Equal(t, 0.0, ProfitabilityScore(0, 0))
}

func TestPerformanceIndex(t *testing.T) {
	t.Parallel()

	// Everything at or above its cap.
	assert.InDelta(t, 1.0, PerformanceIndex(150, 1.0, 9000), 0.0001)
	// 0.3*(50/100) + 0.3*0.6 + 0.4*(2000/5000).
	assert.InDelta(t, 0.49, PerformanceIndex(50, 0.6, 2000), 0.0001)
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.1, Clamp(0.05, 0.1, 0.9))
	assert.Equal(t, 0.9, Clamp(1.2, 0.1, 0.9))
	assert.Equal(t, 0.5, Clamp(0.5, 0.1, 0.9))
}
