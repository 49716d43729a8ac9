// Package metrics holds the pure rate and index formulas shared by the
// scoring, forecasting, and insight layers. Every function guards its zero
// denominator by returning 0.
package metrics

// Reference scales used by the composite indices.
const (
	commissionScale = 5000.0
	volumeScale     = 100.0
)

// SuccessRate is successful/total, or 0 when total is 0.
func SuccessRate(successful, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(successful) / float64(total)
}

// AvgCommission is totalCommission/successfulCount, or 0 when no sale succeeded.
func AvgCommission(totalCommission float64, successfulCount int) float64 {
	if successfulCount <= 0 {
		return 0
	}
	return totalCommission / float64(successfulCount)
}

// GrowthRate is (current-previous)/previous, or 0 when previous is 0.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous
}

// ProfitabilityScore blends average commission (60%) against success rate
// (40%), with commission capped at the 5000 reference scale.
func ProfitabilityScore(rate, avgCommission float64) float64 {
	return 0.6*capped(avgCommission/commissionScale) + 0.4*rate
}

// PerformanceIndex blends volume, success rate, and average commission into
// one 0..1 figure of merit.
func PerformanceIndex(volume int, rate, avgCommission float64) float64 {
	return 0.3*capped(float64(volume)/volumeScale) +
		0.3*rate +
		0.4*capped(avgCommission/commissionScale)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func capped(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
