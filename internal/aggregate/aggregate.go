// Package aggregate groups sale records by an arbitrary key and computes the
// count/sum rollups every downstream component reads. Group order is the
// order of first occurrence so downstream sorts stay stable.
package aggregate

import (
	"sort"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/metrics"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/model"
)

// Rollup is the per-group accumulation.
type Rollup struct {
	Count         int
	SuccessCount  int
	CommissionSum float64
}

// SuccessRate is the group's successful/total ratio.
func (r Rollup) SuccessRate() float64 {
	return metrics.SuccessRate(r.SuccessCount, r.Count)
}

// AvgCommission is the group's commission per successful sale.
func (r Rollup) AvgCommission() float64 {
	return metrics.AvgCommission(r.CommissionSum, r.SuccessCount)
}

// KeyFunc maps a record to its group key. Returning ok=false means the
// record contributes to no group (missing optional field).
type KeyFunc func(model.SaleRecord) (key string, ok bool)

// Grouped holds rollups in first-occurrence order.
type Grouped struct {
	keys   []string
	groups map[string]*Rollup
}

// GroupBy folds records into per-key rollups.
func GroupBy(records []model.SaleRecord, key KeyFunc) *Grouped {
	g := &Grouped{groups: make(map[string]*Rollup)}
	for _, rec := range records {
		k, ok := key(rec)
		if !ok {
			continue
		}
		r, seen := g.groups[k]
		if !seen {
			r = &Rollup{}
			g.groups[k] = r
			g.keys = append(g.keys, k)
		}
		r.Count++
		if rec.Success {
			r.SuccessCount++
		}
		// Commission on a failed sale is a data anomaly; it is summed
		// as recorded rather than zeroed.
		r.CommissionSum += rec.Commission
	}
	return g
}

// Keys returns group keys in first-occurrence order.
func (g *Grouped) Keys() []string { return g.keys }

// Len returns the number of groups.
func (g *Grouped) Len() int { return len(g.keys) }

// Get returns the rollup for key. The zero rollup is returned for an
// unknown key so callers never divide by a missing group.
func (g *Grouped) Get(key string) Rollup {
	if r, ok := g.groups[key]; ok {
		return *r
	}
	return Rollup{}
}

// Has reports whether the key accumulated any records.
func (g *Grouped) Has(key string) bool {
	_, ok := g.groups[key]
	return ok
}

// SortedKeys returns group keys in ascending lexical order. Month buckets
// use "YYYY-MM" labels so lexical order is chronological order.
func (g *Grouped) SortedKeys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	sort.Strings(out)
	return out
}

// ByCard groups records by card id.
func ByCard(records []model.SaleRecord) *Grouped {
	return GroupBy(records, func(r model.SaleRecord) (string, bool) {
		return r.CardID, r.CardID != ""
	})
}

// ByAgent groups records by agent id.
func ByAgent(records []model.SaleRecord) *Grouped {
	return GroupBy(records, func(r model.SaleRecord) (string, bool) {
		return r.AgentID, r.AgentID != ""
	})
}

// ByMonth groups records by "YYYY-MM" bucket. Records without a date are
// skipped.
func ByMonth(records []model.SaleRecord) *Grouped {
	return GroupBy(records, func(r model.SaleRecord) (string, bool) {
		m := r.Month()
		return m, m != ""
	})
}

// ByIncomeSegment groups records by the customer's income segment. Records
// without a recorded income are skipped rather than defaulted, so segment
// stats reflect observed incomes only.
func ByIncomeSegment(records []model.SaleRecord) *Grouped {
	return GroupBy(records, func(r model.SaleRecord) (string, bool) {
		if r.Customer.Income == nil {
			return "", false
		}
		return string(model.SegmentForIncome(*r.Customer.Income)), true
	})
}

// ByEmployment groups records by the customer's employment type. Records
// without one are skipped.
func ByEmployment(records []model.SaleRecord) *Grouped {
	return GroupBy(records, func(r model.SaleRecord) (string, bool) {
		if r.Customer.EmploymentType == nil || *r.Customer.EmploymentType == "" {
			return "", false
		}
		return string(*r.Customer.EmploymentType), true
	})
}

// FilterByAgent returns the subset of records belonging to agentID,
// preserving input order.
func FilterByAgent(records []model.SaleRecord, agentID string) []model.SaleRecord {
	var out []model.SaleRecord
	for _, r := range records {
		if r.AgentID == agentID {
			out = append(out, r)
		}
	}
	return out
}
