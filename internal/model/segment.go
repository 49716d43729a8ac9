package model

// IncomeSegment is one of the four fixed income buckets used for
// per-segment aggregation and lead targeting.
type IncomeSegment string

const (
	SegmentLow      IncomeSegment = "Low"
	SegmentMedium   IncomeSegment = "Medium"
	SegmentHigh     IncomeSegment = "High"
	SegmentVeryHigh IncomeSegment = "Very High"
)

// Segment boundaries: lower bound inclusive, upper bound exclusive.
const (
	segmentMediumFloor   = 300000.0
	segmentHighFloor     = 600000.0
	segmentVeryHighFloor = 1000000.0
)

// SegmentForIncome buckets an annual income into its segment.
func SegmentForIncome(income float64) IncomeSegment {
	switch {
	case income < segmentMediumFloor:
		return SegmentLow
	case income < segmentHighFloor:
		return SegmentMedium
	case income < segmentVeryHighFloor:
		return SegmentHigh
	default:
		return SegmentVeryHigh
	}
}

// Range returns the income bounds of the segment. The upper bound of the
// top segment is reported as 2x its floor for synthesis purposes.
func (s IncomeSegment) Range() (low, high float64) {
	switch s {
	case SegmentLow:
		return 0, segmentMediumFloor
	case SegmentMedium:
		return segmentMediumFloor, segmentHighFloor
	case SegmentHigh:
		return segmentHighFloor, segmentVeryHighFloor
	default:
		return segmentVeryHighFloor, 2 * segmentVeryHighFloor
	}
}
