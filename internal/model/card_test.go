package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinIncome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		eligibility string
		want        float64
	}{
		{"plain threshold", "Income > 500000", 500000},
		{"comma separated", "Annual income > 1,200,000 required", 1200000},
		{"no spaces", "Income>300000", 300000},
		{"unparseable", "Good credit history required", 300000},
		{"empty", "", 300000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := CardProduct{Eligibility: tt.eligibility}
			assert.Equal(t, tt.want, c.MinIncome())
		})
	}
}

func TestHasKeyword(t *testing.T) {
	t.Parallel()

	c := CardProduct{Name: "Platinum Business Rewards"}
	assert.True(t, c.HasKeyword("business"))
	assert.True(t, c.HasKeyword("student", "platinum"))
	assert.False(t, c.HasKeyword("student", "corporate"))
}
