package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func empPtr(v EmploymentType) *EmploymentType { return &v }

func TestCustomerDefaults(t *testing.T) {
	t.Parallel()

	var c Customer
	assert.Equal(t, 35, c.AgeOrDefault())
	assert.Equal(t, 500000.0, c.IncomeOrDefault())
	assert.Equal(t, EmploymentSalaried, c.EmploymentOrDefault())
	assert.Equal(t, 700, c.CreditScoreOrDefault())
}

func TestCustomerExplicitValues(t *testing.T) {
	t.Parallel()

	c := Customer{
		Age:            intPtr(52),
		Income:         floatPtr(840000),
		EmploymentType: empPtr(EmploymentBusiness),
		CreditScore:    intPtr(812),
	}
	assert.Equal(t, 52, c.AgeOrDefault())
	assert.Equal(t, 840000.0, c.IncomeOrDefault())
	assert.Equal(t, EmploymentBusiness, c.EmploymentOrDefault())
	assert.Equal(t, 812, c.CreditScoreOrDefault())
}

func TestCustomerEmptyEmploymentFallsBack(t *testing.T) {
	t.Parallel()

	c := Customer{EmploymentType: empPtr("")}
	assert.Equal(t, EmploymentSalaried, c.EmploymentOrDefault())
}

func TestSaleRecordMonth(t *testing.T) {
	t.Parallel()

	r := SaleRecord{Date: time.Date(2024, 3, 17, 10, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-03", r.Month())

	assert.Equal(t, "", SaleRecord{}.Month())
}
