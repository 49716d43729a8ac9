package model

import "time"

// EmploymentType enumerates the employment categories seen in sale records.
type EmploymentType string

const (
	EmploymentSalaried     EmploymentType = "Salaried"
	EmploymentSelfEmployed EmploymentType = "Self-Employed"
	EmploymentBusiness     EmploymentType = "Business"
	EmploymentStudent      EmploymentType = "Student"
)

// Defaults applied when an optional customer field is absent.
const (
	DefaultAge         = 35
	DefaultIncome      = 500000.0
	DefaultCreditScore = 700
)

// DefaultEmployment is the employment type assumed when none is recorded.
const DefaultEmployment = EmploymentSalaried

// Customer is the prospect attached to a sale record or synthesized for a
// lead. All fields are optional; accessors apply the documented defaults.
type Customer struct {
	Age            *int            `json:"age,omitempty"`
	Income         *float64        `json:"income,omitempty"`
	EmploymentType *EmploymentType `json:"employment_type,omitempty"`
	CreditScore    *int            `json:"credit_score,omitempty"`
}

// AgeOrDefault returns the customer's age, or 35 when unknown.
func (c Customer) AgeOrDefault() int {
	if c.Age != nil {
		return *c.Age
	}
	return DefaultAge
}

// IncomeOrDefault returns the customer's annual income, or 500000 when unknown.
func (c Customer) IncomeOrDefault() float64 {
	if c.Income != nil {
		return *c.Income
	}
	return DefaultIncome
}

// EmploymentOrDefault returns the customer's employment type, or Salaried.
func (c Customer) EmploymentOrDefault() EmploymentType {
	if c.EmploymentType != nil && *c.EmploymentType != "" {
		return *c.EmploymentType
	}
	return DefaultEmployment
}

// CreditScoreOrDefault returns the customer's credit score, or 700 when unknown.
func (c Customer) CreditScoreOrDefault() int {
	if c.CreditScore != nil {
		return *c.CreditScore
	}
	return DefaultCreditScore
}

// Location is where a sale happened.
type Location struct {
	City    string `json:"city,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// Application carries the processing trail of a card application.
type Application struct {
	ApplicationDate    time.Time `json:"application_date,omitempty"`
	ProcessingTimeDays int       `json:"processing_time_days,omitempty"`
	RejectionReason    *string   `json:"rejection_reason,omitempty"`
}

// SaleRecord is one historical card-sale attempt. Records are immutable
// snapshots; the core never mutates them.
type SaleRecord struct {
	SaleID      string      `json:"sale_id"`
	AgentID     string      `json:"agent_id"`
	CardID      string      `json:"card_id"`
	Date        time.Time   `json:"date"`
	Success     bool        `json:"success_flag"`
	Commission  float64     `json:"commission"`
	Customer    Customer    `json:"customer"`
	Location    Location    `json:"location"`
	Application Application `json:"application"`
}

// Month returns the record's month bucket as "YYYY-MM", or "" when the
// record carries no date.
func (r SaleRecord) Month() string {
	if r.Date.IsZero() {
		return ""
	}
	return r.Date.Format("2006-01")
}

// Agent is a sales agent on the roster.
type Agent struct {
	AgentID     string    `json:"agent_id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	JoiningDate time.Time `json:"joining_date"`
	Experience  int       `json:"experience"`
	Rating      float64   `json:"rating"`
	Active      bool      `json:"active"`
}
