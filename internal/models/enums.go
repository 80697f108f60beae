package models

import (
	"fmt"
	"strings"

	"github.com/nvaswani/fundflow/internal/date"
)

// Frequency is the cadence at which a plan invests.
type Frequency string

const (
	FrequencyWeekly    Frequency = "WEEKLY"
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
)

// Valid reports whether f is one of the supported cadences.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly:
		return true
	}
	return false
}

// Next advances d by exactly one cadence unit. Monthly and quarterly steps
// preserve the day of the month, clamping to month end when needed.
func (f Frequency) Next(d date.Date) date.Date {
	switch f {
	case FrequencyWeekly:
		return d.AddWeeks(1)
	case FrequencyQuarterly:
		return d.AddQuarters(1)
	default:
		return d.AddMonths(1)
	}
}

// ParseFrequency reads a cadence name, case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown frequency %q", s)
	}
	return f, nil
}

// PlanState is the lifecycle state of a plan. Stopped is terminal.
type PlanState string

const (
	PlanActive  PlanState = "ACTIVE"
	PlanPaused  PlanState = "PAUSED"
	PlanStopped PlanState = "STOPPED"
)

// Valid reports whether s is a known plan state.
func (s PlanState) Valid() bool {
	switch s {
	case PlanActive, PlanPaused, PlanStopped:
		return true
	}
	return false
}

// ParsePlanState reads a plan state name, case-insensitively.
func ParsePlanState(s string) (PlanState, error) {
	st := PlanState(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown plan state %q", s)
	}
	return st, nil
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionPending TransactionStatus = "PENDING"
	TransactionSuccess TransactionStatus = "SUCCESS"
	TransactionFailed  TransactionStatus = "FAILURE"
)

// Valid reports whether s is a known settlement state.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPending, TransactionSuccess, TransactionFailed:
		return true
	}
	return false
}

// TransactionType distinguishes scheduled installments from ad-hoc top-ups.
// Both settle through the same payment path, but only installments advance
// a plan's schedule.
type TransactionType string

const (
	TypeInstallment TransactionType = "INSTALLMENT"
	TypeLumpSum     TransactionType = "LUMP_SUM"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeInstallment, TypeLumpSum:
		return true
	}
	return false
}

// FundCategory classifies a mutual fund.
type FundCategory string

const (
	CategoryEquity FundCategory = "EQUITY"
	CategoryDebt   FundCategory = "DEBT"
	CategoryHybrid FundCategory = "HYBRID"
	CategoryELSS   FundCategory = "ELSS"
)

// Valid reports whether c is a known category.
func (c FundCategory) Valid() bool {
	switch c {
	case CategoryEquity, CategoryDebt, CategoryHybrid, CategoryELSS:
		return true
	}
	return false
}

// ParseFundCategory reads a category name, case-insensitively.
func ParseFundCategory(s string) (FundCategory, error) {
	c := FundCategory(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown fund category %q", s)
	}
	return c, nil
}

// RiskLevel grades a fund's volatility.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Valid reports whether r is a known risk level.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// ParseRiskLevel reads a risk level name, case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, error) {
	r := RiskLevel(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown risk level %q", s)
	}
	return r, nil
}
