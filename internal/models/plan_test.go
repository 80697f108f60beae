package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvaswani/fundflow/internal/date"
)

func TestSteppedAmountCompounds(t *testing.T) {
	// 10% step-up: each successful installment raises the next one.
	expected := []float64{1000, 1100, 1210, 1331}
	for prior, want := range expected {
		got := SteppedAmount(1000, 10, prior)
		assert.InDelta(t, want, got, 1e-6, "installment after %d successes", prior)
	}
}

func TestSteppedAmountGuards(t *testing.T) {
	assert.Equal(t, 5000.0, SteppedAmount(5000, 0, 7), "zero step-up never compounds")
	assert.Equal(t, 5000.0, SteppedAmount(5000, -3, 7), "negative step-up treated as none")
	assert.Equal(t, 5000.0, SteppedAmount(5000, 10, 0), "first installment is the base amount")
}

func TestFrequencyNext(t *testing.T) {
	cases := []struct {
		freq Frequency
		in   string
		want string
	}{
		{FrequencyWeekly, "2024-01-01", "2024-01-08"},
		{FrequencyMonthly, "2024-01-31", "2024-02-29"},
		{FrequencyMonthly, "2023-01-31", "2023-02-28"},
		{FrequencyQuarterly, "2024-01-31", "2024-04-30"},
	}
	for _, tc := range cases {
		got := tc.freq.Next(date.MustParse(tc.in))
		assert.Equal(t, tc.want, got.String(), "%s from %s", tc.freq, tc.in)
	}
}

func TestAdvanceScheduleKeepsCadence(t *testing.T) {
	p := Plan{
		BaseAmount:        2000,
		Frequency:         FrequencyMonthly,
		NextExecutionDate: date.MustParse("2024-02-01"),
		State:             PlanActive,
	}
	// Advancing is anchored on the scheduled date, so a late execution does
	// not drift the cadence.
	p.AdvanceSchedule()
	assert.Equal(t, 1, p.InstallmentCount)
	assert.Equal(t, "2024-03-01", p.NextExecutionDate.String())

	p.AdvanceSchedule()
	assert.Equal(t, 2, p.InstallmentCount)
	assert.Equal(t, "2024-04-01", p.NextExecutionDate.String())
}

func TestIsDueOn(t *testing.T) {
	p := Plan{State: PlanActive, NextExecutionDate: date.MustParse("2024-03-10")}
	assert.True(t, p.IsDueOn(date.MustParse("2024-03-10")), "due on the scheduled day")
	assert.True(t, p.IsDueOn(date.MustParse("2024-04-19")), "still due when overdue")
	assert.False(t, p.IsDueOn(date.MustParse("2024-03-09")), "not due early")

	p.State = PlanPaused
	assert.False(t, p.IsDueOn(date.MustParse("2024-04-19")), "paused plans are never due")
}

func TestParseFrequency(t *testing.T) {
	f, err := ParseFrequency("monthly")
	assert.NoError(t, err)
	assert.Equal(t, FrequencyMonthly, f)

	_, err = ParseFrequency("fortnightly")
	assert.Error(t, err)
}

func TestParseEnums(t *testing.T) {
	c, err := ParseFundCategory(" equity ")
	assert.NoError(t, err)
	assert.Equal(t, CategoryEquity, c)

	r, err := ParseRiskLevel("HIGH")
	assert.NoError(t, err)
	assert.Equal(t, RiskHigh, r)

	s, err := ParsePlanState("paused")
	assert.NoError(t, err)
	assert.Equal(t, PlanPaused, s)

	_, err = ParseFundCategory("crypto")
	assert.Error(t, err)
}
