// Package models defines the domain entities, enums, and error types shared
// across services, storage, and the scheduler.
package models

import (
	"math"
	"time"

	"github.com/nvaswani/fundflow/internal/date"
)

// Plan is a systematic investment plan: a recurring instruction to invest
// BaseAmount into a fund at a fixed cadence, with optional annual-style
// step-up compounding applied per successful installment.
type Plan struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	FundID            string    `json:"fund_id"`
	BaseAmount        float64   `json:"base_amount"`
	Frequency         Frequency `json:"frequency"`
	StartDate         date.Date `json:"start_date"`
	NextExecutionDate date.Date `json:"next_execution_date"`
	State             PlanState `json:"state"`
	StepUpPercent     float64   `json:"step_up_percent"`
	InstallmentCount  int       `json:"installment_count"` // successful installments so far
	CreatedAt         time.Time `json:"created_at"`
}

// IsActive reports whether the plan is in the ACTIVE state.
func (p *Plan) IsActive() bool { return p.State == PlanActive }

// IsDueOn reports whether the plan should execute on asOf: it must be
// ACTIVE with a next execution date on or before asOf.
func (p *Plan) IsDueOn(asOf date.Date) bool {
	return p.IsActive() && p.NextExecutionDate.OnOrBefore(asOf)
}

// NextInstallmentAmount is the amount the next execution would charge,
// compounded over the installments already completed.
func (p *Plan) NextInstallmentAmount() float64 {
	return SteppedAmount(p.BaseAmount, p.StepUpPercent, p.InstallmentCount)
}

// AdvanceSchedule records one successful installment: the count goes up by
// one and the next execution date moves exactly one frequency unit forward
// from the current scheduled date, not from the day the confirmation
// arrived. A plan executed late therefore keeps its original cadence.
func (p *Plan) AdvanceSchedule() {
	p.InstallmentCount++
	p.NextExecutionDate = p.Frequency.Next(p.NextExecutionDate)
}

// SteppedAmount compounds base by stepUpPercent once per prior successful
// installment: base * (1 + stepUpPercent/100)^prior. With no step-up or no
// prior installments the base is returned unchanged.
func SteppedAmount(base, stepUpPercent float64, prior int) float64 {
	if stepUpPercent <= 0 || prior <= 0 {
		return base
	}
	return base * math.Pow(1+stepUpPercent/100, float64(prior))
}
