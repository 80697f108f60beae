// Package interfaces defines the repository and service contracts for fundflow
package interfaces

import (
	"context"

	"github.com/nvaswani/fundflow/internal/date"
	"github.com/nvaswani/fundflow/internal/models"
)

// PlanService manages the plan lifecycle.
type PlanService interface {
	// CreatePlan validates the owner, fund, amount, and step-up, and stores
	// a new ACTIVE plan whose first execution falls on the start date.
	CreatePlan(ctx context.Context, req CreatePlanRequest) (*models.Plan, error)

	// PausePlan suspends an ACTIVE plan.
	PausePlan(ctx context.Context, planID string) error

	// UnpausePlan reactivates a PAUSED plan.
	UnpausePlan(ctx context.Context, planID string) error

	// StopPlan stops a plan for good. Stopped plans only serve reads.
	StopPlan(ctx context.Context, planID string) error

	// ModifyStepUp changes the step-up percentage of a non-stopped plan.
	ModifyStepUp(ctx context.Context, planID string, percent float64) error

	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
	ListByUser(ctx context.Context, userID string) ([]models.Plan, error)
	ListByUserAndState(ctx context.Context, userID string, state models.PlanState) ([]models.Plan, error)

	// InstallmentPreview is the amount the next execution would charge.
	InstallmentPreview(ctx context.Context, planID string) (float64, error)

	// RecordInstallmentSuccess applies one confirmed installment: the count
	// goes up and the next execution date moves one frequency unit forward
	// from the currently scheduled date.
	RecordInstallmentSuccess(ctx context.Context, planID string) error
}

// CreatePlanRequest carries the fields for a new plan.
type CreatePlanRequest struct {
	UserID        string
	FundID        string
	Amount        float64
	Frequency     models.Frequency
	StartDate     date.Date
	StepUpPercent float64
}

// FundService manages the fund catalog.
type FundService interface {
	CreateFund(ctx context.Context, req CreateFundRequest) (*models.Fund, error)
	GetFund(ctx context.Context, fundID string) (*models.Fund, error)
	ListFunds(ctx context.Context) ([]models.Fund, error)
	FilterByCategory(ctx context.Context, category models.FundCategory) ([]models.Fund, error)
	FilterByRisk(ctx context.Context, risk models.RiskLevel) ([]models.Fund, error)
	FundExists(ctx context.Context, fundID string) (bool, error)

	// RefreshNAVs pulls current NAVs from the market service into the
	// stored catalog records.
	RefreshNAVs(ctx context.Context) error
}

// CreateFundRequest carries the fields for a new catalog entry.
type CreateFundRequest struct {
	Name     string
	Category models.FundCategory
	Risk     models.RiskLevel
	NAV      float64
}

// PortfolioService computes valuations over settled transactions.
type PortfolioService interface {
	// PlanValuation builds the valuation line for one plan.
	PlanValuation(ctx context.Context, planID string) (*models.PortfolioItem, error)

	// UserPortfolio builds valuation lines for all of a user's plans.
	UserPortfolio(ctx context.Context, userID string) ([]models.PortfolioItem, error)

	// FilterByState narrows UserPortfolio to plans in one state.
	FilterByState(ctx context.Context, userID string, state models.PlanState) ([]models.PortfolioItem, error)

	// Summary aggregates a user's plans into totals and per-state counts.
	Summary(ctx context.Context, userID string) (*models.PortfolioSummary, error)

	// History returns every transaction recorded for a plan.
	History(ctx context.Context, planID string) ([]models.Transaction, error)

	TotalInvested(ctx context.Context, planID string) (float64, error)
	TotalUnits(ctx context.Context, planID string) (float64, error)
	CurrentValue(ctx context.Context, planID string) (float64, error)

	// RenderGrowthChart renders a PNG of invested versus holding value over
	// the plan's settled history.
	RenderGrowthChart(ctx context.Context, planID string) ([]byte, error)
}

// MarketPriceService quotes and maintains fund NAVs.
type MarketPriceService interface {
	// CurrentNAV returns the latest NAV; unknown funds are a not-found
	// error.
	CurrentNAV(ctx context.Context, fundID string) (float64, error)

	// UpdateNAV sets the NAV for a fund. Non-positive values are rejected.
	UpdateNAV(ctx context.Context, fundID string, nav float64) error

	// SimulateMovement applies a random change within ±maxPercent to every
	// tracked fund and returns the new NAVs.
	SimulateMovement(ctx context.Context, maxPercent float64) (map[string]float64, error)
}

// PaymentHandler consumes a completion event. Deliveries are at-least-once
// and unordered, so handlers must be idempotent.
type PaymentHandler func(ctx context.Context, event models.PaymentEvent)

// PaymentGateway initiates installment collection.
type PaymentGateway interface {
	// InitiatePayment starts collection for the request and later invokes
	// deliver with the completion event: possibly immediately, possibly
	// never, possibly more than once.
	InitiatePayment(ctx context.Context, req models.PaymentRequest, deliver PaymentHandler) error
}

// PlanScheduler runs due installments and settles payment outcomes.
type PlanScheduler interface {
	// ExecuteDue runs every plan due as of the given date and returns the
	// number of plans whose payment initiation completed. Per-plan failures
	// are logged and skipped, never aborting the batch.
	ExecuteDue(ctx context.Context, asOf date.Date) (int, error)

	// ExecuteLumpSum places an ad-hoc top-up on a non-stopped plan. The
	// purchase settles through the payment path like any installment but
	// never moves the plan's schedule.
	ExecuteLumpSum(ctx context.Context, planID string, amount float64, asOf date.Date) (*models.Transaction, error)

	// HandlePaymentEvent applies a completion event to its transaction and,
	// on success of an installment, advances the plan schedule. Unknown
	// transactions and repeat deliveries are no-ops.
	HandlePaymentEvent(ctx context.Context, event models.PaymentEvent)
}

// IDGenerator issues entity identifiers. Implementations are safe for
// concurrent use.
type IDGenerator interface {
	// NextID returns a fresh identifier carrying the given prefix.
	NextID(prefix string) string

	// Reset restarts any internal sequence. Generators without sequence
	// state treat this as a no-op.
	Reset()
}
