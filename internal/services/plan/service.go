// Package plan provides investment plan lifecycle services
package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
)

// Compile-time interface check
var _ interfaces.PlanService = (*Service)(nil)

// Service implements PlanService
type Service struct {
	storage interfaces.StorageManager
	idgen   interfaces.IDGenerator
	logger  *common.Logger
}

// NewService creates a new plan service
func NewService(storage interfaces.StorageManager, idgen interfaces.IDGenerator, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		idgen:   idgen,
		logger:  logger,
	}
}

// CreatePlan validates the request and stores a new ACTIVE plan. The first
// installment is scheduled for the start date itself.
func (s *Service) CreatePlan(ctx context.Context, req interfaces.CreatePlanRequest) (*models.Plan, error) {
	user, err := s.storage.Users().GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.NewNotFound(models.KindUser, req.UserID)
	}

	fundExists, err := s.storage.Funds().Exists(ctx, req.FundID)
	if err != nil {
		return nil, fmt.Errorf("failed to check fund: %w", err)
	}
	if !fundExists {
		return nil, models.NewNotFound(models.KindFund, req.FundID)
	}

	if req.Amount <= 0 {
		return nil, models.NewValidation("amount", "must be greater than zero")
	}
	if !req.Frequency.Valid() {
		return nil, models.NewValidation("frequency", fmt.Sprintf("unknown frequency '%s'", req.Frequency))
	}
	if req.StartDate.IsZero() {
		return nil, models.NewValidation("start_date", "is required")
	}
	if req.StepUpPercent < 0 {
		return nil, models.NewValidation("step_up", "cannot be negative")
	}

	p := models.Plan{
		ID:                s.idgen.NextID(common.PrefixPlan),
		UserID:            req.UserID,
		FundID:            req.FundID,
		BaseAmount:        req.Amount,
		Frequency:         req.Frequency,
		StartDate:         req.StartDate,
		NextExecutionDate: req.StartDate,
		State:             models.PlanActive,
		StepUpPercent:     req.StepUpPercent,
		InstallmentCount:  0,
		CreatedAt:         time.Now(),
	}

	if err := s.storage.Plans().Add(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	s.logger.Info().
		Str("plan", p.ID).
		Str("user", p.UserID).
		Str("fund", p.FundID).
		Str("frequency", string(p.Frequency)).
		Float64("amount", p.BaseAmount).
		Msg("Plan created")
	return &p, nil
}

// PausePlan suspends an ACTIVE plan. Paused plans are skipped by the
// scheduler but keep their next execution date.
func (s *Service) PausePlan(ctx context.Context, planID string) error {
	p, err := s.loadPlan(ctx, planID)
	if err != nil {
		return err
	}
	if p.State != models.PlanActive {
		return models.NewStateError(planID, p.State, "pause")
	}

	p.State = models.PlanPaused
	if err := s.savePlan(ctx, p); err != nil {
		return err
	}

	s.logger.Info().Str("plan", planID).Msg("Plan paused")
	return nil
}

// UnpausePlan reactivates a PAUSED plan. Installments missed while paused
// run at the next scheduler pass, since the execution date was never moved.
func (s *Service) UnpausePlan(ctx context.Context, planID string) error {
	p, err := s.loadPlan(ctx, planID)
	if err != nil {
		return err
	}
	if p.State != models.PlanPaused {
		return models.NewStateError(planID, p.State, "unpause")
	}

	p.State = models.PlanActive
	if err := s.savePlan(ctx, p); err != nil {
		return err
	}

	s.logger.Info().Str("plan", planID).Msg("Plan unpaused")
	return nil
}

// StopPlan stops a plan for good. Stopped is terminal; the record stays
// readable for history and valuation.
func (s *Service) StopPlan(ctx context.Context, planID string) error {
	p, err := s.loadPlan(ctx, planID)
	if err != nil {
		return err
	}
	if p.State == models.PlanStopped {
		return models.NewStateError(planID, p.State, "stop")
	}

	p.State = models.PlanStopped
	if err := s.savePlan(ctx, p); err != nil {
		return err
	}

	s.logger.Info().Str("plan", planID).Msg("Plan stopped")
	return nil
}

// ModifyStepUp changes the annual step-up percentage. Applies to ACTIVE and
// PAUSED plans; stopped plans cannot be modified.
func (s *Service) ModifyStepUp(ctx context.Context, planID string, percent float64) error {
	if percent < 0 {
		return models.NewValidation("step_up", "cannot be negative")
	}

	p, err := s.loadPlan(ctx, planID)
	if err != nil {
		return err
	}
	if p.State == models.PlanStopped {
		return models.NewStateError(planID, p.State, "modify step-up")
	}

	p.StepUpPercent = percent
	if err := s.savePlan(ctx, p); err != nil {
		return err
	}

	s.logger.Info().Str("plan", planID).Float64("step_up", percent).Msg("Plan step-up modified")
	return nil
}

// GetPlan retrieves a plan by ID
func (s *Service) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	return s.loadPlan(ctx, planID)
}

// ListByUser returns all of a user's plans ordered by plan ID. Unknown
// users simply have no plans.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.Plan, error) {
	plans, err := s.storage.Plans().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

// ListByUserAndState narrows ListByUser to one lifecycle state
func (s *Service) ListByUserAndState(ctx context.Context, userID string, state models.PlanState) ([]models.Plan, error) {
	if !state.Valid() {
		return nil, models.NewValidation("state", fmt.Sprintf("unknown state '%s'", state))
	}
	plans, err := s.storage.Plans().GetByUserAndState(ctx, userID, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

// InstallmentPreview is the amount the next execution would charge, with
// the step-up compounded over the installments already settled.
func (s *Service) InstallmentPreview(ctx context.Context, planID string) (float64, error) {
	p, err := s.loadPlan(ctx, planID)
	if err != nil {
		return 0, err
	}
	return p.NextInstallmentAmount(), nil
}

// RecordInstallmentSuccess applies one confirmed installment: the count
// goes up and the next execution date moves one frequency unit forward
// from the currently scheduled date. The plan's state is not consulted;
// pausing or stopping after a payment went out does not void it.
func (s *Service) RecordInstallmentSuccess(ctx context.Context, planID string) error {
	p, err := s.loadPlan(ctx, planID)
	if err != nil {
		return err
	}

	p.AdvanceSchedule()
	if err := s.savePlan(ctx, p); err != nil {
		return err
	}

	s.logger.Debug().
		Str("plan", planID).
		Int("installments", p.InstallmentCount).
		Str("next_execution", p.NextExecutionDate.String()).
		Msg("Installment recorded")
	return nil
}

// loadPlan fetches a plan and converts absence into a typed not-found
// error.
func (s *Service) loadPlan(ctx context.Context, planID string) (*models.Plan, error) {
	p, err := s.storage.Plans().GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, models.NewNotFound(models.KindPlan, planID)
	}
	return p, nil
}

// savePlan persists an updated plan
func (s *Service) savePlan(ctx context.Context, p *models.Plan) error {
	found, err := s.storage.Plans().Update(ctx, *p)
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	if !found {
		return models.NewNotFound(models.KindPlan, p.ID)
	}
	return nil
}
