// Package scheduler runs due plan installments and settles payment
// completion events.
package scheduler

import (
	"context"
	"fmt"

	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/date"
	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
)

// Compile-time interface check
var _ interfaces.PlanScheduler = (*Service)(nil)

// Service implements PlanScheduler. A run is one pass over the plans due
// on a date; settlement happens whenever the gateway delivers completion
// events, which may be during the run, later, repeatedly, or never.
type Service struct {
	storage interfaces.StorageManager
	plans   interfaces.PlanService
	market  interfaces.MarketPriceService
	gateway interfaces.PaymentGateway
	idgen   interfaces.IDGenerator
	logger  *common.Logger
}

// NewService creates a new scheduler service
func NewService(storage interfaces.StorageManager, plans interfaces.PlanService, market interfaces.MarketPriceService, gateway interfaces.PaymentGateway, idgen interfaces.IDGenerator, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		plans:   plans,
		market:  market,
		gateway: gateway,
		idgen:   idgen,
		logger:  logger,
	}
}

// ExecuteDue runs every ACTIVE plan whose next execution date is on or
// before asOf. Each plan gets a PENDING transaction persisted before its
// payment is initiated; the returned count is the number of plans that
// made it through initiation. A plan that fails is logged and left
// untouched for the next pass, never aborting the rest of the batch.
//
// Plans are not marked in-flight: a pass run before an earlier payment
// settles will charge the plan again.
func (s *Service) ExecuteDue(ctx context.Context, asOf date.Date) (int, error) {
	due, err := s.storage.Plans().GetDueAsOf(ctx, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to list due plans: %w", err)
	}

	executed := 0
	for i := range due {
		ok, err := s.executePlan(ctx, due[i].ID, asOf)
		if err != nil {
			s.logger.Error().Str("plan", due[i].ID).Err(err).Msg("Plan execution failed")
			continue
		}
		if ok {
			executed++
		}
	}

	s.logger.Info().
		Str("as_of", asOf.String()).
		Int("due", len(due)).
		Int("executed", executed).
		Msg("Scheduler run finished")
	return executed, nil
}

// executePlan runs one due plan. It reports false with no error when the
// plan turned out not to be due after all, e.g. paused between listing
// and execution.
func (s *Service) executePlan(ctx context.Context, planID string, asOf date.Date) (bool, error) {
	p, err := s.storage.Plans().GetByID(ctx, planID)
	if err != nil {
		return false, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return false, models.NewNotFound(models.KindPlan, planID)
	}
	if !p.IsDueOn(asOf) {
		s.logger.Debug().Str("plan", planID).Str("state", string(p.State)).Msg("Plan no longer due, skipping")
		return false, nil
	}

	nav, err := s.market.CurrentNAV(ctx, p.FundID)
	if err != nil {
		return false, fmt.Errorf("failed to quote fund %s: %w", p.FundID, err)
	}

	amount := p.NextInstallmentAmount()
	txn := models.NewTransaction(s.idgen.NextID(common.PrefixTransaction), p.ID, amount, nav, asOf)
	if err := s.storage.Transactions().Add(ctx, txn); err != nil {
		return false, fmt.Errorf("failed to save transaction: %w", err)
	}

	req := models.PaymentRequest{
		TransactionID: txn.ID,
		PlanID:        p.ID,
		Amount:        amount,
	}
	if err := s.gateway.InitiatePayment(ctx, req, s.HandlePaymentEvent); err != nil {
		return false, fmt.Errorf("failed to initiate payment: %w", err)
	}

	s.logger.Info().
		Str("plan", p.ID).
		Str("transaction", txn.ID).
		Float64("amount", amount).
		Float64("nav", nav).
		Float64("units", txn.Units).
		Msg("Installment initiated")
	return true, nil
}

// ExecuteLumpSum places an ad-hoc top-up on a plan. Any non-stopped plan
// can be topped up, paused included. The purchase settles through the same
// payment path as an installment but never moves the plan's schedule or
// count.
func (s *Service) ExecuteLumpSum(ctx context.Context, planID string, amount float64, asOf date.Date) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, models.NewValidation("amount", "must be greater than zero")
	}

	p, err := s.storage.Plans().GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, models.NewNotFound(models.KindPlan, planID)
	}
	if p.State == models.PlanStopped {
		return nil, models.NewStateError(planID, p.State, "top up")
	}

	nav, err := s.market.CurrentNAV(ctx, p.FundID)
	if err != nil {
		return nil, fmt.Errorf("failed to quote fund %s: %w", p.FundID, err)
	}

	txn := models.NewLumpSum(s.idgen.NextID(common.PrefixTransaction), p.ID, amount, nav, asOf)
	if err := s.storage.Transactions().Add(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	req := models.PaymentRequest{
		TransactionID: txn.ID,
		PlanID:        p.ID,
		Amount:        amount,
	}
	if err := s.gateway.InitiatePayment(ctx, req, s.HandlePaymentEvent); err != nil {
		return nil, fmt.Errorf("failed to initiate payment: %w", err)
	}

	s.logger.Info().
		Str("plan", p.ID).
		Str("transaction", txn.ID).
		Float64("amount", amount).
		Float64("nav", nav).
		Msg("Lump sum initiated")
	return &txn, nil
}

// HandlePaymentEvent applies one completion event. Events for unknown
// transactions and events arriving after the transaction already settled
// are dropped; the callback flag on the transaction is the only
// idempotence guard, so the first delivery wins regardless of order. A
// successful installment advances its plan one frequency unit from the
// scheduled date; a failure leaves the plan's count and date alone so the
// next pass retries it.
func (s *Service) HandlePaymentEvent(ctx context.Context, event models.PaymentEvent) {
	txn, err := s.storage.Transactions().GetByID(ctx, event.TransactionID)
	if err != nil {
		s.logger.Error().Str("transaction", event.TransactionID).Err(err).Msg("Failed to load transaction for completion event")
		return
	}
	if txn == nil {
		s.logger.Warn().Str("transaction", event.TransactionID).Msg("Completion event for unknown transaction, ignoring")
		return
	}
	if txn.CallbackDone {
		s.logger.Debug().Str("transaction", txn.ID).Msg("Repeat completion event, ignoring")
		return
	}

	txn.Status = event.Status
	txn.CallbackDone = true
	found, err := s.storage.Transactions().Update(ctx, *txn)
	if err != nil || !found {
		s.logger.Error().Str("transaction", txn.ID).Err(err).Msg("Failed to settle transaction")
		return
	}

	if event.Status != models.TransactionSuccess {
		s.logger.Warn().
			Str("transaction", txn.ID).
			Str("plan", txn.PlanID).
			Str("type", string(txn.Type)).
			Msg("Payment failed")
		return
	}

	// The stored plan id is authoritative; the event's copy is echo only.
	if txn.Type == models.TypeInstallment {
		if err := s.plans.RecordInstallmentSuccess(ctx, txn.PlanID); err != nil {
			s.logger.Warn().
				Str("plan", txn.PlanID).
				Str("transaction", txn.ID).
				Err(err).
				Msg("Failed to advance plan after successful payment")
		}
	}

	s.logger.Info().
		Str("transaction", txn.ID).
		Str("plan", txn.PlanID).
		Str("type", string(txn.Type)).
		Msg("Payment settled")
}
