// Package portfolio provides plan valuation and reporting services
package portfolio

import (
	"context"
	"fmt"
	"sort"

	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
)

// Compile-time interface check
var _ interfaces.PortfolioService = (*Service)(nil)

// Service implements PortfolioService. Valuations aggregate the SUCCESS
// transactions of a plan; pending and failed installments never count.
type Service struct {
	storage interfaces.StorageManager
	market  interfaces.MarketPriceService
	logger  *common.Logger
}

// NewService creates a new portfolio service
func NewService(storage interfaces.StorageManager, market interfaces.MarketPriceService, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		market:  market,
		logger:  logger,
	}
}

// PlanValuation builds the valuation line for one plan. A missing market
// quote fails the call; use UserPortfolio for the degrading variant.
func (s *Service) PlanValuation(ctx context.Context, planID string) (*models.PortfolioItem, error) {
	p, err := s.loadPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	nav, err := s.market.CurrentNAV(ctx, p.FundID)
	if err != nil {
		return nil, fmt.Errorf("failed to price plan %s: %w", planID, err)
	}

	item, err := s.buildItem(ctx, *p, nav)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UserPortfolio builds valuation lines for all of a user's plans, in plan
// ID order. Plans whose fund has no market quote are valued at zero rather
// than failing the whole view.
func (s *Service) UserPortfolio(ctx context.Context, userID string) ([]models.PortfolioItem, error) {
	plans, err := s.storage.Plans().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return s.buildItems(ctx, plans)
}

// FilterByState narrows UserPortfolio to plans in one lifecycle state
func (s *Service) FilterByState(ctx context.Context, userID string, state models.PlanState) ([]models.PortfolioItem, error) {
	if !state.Valid() {
		return nil, models.NewValidation("state", fmt.Sprintf("unknown state '%s'", state))
	}
	plans, err := s.storage.Plans().GetByUserAndState(ctx, userID, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return s.buildItems(ctx, plans)
}

// Summary aggregates a user's plans into totals and per-state counts
func (s *Service) Summary(ctx context.Context, userID string) (*models.PortfolioSummary, error) {
	items, err := s.UserPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &models.PortfolioSummary{}
	for _, item := range items {
		summary.TotalInvested += item.TotalInvested
		summary.CurrentValue += item.CurrentValue
		summary.TotalUnits += item.TotalUnits

		switch item.Plan.State {
		case models.PlanActive:
			summary.ActivePlans++
		case models.PlanPaused:
			summary.PausedPlans++
		case models.PlanStopped:
			summary.StoppedPlans++
		}
	}

	summary.GainLoss = summary.CurrentValue - summary.TotalInvested
	if summary.TotalInvested > 0 {
		summary.GainLossPercent = summary.GainLoss / summary.TotalInvested * 100
	}
	return summary, nil
}

// History returns every transaction recorded for a plan, settled or not,
// in transaction ID order.
func (s *Service) History(ctx context.Context, planID string) ([]models.Transaction, error) {
	if _, err := s.loadPlan(ctx, planID); err != nil {
		return nil, err
	}
	txns, err := s.storage.Transactions().GetByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txns, nil
}

// TotalInvested sums the amounts of a plan's settled installments
func (s *Service) TotalInvested(ctx context.Context, planID string) (float64, error) {
	settled, err := s.settled(ctx, planID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, txn := range settled {
		total += txn.Amount
	}
	return total, nil
}

// TotalUnits sums the units allotted by a plan's settled installments
func (s *Service) TotalUnits(ctx context.Context, planID string) (float64, error) {
	settled, err := s.settled(ctx, planID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, txn := range settled {
		total += txn.Units
	}
	return total, nil
}

// CurrentValue marks a plan's holding to the current market NAV
func (s *Service) CurrentValue(ctx context.Context, planID string) (float64, error) {
	p, err := s.loadPlan(ctx, planID)
	if err != nil {
		return 0, err
	}
	units, err := s.TotalUnits(ctx, planID)
	if err != nil {
		return 0, err
	}
	nav, err := s.market.CurrentNAV(ctx, p.FundID)
	if err != nil {
		return 0, fmt.Errorf("failed to price plan %s: %w", planID, err)
	}
	return units * nav, nil
}

// buildItems assembles valuation lines for a set of plans, valuing
// unpriceable holdings at zero.
func (s *Service) buildItems(ctx context.Context, plans []models.Plan) ([]models.PortfolioItem, error) {
	items := make([]models.PortfolioItem, 0, len(plans))
	for _, p := range plans {
		nav, err := s.market.CurrentNAV(ctx, p.FundID)
		if err != nil {
			s.logger.Warn().Str("plan", p.ID).Str("fund", p.FundID).Err(err).Msg("No market quote, valuing holding at zero")
			nav = 0
		}
		item, err := s.buildItem(ctx, p, nav)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// buildItem computes one valuation line from a plan, the NAV to mark at,
// and the plan's settled transactions.
func (s *Service) buildItem(ctx context.Context, p models.Plan, nav float64) (models.PortfolioItem, error) {
	settled, err := s.storage.Transactions().GetSuccessfulByPlan(ctx, p.ID)
	if err != nil {
		return models.PortfolioItem{}, fmt.Errorf("failed to get transactions: %w", err)
	}

	var invested, units float64
	for _, txn := range settled {
		invested += txn.Amount
		units += txn.Units
	}

	fundName := ""
	if fund, err := s.storage.Funds().GetByID(ctx, p.FundID); err == nil && fund != nil {
		fundName = fund.Name
	}

	item := models.PortfolioItem{
		Plan:            p,
		FundName:        fundName,
		CurrentNAV:      nav,
		TotalInvested:   invested,
		TotalUnits:      units,
		CurrentValue:    units * nav,
		NextInstallment: models.SteppedAmount(p.BaseAmount, p.StepUpPercent, p.InstallmentCount),
		NextAfterThat:   models.SteppedAmount(p.BaseAmount, p.StepUpPercent, p.InstallmentCount+1),
	}
	item.GainLoss = item.CurrentValue - item.TotalInvested
	if item.TotalInvested > 0 {
		item.GainLossPercent = item.GainLoss / item.TotalInvested * 100
	}
	return item, nil
}

// settled returns a plan's SUCCESS transactions, checking the plan exists
// first.
func (s *Service) settled(ctx context.Context, planID string) ([]models.Transaction, error) {
	if _, err := s.loadPlan(ctx, planID); err != nil {
		return nil, err
	}
	txns, err := s.storage.Transactions().GetSuccessfulByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txns, nil
}

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

// RenderGrowthChart renders a PNG of amount invested versus holding value
// across a plan's settled history. Each settled installment contributes one
// point, valued at the NAV it was allotted at.
func (s *Service) RenderGrowthChart(ctx context.Context, planID string) ([]byte, error) {
	settled, err := s.settled(ctx, planID)
	if err != nil {
		return nil, err
	}

	sort.Slice(settled, func(i, j int) bool {
		if !settled[i].Date.Equal(settled[j].Date) {
			return settled[i].Date.Before(settled[j].Date)
		}
		return settled[i].ID < settled[j].ID
	})

	points := make([]growthPoint, 0, len(settled))
	var invested, units float64
	for _, txn := range settled {
		invested += txn.Amount
		units += txn.Units
		points = append(points, growthPoint{
			date:     txn.Date,
			invested: invested,
			value:    units * txn.NAV,
		})
	}

	png, err := renderGrowthChart(points)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("plan", planID).Int("points", len(points)).Msg("Growth chart rendered")
	return png, nil
}
