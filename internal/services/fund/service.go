// Package fund provides fund catalog management services
package fund

import (
	"context"
	"fmt"
	"strings"

	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
)

// Compile-time interface check
var _ interfaces.FundService = (*Service)(nil)

// Service implements FundService
type Service struct {
	storage interfaces.StorageManager
	market  interfaces.MarketPriceService
	idgen   interfaces.IDGenerator
	logger  *common.Logger
}

// NewService creates a new fund catalog service
func NewService(storage interfaces.StorageManager, market interfaces.MarketPriceService, idgen interfaces.IDGenerator, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		market:  market,
		idgen:   idgen,
		logger:  logger,
	}
}

// CreateFund adds a fund to the catalog and quotes its opening NAV on the
// market service.
func (s *Service) CreateFund(ctx context.Context, req interfaces.CreateFundRequest) (*models.Fund, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidation("name", "is required")
	}
	if !req.Category.Valid() {
		return nil, models.NewValidation("category", fmt.Sprintf("unknown category '%s'", req.Category))
	}
	if !req.Risk.Valid() {
		return nil, models.NewValidation("risk", fmt.Sprintf("unknown risk level '%s'", req.Risk))
	}
	if req.NAV <= 0 {
		return nil, models.NewValidation("nav", "must be greater than zero")
	}

	fund := models.Fund{
		ID:         s.idgen.NextID(common.PrefixFund),
		Name:       name,
		Category:   req.Category,
		Risk:       req.Risk,
		CurrentNAV: req.NAV,
	}

	if err := s.storage.Funds().Add(ctx, fund); err != nil {
		return nil, fmt.Errorf("failed to save fund: %w", err)
	}
	if err := s.market.UpdateNAV(ctx, fund.ID, req.NAV); err != nil {
		return nil, fmt.Errorf("failed to quote fund: %w", err)
	}

	s.logger.Info().Str("fund", fund.ID).Str("name", fund.Name).Float64("nav", fund.CurrentNAV).Msg("Fund created")
	return &fund, nil
}

// GetFund retrieves a catalog entry by ID
func (s *Service) GetFund(ctx context.Context, fundID string) (*models.Fund, error) {
	fund, err := s.storage.Funds().GetByID(ctx, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fund: %w", err)
	}
	if fund == nil {
		return nil, models.NewNotFound(models.KindFund, fundID)
	}
	return fund, nil
}

// ListFunds returns the whole catalog ordered by fund ID
func (s *Service) ListFunds(ctx context.Context) ([]models.Fund, error) {
	funds, err := s.storage.Funds().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list funds: %w", err)
	}
	return funds, nil
}

// FilterByCategory returns the catalog entries in one category
func (s *Service) FilterByCategory(ctx context.Context, category models.FundCategory) ([]models.Fund, error) {
	if !category.Valid() {
		return nil, models.NewValidation("category", fmt.Sprintf("unknown category '%s'", category))
	}
	funds, err := s.storage.Funds().GetByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to filter funds: %w", err)
	}
	return funds, nil
}

// FilterByRisk returns the catalog entries at one risk level
func (s *Service) FilterByRisk(ctx context.Context, risk models.RiskLevel) ([]models.Fund, error) {
	if !risk.Valid() {
		return nil, models.NewValidation("risk", fmt.Sprintf("unknown risk level '%s'", risk))
	}
	funds, err := s.storage.Funds().GetByRisk(ctx, risk)
	if err != nil {
		return nil, fmt.Errorf("failed to filter funds: %w", err)
	}
	return funds, nil
}

// FundExists reports whether a fund ID is in the catalog
func (s *Service) FundExists(ctx context.Context, fundID string) (bool, error) {
	exists, err := s.storage.Funds().Exists(ctx, fundID)
	if err != nil {
		return false, fmt.Errorf("failed to check fund: %w", err)
	}
	return exists, nil
}

// RefreshNAVs pulls current market NAVs into the stored catalog records.
// Funds the market no longer quotes are skipped with a warning.
func (s *Service) RefreshNAVs(ctx context.Context) error {
	funds, err := s.storage.Funds().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list funds: %w", err)
	}

	updated := 0
	for _, fund := range funds {
		nav, err := s.market.CurrentNAV(ctx, fund.ID)
		if err != nil {
			s.logger.Warn().Str("fund", fund.ID).Err(err).Msg("No market quote for fund, keeping stored NAV")
			continue
		}
		if nav == fund.CurrentNAV {
			continue
		}

		fund.CurrentNAV = nav
		if _, err := s.storage.Funds().Update(ctx, fund); err != nil {
			return fmt.Errorf("failed to update fund %s: %w", fund.ID, err)
		}
		updated++
	}

	s.logger.Info().Int("funds", len(funds)).Int("updated", updated).Msg("Catalog NAVs refreshed")
	return nil
}
