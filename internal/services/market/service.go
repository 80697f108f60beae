// Package market provides the simulated NAV price service
package market

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
)

// Service implements MarketPriceService over an in-memory NAV table.
// The fund service seeds the table when a fund is created; the scheduler
// reads it on every installment run.
type Service struct {
	mu     sync.RWMutex
	navs   map[string]float64
	rng    *rand.Rand // guarded by mu
	logger *common.Logger
}

// NewService creates a market price service with no quotes loaded.
func NewService(logger *common.Logger) *Service {
	return NewServiceWithRand(logger, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewServiceWithRand pins the random source so movement is reproducible.
func NewServiceWithRand(logger *common.Logger, rng *rand.Rand) *Service {
	return &Service{
		navs:   make(map[string]float64),
		rng:    rng,
		logger: logger,
	}
}

// CurrentNAV returns the latest NAV for a fund. An unknown fund is a
// not-found error, not a zero price.
func (s *Service) CurrentNAV(_ context.Context, fundID string) (float64, error) {
	s.mu.RLock()
	nav, ok := s.navs[fundID]
	s.mu.RUnlock()

	if !ok {
		return 0, models.NewNotFound(models.KindFund, fundID)
	}
	return nav, nil
}

// UpdateNAV sets the quoted NAV for a fund.
func (s *Service) UpdateNAV(_ context.Context, fundID string, nav float64) error {
	if nav <= 0 {
		return models.NewValidation("nav", "must be greater than zero")
	}

	s.mu.Lock()
	s.navs[fundID] = nav
	s.mu.Unlock()

	s.logger.Debug().Str("fund", fundID).Float64("nav", nav).Msg("NAV updated")
	return nil
}

// SimulateMovement applies a random change within ±maxPercent to every
// quoted fund and returns the new NAVs keyed by fund ID.
func (s *Service) SimulateMovement(_ context.Context, maxPercent float64) (map[string]float64, error) {
	if maxPercent <= 0 || maxPercent >= 100 {
		return nil, models.NewValidation("movement", "must be between 0 and 100 percent")
	}

	s.mu.Lock()
	moved := make(map[string]float64, len(s.navs))
	for fundID, nav := range s.navs {
		factor := 1 + (s.rng.Float64()*2-1)*maxPercent/100
		s.navs[fundID] = nav * factor
		moved[fundID] = s.navs[fundID]
	}
	s.mu.Unlock()

	s.logger.Info().Int("funds", len(moved)).Float64("max_pct", maxPercent).Msg("Market movement simulated")
	return moved, nil
}

// Ensure Service implements MarketPriceService
var _ interfaces.MarketPriceService = (*Service)(nil)
