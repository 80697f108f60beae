package memory

import (
	"context"
	"sync"

	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
)

// FundStore keeps the fund catalog with category and risk indexes.
type FundStore struct {
	mu         sync.RWMutex
	items      map[string]models.Fund
	byCategory index
	byRisk     index
}

// NewFundStore creates an empty fund store.
func NewFundStore() *FundStore {
	return &FundStore{
		items:      make(map[string]models.Fund),
		byCategory: make(index),
		byRisk:     make(index),
	}
}

func (s *FundStore) Add(_ context.Context, fund models.Fund) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.items[fund.ID]; ok {
		s.unindex(old)
	}
	s.items[fund.ID] = fund
	s.reindex(fund)
	return nil
}

func (s *FundStore) GetByID(_ context.Context, id string) (*models.Fund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if fund, ok := s.items[id]; ok {
		return &fund, nil
	}
	return nil, nil
}

func (s *FundStore) GetAll(_ context.Context) ([]models.Fund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.items), nil
}

func (s *FundStore) Update(_ context.Context, fund models.Fund) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[fund.ID]
	if !ok {
		return false, nil
	}
	s.unindex(old)
	s.items[fund.ID] = fund
	s.reindex(fund)
	return true, nil
}

func (s *FundStore) Remove(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[id]
	if !ok {
		return false, nil
	}
	s.unindex(old)
	delete(s.items, id)
	return true, nil
}

func (s *FundStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok, nil
}

func (s *FundStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *FundStore) GetByCategory(_ context.Context, category models.FundCategory) ([]models.Fund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.items, s.byCategory.ids(string(category))), nil
}

func (s *FundStore) GetByRisk(_ context.Context, risk models.RiskLevel) ([]models.Fund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.items, s.byRisk.ids(string(risk))), nil
}

// callers hold the write lock
func (s *FundStore) reindex(fund models.Fund) {
	s.byCategory.put(string(fund.Category), fund.ID)
	s.byRisk.put(string(fund.Risk), fund.ID)
}

func (s *FundStore) unindex(fund models.Fund) {
	s.byCategory.drop(string(fund.Category), fund.ID)
	s.byRisk.drop(string(fund.Risk), fund.ID)
}

var _ interfaces.FundRepository = (*FundStore)(nil)
