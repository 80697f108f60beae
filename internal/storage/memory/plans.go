package memory

import (
	"context"
	"sync"

	"github.com/nvaswani/fundflow/internal/date"
	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
)

// PlanStore keeps plans with user, fund, and state indexes. State flips and
// ownership changes on Update re-index atomically.
type PlanStore struct {
	mu      sync.RWMutex
	items   map[string]models.Plan
	byUser  index
	byFund  index
	byState index
}

// NewPlanStore creates an empty plan store.
func NewPlanStore() *PlanStore {
	return &PlanStore{
		items:   make(map[string]models.Plan),
		byUser:  make(index),
		byFund:  make(index),
		byState: make(index),
	}
}

func (s *PlanStore) Add(_ context.Context, plan models.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.items[plan.ID]; ok {
		s.unindex(old)
	}
	s.items[plan.ID] = plan
	s.reindex(plan)
	return nil
}

func (s *PlanStore) GetByID(_ context.Context, id string) (*models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if plan, ok := s.items[id]; ok {
		return &plan, nil
	}
	return nil, nil
}

func (s *PlanStore) GetAll(_ context.Context) ([]models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.items), nil
}

func (s *PlanStore) Update(_ context.Context, plan models.Plan) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[plan.ID]
	if !ok {
		return false, nil
	}
	s.unindex(old)
	s.items[plan.ID] = plan
	s.reindex(plan)
	return true, nil
}

func (s *PlanStore) Remove(_ context.Context, id string) (bool, error) {
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

func (s *PlanStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok, nil
}

func (s *PlanStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *PlanStore) GetByUser(_ context.Context, userID string) ([]models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.items, s.byUser.ids(userID)), nil
}

func (s *PlanStore) GetByFund(_ context.Context, fundID string) ([]models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.items, s.byFund.ids(fundID)), nil
}

func (s *PlanStore) GetByState(_ context.Context, state models.PlanState) ([]models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.items, s.byState.ids(string(state))), nil
}

func (s *PlanStore) GetByUserAndState(_ context.Context, userID string, state models.PlanState) ([]models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Plan, 0)
	for _, plan := range pick(s.items, s.byUser.ids(userID)) {
		if plan.State == state {
			out = append(out, plan)
		}
	}
	return out, nil
}

func (s *PlanStore) GetDueAsOf(_ context.Context, asOf date.Date) ([]models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Plan, 0)
	for _, plan := range pick(s.items, s.byState.ids(string(models.PlanActive))) {
		if plan.NextExecutionDate.OnOrBefore(asOf) {
			out = append(out, plan)
		}
	}
	return out, nil
}

// callers hold the write lock
func (s *PlanStore) reindex(plan models.Plan) {
	s.byUser.put(plan.UserID, plan.ID)
	s.byFund.put(plan.FundID, plan.ID)
	s.byState.put(string(plan.State), plan.ID)
}

func (s *PlanStore) unindex(plan models.Plan) {
	s.byUser.drop(plan.UserID, plan.ID)
	s.byFund.drop(plan.FundID, plan.ID)
	s.byState.drop(string(plan.State), plan.ID)
}

var _ interfaces.PlanRepository = (*PlanStore)(nil)
