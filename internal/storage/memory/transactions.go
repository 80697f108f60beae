package memory

import (
	"context"
	"sync"

	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
)

// TransactionStore keeps installment transactions with plan and status
// indexes. Settling a transaction re-indexes its status.
type TransactionStore struct {
	mu       sync.RWMutex
	items    map[string]models.Transaction
	byPlan   index
	byStatus index
}

// NewTransactionStore creates an empty transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		items:    make(map[string]models.Transaction),
		byPlan:   make(index),
		byStatus: make(index),
	}
}

func (s *TransactionStore) Add(_ context.Context, txn models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.items[txn.ID]; ok {
		s.unindex(old)
	}
	s.items[txn.ID] = txn
	s.reindex(txn)
	return nil
}

func (s *TransactionStore) GetByID(_ context.Context, id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if txn, ok := s.items[id]; ok {
		return &txn, nil
	}
	return nil, nil
}

func (s *TransactionStore) GetAll(_ context.Context) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.items), nil
}

func (s *TransactionStore) Update(_ context.Context, txn models.Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[txn.ID]
	if !ok {
		return false, nil
	}
	s.unindex(old)
	s.items[txn.ID] = txn
	s.reindex(txn)
	return true, nil
}

func (s *TransactionStore) Remove(_ context.Context, id string) (bool, error) {
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

func (s *TransactionStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok, nil
}

func (s *TransactionStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *TransactionStore) GetByPlan(_ context.Context, planID string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.items, s.byPlan.ids(planID)), nil
}

func (s *TransactionStore) GetByStatus(_ context.Context, status models.TransactionStatus) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.items, s.byStatus.ids(string(status))), nil
}

func (s *TransactionStore) GetSuccessfulByPlan(_ context.Context, planID string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, 0)
	for _, txn := range pick(s.items, s.byPlan.ids(planID)) {
		if txn.Status == models.TransactionSuccess {
			out = append(out, txn)
		}
	}
	return out, nil
}

// callers hold the write lock
func (s *TransactionStore) reindex(txn models.Transaction) {
	s.byPlan.put(txn.PlanID, txn.ID)
	s.byStatus.put(string(txn.Status), txn.ID)
}

func (s *TransactionStore) unindex(txn models.Transaction) {
	s.byPlan.drop(txn.PlanID, txn.ID)
	s.byStatus.drop(string(txn.Status), txn.ID)
}

var _ interfaces.TransactionRepository = (*TransactionStore)(nil)
