package memory

import (
	"context"
	"sync"

	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
)

// UserStore keeps account holders with an email lookup index.
type UserStore struct {
	mu     sync.RWMutex
	items  map[string]models.User
	emails index
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		items:  make(map[string]models.User),
		emails: make(index),
	}
}

func (s *UserStore) Add(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.items[user.ID]; ok {
		s.emails.drop(old.Email, old.ID)
	}
	s.items[user.ID] = user
	s.emails.put(user.Email, user.ID)
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.items[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (s *UserStore) GetAll(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.items), nil
}

func (s *UserStore) Update(_ context.Context, user models.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[user.ID]
	if !ok {
		return false, nil
	}
	s.emails.drop(old.Email, old.ID)
	s.items[user.ID] = user
	s.emails.put(user.Email, user.ID)
	return true, nil
}

func (s *UserStore) Remove(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[id]
	if !ok {
		return false, nil
	}
	s.emails.drop(old.Email, old.ID)
	delete(s.items, id)
	return true, nil
}

func (s *UserStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok, nil
}

func (s *UserStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.emails.ids(email)
	if len(ids) == 0 {
		return nil, nil
	}
	user := s.items[ids[0]]
	return &user, nil
}

var _ interfaces.UserRepository = (*UserStore)(nil)
