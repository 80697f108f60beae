// Package storage provides the top-level StorageManager that coordinates
// the entity stores.
package storage

import (
	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/storage/memory"
)

// Manager implements interfaces.StorageManager over the in-memory stores.
type Manager struct {
	users        *memory.UserStore
	funds        *memory.FundStore
	plans        *memory.PlanStore
	transactions *memory.TransactionStore
	logger       *common.Logger
}

// NewManager creates a StorageManager with fresh, empty stores.
func NewManager(logger *common.Logger) *Manager {
	m := &Manager{
		users:        memory.NewUserStore(),
		funds:        memory.NewFundStore(),
		plans:        memory.NewPlanStore(),
		transactions: memory.NewTransactionStore(),
		logger:       logger,
	}

	logger.Info().Msg("Storage manager initialized (in-memory)")

	return m
}

func (m *Manager) Users() interfaces.UserRepository {
	return m.users
}

func (m *Manager) Funds() interfaces.FundRepository {
	return m.funds
}

func (m *Manager) Plans() interfaces.PlanRepository {
	return m.plans
}

func (m *Manager) Transactions() interfaces.TransactionRepository {
	return m.transactions
}

// Close releases nothing today; the stores live entirely on the heap. It
// exists so callers shut storage down the same way regardless of backend.
func (m *Manager) Close() error {
	m.logger.Debug().Msg("Storage manager closed")
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
