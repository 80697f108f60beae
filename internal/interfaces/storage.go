// Package interfaces defines the repository and service contracts for fundflow
package interfaces

import (
	"context"

	"github.com/nvaswani/fundflow/internal/date"
	"github.com/nvaswani/fundflow/internal/models"
)

// Repository is the generic keyed-storage contract shared by every entity
// store. GetByID returns nil with no error when the id is unknown; Update
// and Remove report whether the id matched anything. Every call is atomic
// with respect to concurrent callers.
type Repository[T any] interface {
	Add(ctx context.Context, entity T) error
	GetByID(ctx context.Context, id string) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, entity T) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// UserRepository stores account holders.
type UserRepository interface {
	Repository[models.User]

	// GetByEmail resolves a user through the email index.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// FundRepository stores the fund catalog.
type FundRepository interface {
	Repository[models.Fund]

	GetByCategory(ctx context.Context, category models.FundCategory) ([]models.Fund, error)
	GetByRisk(ctx context.Context, risk models.RiskLevel) ([]models.Fund, error)
}

// PlanRepository stores plans, indexed by user, fund, and state.
type PlanRepository interface {
	Repository[models.Plan]

	GetByUser(ctx context.Context, userID string) ([]models.Plan, error)
	GetByFund(ctx context.Context, fundID string) ([]models.Plan, error)
	GetByState(ctx context.Context, state models.PlanState) ([]models.Plan, error)
	GetByUserAndState(ctx context.Context, userID string, state models.PlanState) ([]models.Plan, error)

	// GetDueAsOf returns the ACTIVE plans whose next execution date is on
	// or before asOf.
	GetDueAsOf(ctx context.Context, asOf date.Date) ([]models.Plan, error)
}

// TransactionRepository stores installment transactions.
type TransactionRepository interface {
	Repository[models.Transaction]

	GetByPlan(ctx context.Context, planID string) ([]models.Transaction, error)
	GetByStatus(ctx context.Context, status models.TransactionStatus) ([]models.Transaction, error)

	// GetSuccessfulByPlan returns the SUCCESS transactions that valuation
	// aggregates over.
	GetSuccessfulByPlan(ctx context.Context, planID string) ([]models.Transaction, error)
}

// StorageManager coordinates the entity stores.
type StorageManager interface {
	Users() UserRepository
	Funds() FundRepository
	Plans() PlanRepository
	Transactions() TransactionRepository

	Close() error
}
