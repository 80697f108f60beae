package models

import (
	"github.com/nvaswani/fundflow/internal/date"
)

// Transaction records one purchase attempt against a plan. It is created
// PENDING before payment is initiated, so a transaction with no settled
// status is visible evidence of an in-flight payment.
type Transaction struct {
	ID           string            `json:"id"`
	PlanID       string            `json:"plan_id"`
	Type         TransactionType   `json:"type"`
	Amount       float64           `json:"amount"`
	Units        float64           `json:"units"` // Amount / NAV at creation
	NAV          float64           `json:"nav"`   // NAV snapshot at creation
	Status       TransactionStatus `json:"status"`
	Date         date.Date         `json:"date"`
	CallbackDone bool              `json:"callback_done"` // set by the first completion event; later deliveries are ignored
}

// NewTransaction builds a PENDING installment transaction of amount at the
// given NAV. Units are captured immediately from the NAV snapshot.
func NewTransaction(id, planID string, amount, nav float64, on date.Date) Transaction {
	return Transaction{
		ID:     id,
		PlanID: planID,
		Type:   TypeInstallment,
		Amount: amount,
		Units:  amount / nav,
		NAV:    nav,
		Status: TransactionPending,
		Date:   on,
	}
}

// NewLumpSum builds a PENDING ad-hoc top-up transaction. It settles through
// the same payment path as an installment but never moves the plan's
// schedule.
func NewLumpSum(id, planID string, amount, nav float64, on date.Date) Transaction {
	t := NewTransaction(id, planID, amount, nav, on)
	t.Type = TypeLumpSum
	return t
}

// IsSettled reports whether a completion event has been applied.
func (t *Transaction) IsSettled() bool { return t.CallbackDone }
