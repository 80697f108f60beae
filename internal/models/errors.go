package models

import (
	"errors"
	"fmt"
)

// Entity kinds named in not-found errors.
const (
	KindUser        = "user"
	KindFund        = "fund"
	KindPlan        = "plan"
	KindTransaction = "transaction"
)

// NotFoundError reports a lookup that matched nothing.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// NewNotFound builds a NotFoundError for an entity kind and id.
func NewNotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is a NotFoundError of any kind.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError reports rejected input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for a field.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StateError reports a lifecycle operation rejected by the plan's current
// state, naming the plan, the state, and the operation that was refused.
type StateError struct {
	PlanID string
	State  PlanState
	Op     string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("plan %q is %s: cannot %s", e.PlanID, e.State, e.Op)
}

// NewStateError builds a StateError for a refused lifecycle operation.
func NewStateError(planID string, state PlanState, op string) error {
	return &StateError{PlanID: planID, State: state, Op: op}
}
