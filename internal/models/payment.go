package models

// PaymentRequest carries everything the gateway needs to collect one
// installment. The gateway echoes TransactionID and PlanID back in the
// completion event, so completion handling needs no captured state.
type PaymentRequest struct {
	TransactionID string  `json:"transaction_id"`
	PlanID        string  `json:"plan_id"`
	Amount        float64 `json:"amount"`
}

// PaymentEvent is the completion notification for a payment request. The
// gateway may deliver it zero, one, or several times, in any order relative
// to other events; consumers must treat deliveries as at-least-once.
type PaymentEvent struct {
	TransactionID string            `json:"transaction_id"`
	PlanID        string            `json:"plan_id"`
	Status        TransactionStatus `json:"status"` // SUCCESS or FAILURE
}
