// Package payment provides the simulated payment gateway
package payment

import (
	"context"
	"fmt"
	"math/rand"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
)

// Compile-time interface check
var _ interfaces.PaymentGateway = (*Simulator)(nil)

const (
	DefaultSuccessRate = 1.0
	DefaultRateLimit   = 0 // initiations per second, 0 = unlimited
)

// Simulator implements PaymentGateway without touching a real payment
// network. Collections complete asynchronously and the confirmation is
// delivered through the handler passed to InitiatePayment, at least once
// and possibly more than once.
type Simulator struct {
	successRate       float64
	autoComplete      bool
	minDelay          time.Duration
	maxDelay          time.Duration
	duplicateDelivery bool
	limiter           *rate.Limiter
	logger            *common.Logger

	mu      sync.Mutex
	rng     *rand.Rand // guarded by mu
	pending map[string]heldPayment
	closed  bool
	wg      sync.WaitGroup
}

// heldPayment is a collection awaiting manual completion.
type heldPayment struct {
	req     models.PaymentRequest
	deliver interfaces.PaymentHandler
}

// Option configures the simulator
type Option func(*Simulator)

// WithSuccessRate sets the fraction of auto-completed collections that
// succeed (0 to 1).
func WithSuccessRate(fraction float64) Option {
	return func(s *Simulator) {
		s.successRate = fraction
	}
}

// WithAutoComplete toggles automatic completion. When disabled,
// collections stay pending until Complete or CompleteAll is called.
func WithAutoComplete(enabled bool) Option {
	return func(s *Simulator) {
		s.autoComplete = enabled
	}
}

// WithLatency sets the delay range before an auto-completed collection
// delivers its confirmation.
func WithLatency(min, max time.Duration) Option {
	return func(s *Simulator) {
		s.minDelay = min
		s.maxDelay = max
	}
}

// WithDuplicateDelivery makes every confirmation arrive twice.
func WithDuplicateDelivery(enabled bool) Option {
	return func(s *Simulator) {
		s.duplicateDelivery = enabled
	}
}

// WithRateLimit caps payment initiations per second.
func WithRateLimit(requestsPerSecond int) Option {
	return func(s *Simulator) {
		if requestsPerSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		} else {
			s.limiter = nil
		}
	}
}

// WithRand pins the random source so outcomes are reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		s.rng = rng
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// NewSimulator creates a payment simulator
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		successRate:  DefaultSuccessRate,
		autoComplete: true,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		pending:      make(map[string]heldPayment),
		logger:       common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// InitiatePayment starts collecting an installment. The confirmation is
// delivered later through deliver; callers must not assume it arrives
// before this returns, in order, or exactly once.
func (s *Simulator) InitiatePayment(ctx context.Context, req models.PaymentRequest, deliver interfaces.PaymentHandler) error {
	if req.TransactionID == "" {
		return models.NewValidation("transaction_id", "is required")
	}
	if deliver == nil {
		return models.NewValidation("handler", "is required")
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("payment gateway is closed")
	}
	if !s.autoComplete {
		s.pending[req.TransactionID] = heldPayment{req: req, deliver: deliver}
		s.mu.Unlock()
		s.logger.Debug().Str("transaction", req.TransactionID).Msg("Payment held for manual completion")
		return nil
	}
	delay := s.jitterLocked()
	status := s.outcomeLocked()
	s.mu.Unlock()

	s.logger.Debug().
		Str("transaction", req.TransactionID).
		Str("plan", req.PlanID).
		Float64("amount", req.Amount).
		Msg("Payment initiated")

	s.safeGo("payment-delivery", func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		s.dispatch(req, status, deliver)
	})

	return nil
}

// Pending returns the collections held for manual completion, ordered by
// transaction ID.
func (s *Simulator) Pending() []models.PaymentRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqs := make([]models.PaymentRequest, 0, len(s.pending))
	for _, held := range s.pending {
		reqs = append(reqs, held.req)
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].TransactionID < reqs[j].TransactionID })
	return reqs
}

// Complete settles a held collection with the given status and delivers
// the confirmation before returning.
func (s *Simulator) Complete(transactionID string, status models.TransactionStatus) error {
	if !status.Valid() || status == models.TransactionPending {
		return models.NewValidation("status", "must be SUCCESS or FAILURE")
	}

	s.mu.Lock()
	held, ok := s.pending[transactionID]
	if ok {
		delete(s.pending, transactionID)
	}
	s.mu.Unlock()

	if !ok {
		return models.NewNotFound(models.KindTransaction, transactionID)
	}

	s.dispatch(held.req, status, held.deliver)
	return nil
}

// CompleteAll settles every held collection with the given status and
// returns how many were delivered.
func (s *Simulator) CompleteAll(status models.TransactionStatus) (int, error) {
	if !status.Valid() || status == models.TransactionPending {
		return 0, models.NewValidation("status", "must be SUCCESS or FAILURE")
	}

	s.mu.Lock()
	held := make([]heldPayment, 0, len(s.pending))
	for _, h := range s.pending {
		held = append(held, h)
	}
	s.pending = make(map[string]heldPayment)
	s.mu.Unlock()

	sort.Slice(held, func(i, j int) bool { return held[i].req.TransactionID < held[j].req.TransactionID })
	for _, h := range held {
		s.dispatch(h.req, status, h.deliver)
	}
	return len(held), nil
}

// Close stops accepting payments and waits for in-flight deliveries to
// finish. Held collections are dropped undelivered.
func (s *Simulator) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	dropped := len(s.pending)
	s.pending = make(map[string]heldPayment)
	s.mu.Unlock()

	s.wg.Wait()

	if dropped > 0 {
		s.logger.Warn().Int("dropped", dropped).Msg("Payment gateway closed with undelivered collections")
	}
	return nil
}

// dispatch delivers a confirmation, twice when duplicate delivery is on.
// Delivery outlives the initiating call, so it runs on a background
// context rather than the caller's.
func (s *Simulator) dispatch(req models.PaymentRequest, status models.TransactionStatus, deliver interfaces.PaymentHandler) {
	event := models.PaymentEvent{
		TransactionID: req.TransactionID,
		PlanID:        req.PlanID,
		Status:        status,
	}

	deliver(context.Background(), event)
	if s.duplicateDelivery {
		deliver(context.Background(), event)
	}

	s.logger.Debug().
		Str("transaction", event.TransactionID).
		Str("status", string(status)).
		Bool("duplicate", s.duplicateDelivery).
		Msg("Payment confirmation delivered")
}

// outcomeLocked draws the settlement outcome. Callers hold s.mu.
func (s *Simulator) outcomeLocked() models.TransactionStatus {
	if s.rng.Float64() < s.successRate {
		return models.TransactionSuccess
	}
	return models.TransactionFailed
}

// jitterLocked draws the completion delay. Callers hold s.mu.
func (s *Simulator) jitterLocked() time.Duration {
	if s.maxDelay <= s.minDelay {
		return s.minDelay
	}
	return s.minDelay + time.Duration(s.rng.Int63n(int64(s.maxDelay-s.minDelay)))
}

// safeGo launches a goroutine with panic recovery and logging.
func (s *Simulator) safeGo(name string, fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error().
					Str("goroutine", name).
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic in payment goroutine")
			}
		}()
		fn()
	}()
}
