package common

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nvaswani/fundflow/internal/interfaces"
)

// Identifier prefixes used across the entity stores.
const (
	PrefixUser        = "USER"
	PrefixFund        = "FUND"
	PrefixPlan        = "SIP"
	PrefixTransaction = "TXN"
)

// SequenceIDs issues deterministic ids like "SIP_000001" with an
// independent counter per prefix. Demo reseeding depends on Reset
// restarting every sequence.
type SequenceIDs struct {
	mu       sync.Mutex
	counters map[string]int
}

// NewSequenceIDs creates a sequential generator with all counters at zero.
func NewSequenceIDs() *SequenceIDs {
	return &SequenceIDs{counters: make(map[string]int)}
}

// NextID returns the next id in the prefix's sequence.
func (g *SequenceIDs) NextID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters[prefix]++
	return fmt.Sprintf("%s_%06d", prefix, g.counters[prefix])
}

// Reset restarts every sequence at one.
func (g *SequenceIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters = make(map[string]int)
}

// RandomIDs issues collision-free ids like "TXN_<uuid>". Suited to the
// daemon, where ids must stay unique without coordination.
type RandomIDs struct{}

// NewRandomIDs creates a UUID-backed generator.
func NewRandomIDs() *RandomIDs { return &RandomIDs{} }

// NextID returns the prefix joined to a fresh random UUID.
func (g *RandomIDs) NextID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}

// Reset is a no-op; random ids carry no sequence state.
func (g *RandomIDs) Reset() {}

// NewIDGenerator selects a generator from the configured mode.
func NewIDGenerator(mode string) interfaces.IDGenerator {
	if strings.EqualFold(mode, "uuid") {
		return NewRandomIDs()
	}
	return NewSequenceIDs()
}

var _ interfaces.IDGenerator = (*SequenceIDs)(nil)
var _ interfaces.IDGenerator = (*RandomIDs)(nil)
