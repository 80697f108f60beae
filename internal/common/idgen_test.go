package common

import (
	"strings"
	"sync"
	"testing"
)

func TestSequenceIDs_Format(t *testing.T) {
	gen := NewSequenceIDs()
	if got := gen.NextID(PrefixPlan); got != "SIP_000001" {
		t.Errorf("first id = %q, want SIP_000001", got)
	}
	if got := gen.NextID(PrefixPlan); got != "SIP_000002" {
		t.Errorf("second id = %q, want SIP_000002", got)
	}
	// Prefixes count independently.
	if got := gen.NextID(PrefixTransaction); got != "TXN_000001" {
		t.Errorf("other prefix = %q, want TXN_000001", got)
	}
}

func TestSequenceIDs_Reset(t *testing.T) {
	gen := NewSequenceIDs()
	gen.NextID(PrefixFund)
	gen.NextID(PrefixFund)
	gen.Reset()
	if got := gen.NextID(PrefixFund); got != "FUND_000001" {
		t.Errorf("id after reset = %q, want FUND_000001", got)
	}
}

func TestSequenceIDs_Concurrent(t *testing.T) {
	gen := NewSequenceIDs()
	const n = 100
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- gen.NextID(PrefixUser)
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id issued: %s", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("issued %d distinct ids, want %d", len(seen), n)
	}
}

func TestRandomIDs(t *testing.T) {
	gen := NewRandomIDs()
	a := gen.NextID(PrefixTransaction)
	b := gen.NextID(PrefixTransaction)
	if !strings.HasPrefix(a, "TXN_") {
		t.Errorf("id %q missing prefix", a)
	}
	if a == b {
		t.Error("random generator issued the same id twice")
	}
	gen.Reset() // no-op, must not panic
}

func TestNewIDGenerator_ModeSelection(t *testing.T) {
	if _, ok := NewIDGenerator("uuid").(*RandomIDs); !ok {
		t.Error("mode uuid should select RandomIDs")
	}
	if _, ok := NewIDGenerator("sequence").(*SequenceIDs); !ok {
		t.Error("mode sequence should select SequenceIDs")
	}
	if _, ok := NewIDGenerator("").(*SequenceIDs); !ok {
		t.Error("unknown mode should fall back to SequenceIDs")
	}
}
