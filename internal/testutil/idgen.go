// Package testutil provides deterministic helpers for tests: a
// sequence card-id generator that replaces the engine's UUID-backed
// one so snapshots and golden files carry stable ids.
package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDGenerator yields "card-1", "card-2", ... in order.
//
// Unlike engine.FixedGenerator it never exhausts, so scenarios may
// create any number of cards without preregistering ids.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex.
type SequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceIDGenerator creates a generator with the given prefix.
// An empty prefix defaults to "card".
func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	if prefix == "" {
		prefix = "card"
	}
	return &SequenceIDGenerator{prefix: prefix}
}

// Generate returns the next id in the sequence.
func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// Reset restarts the sequence. The next Generate returns "<prefix>-1".
func (g *SequenceIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}
