package engine

import (
	"sync"

	"github.com/google/uuid"
)

// CardIDGenerator generates unique ids for newly created cards.
// Implemented by UUIDv7Generator (production) and by the sequence
// generator in testutil (deterministic tests).
type CardIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 card ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, so ids sort
// by creation time - convenient when scanning saved project documents.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined ids for testing.
//
// Tests provide a known sequence and can then assert exact card ids in
// snapshots and golden files.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
// Generate panics once all ids are consumed - fail fast on test
// misconfiguration.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
