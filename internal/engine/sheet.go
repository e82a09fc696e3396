package engine

import (
	"fmt"
	"sync"

	"github.com/roach88/girder/internal/card"
	"github.com/roach88/girder/internal/catalog"
	"github.com/roach88/girder/internal/graph"
)

// Sheet is the single-writer owner of a card list.
//
// All mutations are serialized behind the sheet's mutex and each one
// runs a full recalculation pass before returning, so external readers
// never observe a half-recomputed sheet.
type Sheet struct {
	mu      sync.Mutex
	cards   []*card.Card
	catalog *catalog.Catalog
	idGen   CardIDGenerator
	clock   *Clock
	last    PassReport
}

// SheetOption configures a Sheet at construction.
type SheetOption func(*Sheet)

// WithIDGenerator overrides the card id generator. Tests use
// FixedGenerator or testutil's sequence generator for deterministic
// ids; the default is UUIDv7Generator.
func WithIDGenerator(gen CardIDGenerator) SheetOption {
	return func(s *Sheet) {
		s.idGen = gen
	}
}

// NewSheet creates an empty sheet bound to a catalog.
//
// The catalog is the explicit dispatch table for card types - it is
// passed by reference and never mutated by the sheet.
func NewSheet(cat *catalog.Catalog, opts ...SheetOption) *Sheet {
	s := &Sheet{
		catalog: cat,
		idGen:   UUIDv7Generator{},
		clock:   NewClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSheetFrom creates a sheet preloaded with cards (a deserialized
// project document) and runs an initial pass so outputs are populated
// before the first read.
//
// The cards must already satisfy the data model invariants: unique
// ids, one slot arm per input. Duplicate ids are rejected here because
// every downstream structure keys cards by id.
func NewSheetFrom(cat *catalog.Catalog, cards []*card.Card, opts ...SheetOption) (*Sheet, error) {
	seen := make(map[string]bool, len(cards))
	for _, c := range cards {
		if c.ID == "" {
			return nil, fmt.Errorf("card with empty id")
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate card id: %s", c.ID)
		}
		seen[c.ID] = true
	}

	s := NewSheet(cat, opts...)
	s.cards = make([]*card.Card, len(cards))
	for i, c := range cards {
		cc := c.Clone()
		if cc.Inputs == nil {
			cc.Inputs = card.Inputs{}
		}
		s.cards[i] = cc
	}
	s.recalculate()
	return s, nil
}

// Cards returns a deep copy of the card list in sheet order. The copy
// is fully owned by the caller.
func (s *Sheet) Cards() []*card.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*card.Card, len(s.cards))
	for i, c := range s.cards {
		out[i] = c.Clone()
	}
	return out
}

// Card returns a deep copy of one card by id.
func (s *Sheet) Card(id string) (*card.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return nil, false
	}
	return c.Clone(), true
}

// Len returns the number of cards in the sheet.
func (s *Sheet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// LastPass returns the report of the most recent recalculation pass.
func (s *Sheet) LastPass() PassReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Recalculate forces a full pass without a mutation. Loading a
// document and read-only diagnostics use this; normal mutations do not
// need it because every mutation already runs a pass.
func (s *Sheet) Recalculate() PassReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recalculate()
}

// find returns the live card with the given id, or nil.
// Caller must hold s.mu.
func (s *Sheet) find(id string) *card.Card {
	for _, c := range s.cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Cycles returns the reference cycles found in the last pass.
func (s *Sheet) Cycles() []graph.Cycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.Cycles
}
