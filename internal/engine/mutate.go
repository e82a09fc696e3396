package engine

import (
	"github.com/roach88/girder/internal/card"
)

// Mutation entry points. Every method validates first, applies the
// edit, then runs one full recalculation pass before returning. A
// rejected mutation changes nothing and runs no pass.

// CreateCard appends a new card of the given type, seeded with the
// type definition's default inputs, and returns a copy of the created
// card after the pass.
func (s *Sheet) CreateCard(typeID string) (*card.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, ok := s.catalog.Lookup(typeID)
	if !ok {
		return nil, &MutationError{Code: ErrCodeUnknownType, Message: "type not registered: " + typeID}
	}

	c := &card.Card{
		ID:     s.idGen.Generate(),
		Type:   typeID,
		Alias:  def.Label,
		Inputs: def.DefaultInputs.Clone(),
	}
	if c.Inputs == nil {
		c.Inputs = card.Inputs{}
	}
	s.cards = append(s.cards, c)
	s.recalculate()
	return c.Clone(), nil
}

// DeleteCard removes a card. Edges pointing at it disappear with it;
// consumers that still reference the deleted id resolve those inputs
// to 0 from the next pass on.
func (s *Sheet) DeleteCard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.cards {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return unknownCard(id)
	}
	s.cards = append(s.cards[:idx], s.cards[idx+1:]...)
	s.recalculate()
	return nil
}

// SetLiteral stores a literal value in a card's input slot. If the
// slot held a reference, the reference is replaced - a slot never
// holds both.
func (s *Sheet) SetLiteral(id, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return unknownCard(id)
	}
	c.Inputs[key] = card.Literal{Raw: value}
	s.recalculate()
	return nil
}

// SetReference stores a reference to another card's output in an input
// slot, replacing any literal. The producer is not validated: a
// reference to a missing producer is legal and resolves to 0.
func (s *Sheet) SetReference(id, key, producerID, outputKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return unknownCard(id)
	}
	c.Inputs[key] = card.Ref{Card: producerID, Output: outputKey}
	s.recalculate()
	return nil
}

// ClearReference removes a reference slot, leaving the key empty so
// resolution falls back to the schema default. A literal slot under
// the key is left untouched.
func (s *Sheet) ClearReference(id, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return unknownCard(id)
	}
	if _, isRef := c.Inputs[key].(card.Ref); isRef {
		delete(c.Inputs, key)
	}
	s.recalculate()
	return nil
}

// DeleteInput removes an input slot entirely, whatever arm it holds.
// Used for instance-level rows that grow beyond the static schema.
func (s *Sheet) DeleteInput(id, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return unknownCard(id)
	}
	delete(c.Inputs, key)
	s.recalculate()
	return nil
}

// SetAlias sets a card's free-text label. Still triggers a pass to
// keep the mutation contract uniform, though no output can change.
func (s *Sheet) SetAlias(id, alias string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return unknownCard(id)
	}
	c.Alias = alias
	s.recalculate()
	return nil
}

// Reorder rearranges the sheet to the given id order. The new order
// must be an exact permutation of the current card ids.
func (s *Sheet) Reorder(newOrder []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(newOrder) != len(s.cards) {
		return &MutationError{Code: ErrCodeBadOrder, Message: "order length does not match sheet"}
	}
	byID := make(map[string]*card.Card, len(s.cards))
	for _, c := range s.cards {
		byID[c.ID] = c
	}
	reordered := make([]*card.Card, 0, len(newOrder))
	for _, id := range newOrder {
		c, ok := byID[id]
		if !ok {
			return &MutationError{Code: ErrCodeBadOrder, Message: "order references unknown card", CardID: id}
		}
		delete(byID, id)
		reordered = append(reordered, c)
	}
	s.cards = reordered
	s.recalculate()
	return nil
}
