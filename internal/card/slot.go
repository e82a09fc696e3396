package card

import "fmt"

// Slot is a sealed interface representing one input slot of a card.
// Only Literal and Ref implement it. The two arms are mutually
// exclusive by construction: a map entry holds one Slot value, and
// setting a slot replaces the previous arm entirely.
type Slot interface {
	slot() // Sealed - only these types implement it
}

// Literal is a raw input value as the user typed it. The text is parsed
// as a number at resolution time; non-numeric text (strategy axis
// selectors, stale pastes) degrades to the schema default.
type Literal struct {
	Raw string
}

func (Literal) slot() {}

func (l Literal) String() string {
	return fmt.Sprintf("literal(%q)", l.Raw)
}

// Ref points at another card's output. Card is the producer's id,
// Output the producer's output key. A Ref to a card or key that no
// longer exists resolves to 0 (dangling references never error).
type Ref struct {
	Card   string
	Output string
}

func (Ref) slot() {}

func (r Ref) String() string {
	return fmt.Sprintf("ref(%s.%s)", r.Card, r.Output)
}

// Lit builds a Literal slot. Shorthand for tests and default inputs.
func Lit(raw string) Literal {
	return Literal{Raw: raw}
}

// Inputs maps input keys to their slots.
type Inputs map[string]Slot

// Clone returns a copy of the input map. Slot values are immutable
// value types, so a shallow map copy is a full copy.
func (in Inputs) Clone() Inputs {
	if in == nil {
		return nil
	}
	out := make(Inputs, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// RawString returns the literal text stored under key, or "" if the
// slot is absent or holds a reference. Used by strategy dispatch to
// read axis selector values.
func (in Inputs) RawString(key string) string {
	if l, ok := in[key].(Literal); ok {
		return l.Raw
	}
	return ""
}
