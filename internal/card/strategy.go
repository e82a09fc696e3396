package card

import (
	"slices"
	"strings"
)

// VariantKey identifies a strategy variant as an ordered tuple of axis
// values. Keys are compared structurally, not as joined strings, so an
// axis value containing the display separator cannot collide with a
// different combination.
type VariantKey struct {
	values []string
}

// Key builds a VariantKey from axis values in axis declaration order.
func Key(values ...string) VariantKey {
	return VariantKey{values: values}
}

// Equal reports whether two keys have identical axis values in order.
func (k VariantKey) Equal(other VariantKey) bool {
	return slices.Equal(k.values, other.values)
}

// String renders the key for display and diagnostics, e.g.
// "cantilever_point". Display only - never used for matching.
func (k VariantKey) String() string {
	return strings.Join(k.values, "_")
}

// Axis is a named variant selector with an enumerated option set.
// The axis value for a card is read from the card's raw input slot
// under Key; an unset slot falls back to Default.
type Axis struct {
	Key     string
	Label   string
	Options []string
	Default string
}

// Variant is one concrete schema+calculate implementation of a
// strategy type, identified by its composite key.
type Variant struct {
	Key    VariantKey
	Schema Schema
	Calc   CalcFunc
}

// Strategy declares the axes and variants of a multi-variant card
// type. Authors must declare a variant for the full cartesian product
// of axis options; an undeclared combination dispatches to the
// first-declared variant as a whole (no per-axis interpolation).
type Strategy struct {
	Axes     []Axis
	Variants []Variant
}

// TypeDef is a registered card type definition.
//
// Exactly one of Calc or Strategy drives dispatch: simple types carry
// Schema+Calc directly, strategy types carry the per-variant pairs.
// DynamicSchema, when set, contributes instance-level schema entries
// as a pure function of the card's current state; its entries override
// static (or variant) entries with the same key.
type TypeDef struct {
	ID            string
	Label         string
	DefaultInputs Inputs
	Schema        Schema
	DynamicSchema func(*Card) Schema
	OutputKeys    []string
	Calc          CalcFunc
	Strategy      *Strategy
}
