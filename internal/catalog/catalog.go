// Package catalog is the explicit dispatch table for card types.
//
// A Catalog is constructed once at startup from type definitions and
// passed by reference into the engine - there is no ambient global
// registry. Dispatch resolves a card to the concrete schema/calculate
// pair that applies, including composite multi-axis strategy
// selection.
package catalog

import (
	"fmt"

	"github.com/roach88/girder/internal/card"
)

// Catalog maps type ids to definitions. Immutable after New.
type Catalog struct {
	defs  map[string]*card.TypeDef
	order []string // registration order, for listings
}

// New builds a catalog from definitions.
//
// Validates:
//   - type ids are unique and non-empty
//   - simple types carry a Calc; strategy types carry at least one
//     variant and at least one axis
//   - strategy types declare a variant for the all-defaults axis
//     combination, so a card with no axis slots set always dispatches
//     to a declared variant
func New(defs ...*card.TypeDef) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]*card.TypeDef, len(defs))}
	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("type definition with empty id")
		}
		if _, dup := c.defs[def.ID]; dup {
			return nil, fmt.Errorf("duplicate type id: %s", def.ID)
		}
		if def.Strategy != nil {
			if len(def.Strategy.Axes) == 0 {
				return nil, fmt.Errorf("type %s: strategy without axes", def.ID)
			}
			if len(def.Strategy.Variants) == 0 {
				return nil, fmt.Errorf("type %s: strategy without variants", def.ID)
			}
			if !hasVariant(def.Strategy.Variants, defaultKey(def.Strategy.Axes)) {
				return nil, fmt.Errorf("type %s: strategy does not declare its all-defaults variant %s",
					def.ID, defaultKey(def.Strategy.Axes))
			}
		}
		c.defs[def.ID] = def
		c.order = append(c.order, def.ID)
	}
	return c, nil
}

// MustNew is New for statically-known catalogs.
func MustNew(defs ...*card.TypeDef) *Catalog {
	c, err := New(defs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the definition for a type id.
func (c *Catalog) Lookup(typeID string) (*card.TypeDef, bool) {
	def, ok := c.defs[typeID]
	return def, ok
}

// TypeIDs returns registered type ids in registration order.
func (c *Catalog) TypeIDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Dispatch is the result of resolving a card's active strategy: the
// schema the resolver should use, the calculate function to invoke,
// and the variant key that was selected (zero-value for simple types).
type Dispatch struct {
	Def     *card.TypeDef
	Schema  card.Schema
	Calc    card.CalcFunc
	Variant card.VariantKey
}

// Resolve determines the schema/calculate pair that applies to a card.
//
// Simple types dispatch directly to the definition's Schema and Calc.
// Strategy types read each axis's current value from the card's raw
// input slot (falling back per-axis to the axis default when unset),
// compose the variant key in axis order, and look it up structurally.
// An undeclared combination falls back to the first-declared variant
// as a whole - there is no per-axis partial matching. New guarantees
// the all-defaults combination itself is declared, so the default
// substitution and the fallback never disagree for fully-unset cards.
//
// Returns false if the card's type is not registered. A registered
// type whose active variant lacks a Calc yields Dispatch.Calc == nil;
// the orchestrator treats that as a configuration gap, not a failure.
func (c *Catalog) Resolve(cd *card.Card) (Dispatch, bool) {
	def, ok := c.defs[cd.Type]
	if !ok {
		return Dispatch{}, false
	}
	if def.Strategy == nil {
		return Dispatch{Def: def, Schema: def.Schema, Calc: def.Calc}, true
	}

	values := make([]string, len(def.Strategy.Axes))
	for i, axis := range def.Strategy.Axes {
		v := cd.Inputs.RawString(axis.Key)
		if v == "" {
			v = axis.Default
		}
		values[i] = v
	}
	key := card.Key(values...)

	variant := findVariant(def.Strategy.Variants, key)
	return Dispatch{
		Def:     def,
		Schema:  variant.Schema,
		Calc:    variant.Calc,
		Variant: variant.Key,
	}, true
}

// defaultKey composes the variant key selected when every axis slot is
// unset.
func defaultKey(axes []card.Axis) card.VariantKey {
	values := make([]string, len(axes))
	for i, axis := range axes {
		values[i] = axis.Default
	}
	return card.Key(values...)
}

func hasVariant(variants []card.Variant, key card.VariantKey) bool {
	for _, v := range variants {
		if v.Key.Equal(key) {
			return true
		}
	}
	return false
}

// findVariant looks up a variant by structural key comparison, falling
// back to the first-declared variant on a miss.
func findVariant(variants []card.Variant, key card.VariantKey) card.Variant {
	for _, v := range variants {
		if v.Key.Equal(key) {
			return v
		}
	}
	return variants[0]
}
