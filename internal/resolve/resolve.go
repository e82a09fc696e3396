// Package resolve turns a card's stored input slots into the flat
// numeric input map its calculate function consumes.
//
// Resolution is two-phase because a card's schema can depend on its
// own current state: strategy axis selectors are stored among the
// card's inputs, and dynamic schemas are functions of the card.
// Phase 1 (EffectiveSchema) fixes the key set; phase 2 (Inputs) maps
// every key to a float64.
//
// GUARANTEE: resolution never fails. Malformed literals, dangling
// references, missing outputs, and non-finite values all degrade to
// the schema default or 0.
package resolve

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/girder/internal/card"
)

// EffectiveSchema merges a card's dispatched (static or variant)
// schema with its type's dynamic schema. Dynamic entries override
// static entries with the same key; new dynamic keys are appended.
func EffectiveSchema(static card.Schema, dynamic func(*card.Card) card.Schema, c *card.Card) card.Schema {
	if dynamic == nil {
		return static
	}
	return static.Merge(dynamic(c))
}

// Inputs resolves every input of a card against the current snapshot.
//
// Keys declared by the schema are resolved first, in declaration
// order. Keys present in the card's stored inputs but not declared
// (instance-level rows, legacy keys) are resolved the same way and
// included, in sorted key order. The snapshot holds every card of the
// sheet, some already recomputed this pass - references see whatever
// outputs the snapshot currently carries.
func Inputs(c *card.Card, schema card.Schema, snapshot map[string]*card.Card) map[string]float64 {
	resolved := make(map[string]float64, len(schema)+len(c.Inputs))

	for _, spec := range schema {
		resolved[spec.Key] = resolveSlot(c.Inputs[spec.Key], spec.Default, snapshot)
	}

	extra := make([]string, 0, len(c.Inputs))
	for key := range c.Inputs {
		if !schema.Declares(key) {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		resolved[key] = resolveSlot(c.Inputs[key], 0, snapshot)
	}

	return resolved
}

// resolveSlot maps one slot to its numeric value.
//
//   - Ref: the producer's output value from the snapshot, or 0 if the
//     producer is absent, did not produce the key, or produced a
//     non-finite value. The schema default does NOT apply to broken
//     references - dangling always means 0.
//   - Literal: the parsed number if the text parses and is finite,
//     else the schema default.
//   - nil (no slot stored): the schema default.
func resolveSlot(slot card.Slot, fallback float64, snapshot map[string]*card.Card) float64 {
	switch s := slot.(type) {
	case card.Ref:
		producer, ok := snapshot[s.Card]
		if !ok || producer.Outputs == nil {
			return 0
		}
		v, ok := producer.Outputs[s.Output]
		if !ok || !isFinite(v) {
			return 0
		}
		return v

	case card.Literal:
		v, err := strconv.ParseFloat(strings.TrimSpace(s.Raw), 64)
		if err != nil || !isFinite(v) {
			return fallback
		}
		return v

	default:
		return fallback
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
