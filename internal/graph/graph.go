// Package graph derives the dependency structure of a card list and
// orders it so producers precede consumers.
//
// The adjacency map points producer -> consumers. Edges come only from
// reference-typed input slots; references to cards that are not in the
// list are silently omitted (the resolver's dangling-reference
// fallback handles those at computation time).
package graph

import (
	"sort"

	"github.com/roach88/girder/internal/card"
)

// Adjacency maps each card id to the ids of cards that consume one of
// its outputs. Every card in the source list has an entry, possibly
// empty. Consumer lists are deduplicated: multiple references from one
// consumer to the same producer contribute a single edge.
type Adjacency map[string][]string

// Build derives the adjacency map from a card list.
//
// Deterministic: cards are scanned in list order and each card's input
// keys in sorted key order, so repeated builds over the same list
// produce identical edge orderings.
func Build(cards []*card.Card) Adjacency {
	adj := make(Adjacency, len(cards))
	for _, c := range cards {
		if _, ok := adj[c.ID]; !ok {
			adj[c.ID] = []string{}
		}
	}

	for _, consumer := range cards {
		seen := make(map[string]bool)
		for _, key := range sortedKeys(consumer.Inputs) {
			ref, ok := consumer.Inputs[key].(card.Ref)
			if !ok {
				continue
			}
			if _, exists := adj[ref.Card]; !exists {
				continue // dangling reference: no edge, no error
			}
			if seen[ref.Card] {
				continue
			}
			seen[ref.Card] = true
			adj[ref.Card] = append(adj[ref.Card], consumer.ID)
		}
	}
	return adj
}

func sortedKeys(in card.Inputs) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
