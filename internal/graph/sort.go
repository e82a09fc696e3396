package graph

import "github.com/roach88/girder/internal/card"

// Cycle records one reference cycle found during ordering. IDs holds
// the cards on the cycle path, starting and ending at the card whose
// in-progress edge was cut.
type Cycle struct {
	IDs []string
}

// Order is the tagged result of a topological sort. IDs always
// contains every input card id exactly once - cycle tolerance cuts
// edges, never drops cards - so callers choose a cycle policy from
// Cycles instead of inheriting silent truncation.
type Order struct {
	IDs    []string
	Cycles []Cycle
}

// HasCycles reports whether any reference cycle was found.
func (o Order) HasCycles() bool {
	return len(o.Cycles) > 0
}

// Sort orders card ids so producers precede consumers.
//
// Depth-first postorder over the producer->consumer adjacency: after a
// card's consumers are fully visited, the card is prepended to the
// result, which yields producer-before-consumer order directly.
//
// Determinism: every card is visited as a traversal root. Roots are
// taken in reverse list order so that, combined with prepending, cards
// with no dependency relationship keep their original list positions
// (ties broken by original position).
//
// Cycle tolerance: an edge reaching a card already on the recursion
// stack is cut - the card is not re-added - and the cycle path is
// recorded. Cards on a cycle still appear in the order (every card is
// a root), but some of their producers may not precede them.
func Sort(cards []*card.Card, adj Adjacency) Order {
	var (
		result     []string
		cycles     []Cycle
		done       = make(map[string]bool, len(cards))
		inProgress = make(map[string]bool, len(cards))
		stack      []string
	)

	var visit func(id string)
	visit = func(id string) {
		if done[id] {
			return
		}
		if inProgress[id] {
			cycles = append(cycles, Cycle{IDs: cyclePath(stack, id)})
			return
		}
		inProgress[id] = true
		stack = append(stack, id)

		for _, consumer := range adj[id] {
			visit(consumer)
		}

		stack = stack[:len(stack)-1]
		delete(inProgress, id)
		done[id] = true
		result = append([]string{id}, result...)
	}

	for i := len(cards) - 1; i >= 0; i-- {
		visit(cards[i].ID)
	}

	return Order{IDs: result, Cycles: cycles}
}

// cyclePath extracts the stack segment from the first occurrence of id
// to the top, closing the loop back to id.
func cyclePath(stack []string, id string) []string {
	start := 0
	for i, s := range stack {
		if s == id {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	path = append(path, stack[start:]...)
	path = append(path, id)
	return path
}
