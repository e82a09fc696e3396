package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/roach88/girder/internal/card"
	"github.com/roach88/girder/internal/graph"
	"github.com/roach88/girder/internal/resolve"
)

// PassReport summarizes one recalculation pass.
type PassReport struct {
	Pass   int64         // monotonic pass number
	Cards  int           // cards recomputed
	Failed int           // cards that ended the pass with an error set
	Cycles []graph.Cycle // reference cycles found while ordering
}

// recalculate runs one full pass over the sheet.
// Caller must hold s.mu.
//
// The pass walks cards in topological order and writes each card's
// outputs/error in place, so cards later in the order resolve their
// references against fresh producer outputs. The returned list order
// (the sheet itself) is never changed by a pass.
//
// Per-card failure handling:
//   - Calc returns Err (or panics): outputs cleared, error set,
//     pass continues. Downstream consumers see 0 for the missing
//     outputs and compute normally.
//   - Type unregistered or active variant has no Calc: outputs
//     cleared, no error - a configuration gap, not a runtime failure.
func (s *Sheet) recalculate() PassReport {
	pass := s.clock.Next()

	adj := graph.Build(s.cards)
	order := graph.Sort(s.cards, adj)

	for _, cyc := range order.Cycles {
		slog.Warn("reference cycle tolerated",
			"pass", pass,
			"cards", cyc.IDs,
		)
	}

	snapshot := make(map[string]*card.Card, len(s.cards))
	for _, c := range s.cards {
		snapshot[c.ID] = c
	}

	failed := 0
	for _, id := range order.IDs {
		c := snapshot[id]

		disp, ok := s.catalog.Resolve(c)
		if !ok || disp.Calc == nil {
			// Configuration gap: unregistered type or variant without
			// a calculate function. Not a user-visible failure.
			c.Outputs = map[string]float64{}
			c.Error = ""
			slog.Debug("card skipped: no calculate function",
				"pass", pass,
				"card", id,
				"type", c.Type,
			)
			continue
		}

		schema := resolve.EffectiveSchema(disp.Schema, disp.Def.DynamicSchema, c)
		inputs := resolve.Inputs(c, schema, snapshot)
		result := invokeCalc(disp.Calc, inputs, c.Inputs)

		if result.Failed() {
			c.Outputs = map[string]float64{}
			c.Error = result.Err()
			failed++
			slog.Debug("card failed",
				"pass", pass,
				"card", id,
				"type", c.Type,
				"error", c.Error,
			)
			continue
		}

		c.Outputs = sanitizeOutputs(result.Outputs())
		c.Error = ""
		slog.Debug("card computed",
			"pass", pass,
			"card", id,
			"type", c.Type,
			"variant", disp.Variant.String(),
			"outputs", len(c.Outputs),
		)
	}

	s.last = PassReport{
		Pass:   pass,
		Cards:  len(s.cards),
		Failed: failed,
		Cycles: order.Cycles,
	}
	return s.last
}

// invokeCalc runs a calculate function, converting a panic into a
// failed Result. Calc implementations are supposed to return Err
// rather than panic, but a panicking formula must still be isolated
// to its own card.
func invokeCalc(calc card.CalcFunc, resolved map[string]float64, raw card.Inputs) (result card.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = card.Errf("calculation panicked: %v", r)
		}
	}()
	return calc(resolved, raw)
}

// sanitizeOutputs copies an output map, dropping non-finite values so
// the outputs invariant (fully numeric) holds even for formulas that
// leak a NaN or Inf.
func sanitizeOutputs(outputs map[string]float64) map[string]float64 {
	clean := make(map[string]float64, len(outputs))
	for k, v := range outputs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		clean[k] = v
	}
	return clean
}

// String renders a compact pass summary for logs and CLI verbose mode.
func (r PassReport) String() string {
	return fmt.Sprintf("pass %d: %d cards, %d failed, %d cycles",
		r.Pass, r.Cards, r.Failed, len(r.Cycles))
}
