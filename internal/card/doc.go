// Package card defines the data model for the recalculation engine:
// cards (typed calculation units), input slots, schemas, type
// definitions, strategies, and the calculation Result type.
//
// Design constraints:
//   - InputSlot is a sealed tagged union (Literal | Ref). A slot holds
//     exactly one of the two; replacing a slot replaces the whole value,
//     so a literal and a reference can never coexist under one key.
//   - Outputs are always map[string]float64. Non-finite values (NaN,
//     ±Inf) never enter an output map.
//   - Calc functions return an explicit Result (Ok | Err) instead of
//     panicking, so failure isolation is enforced by the type system
//     rather than by recover at the call site.
package card
