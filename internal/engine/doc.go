// Package engine implements the girder recalculation orchestrator.
//
// The Sheet owns the card list and is the single entry point for
// mutations. Every mutation - card creation, deletion, input edits,
// reordering - is synchronously followed by one full recalculation
// pass over the whole sheet.
//
// ARCHITECTURE:
//
// Single-Writer Mutation Discipline:
// All mutations and the passes they trigger run under one mutex, so a
// pass always sees a consistent card list and callers observe either
// the pre-pass or the fully-updated post-pass state, never an
// interleaved one. A pass is bounded by the card count and performs
// only in-memory arithmetic: nothing blocks, awaits, or yields.
//
// Recalculation Pass:
// 1. Build the producer->consumer adjacency from reference slots
// 2. Topologically order ids, producers before consumers
// 3. Walk the order: dispatch the card's strategy, resolve inputs
//    against the current snapshot (earlier cards' fresh outputs are
//    visible), invoke the calculate function
// 4. Write outputs/error atomically into the card; a failed card never
//    aborts the pass
//
// DETERMINISM:
// Given an unchanged card list, repeated passes produce identical
// outputs and errors for every card. Calculate functions are pure, the
// resolver is stateless, and all iteration orders are fixed (list
// order, declaration order, sorted key order).
//
// CYCLE POLICY:
// Reference cycles are tolerated, not repaired. Every card still
// appears in the order exactly once; cards on a cycle get best-effort
// ordering, and the involved ids are logged and reported on the pass
// report so callers can surface a structural diagnostic.
package engine
