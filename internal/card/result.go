package card

import "fmt"

// Result is the outcome of one Calc invocation: either a full output
// map or a failure reason, never both. The orchestrator maps Ok onto
// the card's Outputs and Err onto the card's Error slot.
type Result struct {
	outputs map[string]float64
	err     string
	failed  bool
}

// Ok builds a successful Result. The map is taken as-is; Calc
// implementations must not retain it after returning.
func Ok(outputs map[string]float64) Result {
	return Result{outputs: outputs}
}

// Errf builds a failed Result with a formatted reason.
func Errf(format string, args ...any) Result {
	return Result{err: fmt.Sprintf(format, args...), failed: true}
}

// Failed reports whether the calculation failed.
func (r Result) Failed() bool {
	return r.failed
}

// Outputs returns the output map for a successful Result, nil for a
// failed one.
func (r Result) Outputs() map[string]float64 {
	if r.failed {
		return nil
	}
	return r.outputs
}

// Err returns the failure reason, "" for a successful Result.
func (r Result) Err() string {
	return r.err
}

// CalcFunc computes a card's outputs from its resolved numeric inputs.
// The raw input slots are also supplied for calculations that need
// non-numeric state (axis selectors, row keys).
//
// CalcFuncs must be pure: same inputs, same Result, no side effects.
// The engine relies on this for pass idempotence.
type CalcFunc func(resolved map[string]float64, raw Inputs) Result
