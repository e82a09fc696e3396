// Package harness runs declarative recalculation scenarios against a
// real sheet.
//
// A scenario is a YAML file: an initial card list in the project wire
// format, a sequence of mutation steps, and expectations about the
// final card states. The harness builds a Sheet over the production
// formula catalog, applies the steps exactly as the CLI would, and
// evaluates the expectations against the resulting snapshot.
//
// Card IDs created during a run come from a sequence generator, so a
// scenario's final document is byte-stable and can be compared against
// a golden file.
package harness

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/roach88/girder/internal/engine"
	"github.com/roach88/girder/internal/formula"
	"github.com/roach88/girder/internal/project"
	"github.com/roach88/girder/internal/testutil"
)

// defaultTolerance is the relative tolerance for output comparison
// when the expectation does not set one.
const defaultTolerance = 1e-9

// Result is the outcome of one scenario run.
type Result struct {
	// Scenario is the name of the scenario that produced this result.
	Scenario string

	// Document is the final sheet snapshot in wire form.
	Document *project.Document

	// Pass is the report of the last recalculation pass.
	Pass engine.PassReport

	// Errors are the expectation failures, empty on success.
	Errors []string
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Errors) == 0
}

func (r *Result) addErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Run executes a scenario and returns its result. Step errors (unknown
// card, bad reorder) abort the run; expectation failures do not, they
// accumulate in the result.
func Run(scenario *Scenario) (*Result, error) {
	doc := &project.Document{Name: scenario.Name, Cards: scenario.Cards}
	if err := project.Validate(doc); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	sheet, err := engine.NewSheetFrom(formula.Catalog(), doc.ToCards(),
		engine.WithIDGenerator(testutil.NewSequenceIDGenerator("card")))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	for i, step := range scenario.Steps {
		if err := applyStep(sheet, step); err != nil {
			return nil, fmt.Errorf("scenario %s: step %d: %w", scenario.Name, i, err)
		}
	}

	result := &Result{
		Scenario: scenario.Name,
		Document: project.FromCards(scenario.Name, sheet.Cards()),
		Pass:     sheet.LastPass(),
	}
	for _, exp := range scenario.Expect {
		evaluate(sheet, exp, result)
	}
	return result, nil
}

func applyStep(sheet *engine.Sheet, step Step) error {
	switch {
	case step.Set != nil:
		return sheet.SetLiteral(step.Set.Card, step.Set.Key, step.Set.Value)
	case step.SetRef != nil:
		return sheet.SetReference(step.SetRef.Card, step.SetRef.Key,
			step.SetRef.Producer, step.SetRef.Output)
	case step.ClearRef != nil:
		return sheet.ClearReference(step.ClearRef.Card, step.ClearRef.Key)
	case step.DeleteInput != nil:
		return sheet.DeleteInput(step.DeleteInput.Card, step.DeleteInput.Key)
	case step.Create != nil:
		_, err := sheet.CreateCard(step.Create.Type)
		return err
	case step.Delete != nil:
		return sheet.DeleteCard(step.Delete.Card)
	case len(step.Reorder) > 0:
		return sheet.Reorder(step.Reorder)
	default:
		return fmt.Errorf("empty step")
	}
}

func evaluate(sheet *engine.Sheet, exp Expectation, result *Result) {
	c, ok := sheet.Card(exp.Card)
	if !ok {
		result.addErrorf("card %s: not found", exp.Card)
		return
	}

	tol := exp.Tolerance
	if tol == 0 {
		tol = defaultTolerance
	}

	keys := make([]string, 0, len(exp.Outputs))
	for key := range exp.Outputs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		want := exp.Outputs[key]
		got, present := c.Outputs[key]
		if !present {
			result.addErrorf("card %s: output %s missing, want %v", exp.Card, key, want)
			continue
		}
		if !closeEnough(got, want, tol) {
			result.addErrorf("card %s: output %s = %v, want %v", exp.Card, key, got, want)
		}
	}

	for _, key := range exp.MissingOutputs {
		if _, present := c.Outputs[key]; present {
			result.addErrorf("card %s: output %s present, want absent", exp.Card, key)
		}
	}

	if exp.NoError && c.Error != "" {
		result.addErrorf("card %s: unexpected error %q", exp.Card, c.Error)
	}
	if exp.Error != "" && !strings.Contains(c.Error, exp.Error) {
		result.addErrorf("card %s: error %q does not contain %q", exp.Card, c.Error, exp.Error)
	}
}

func closeEnough(got, want, tol float64) bool {
	if got == want {
		return true
	}
	diff := math.Abs(got - want)
	scale := math.Max(math.Abs(got), math.Abs(want))
	if scale == 0 {
		return diff <= tol
	}
	return diff/scale <= tol
}
