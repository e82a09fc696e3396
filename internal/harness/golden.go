package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares the final document
// snapshot against a golden file stored in
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Expectation failures inside the scenario are reported through t; the
// golden comparison runs regardless, so a stale golden file and a
// broken expectation both surface in one run.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, msg)
	}

	snapshot, err := result.Document.EncodeJSON()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot)

	return nil
}
