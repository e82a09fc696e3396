package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/girder/internal/project"
)

func strp(s string) *string { return &s }

func TestGoldenScenarios(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		file := file
		t.Run(filepath.Base(file), func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestLoadScenario_Errors(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/missing.yaml")
	assert.Error(t, err)

	dir := t.TempDir()
	noName := filepath.Join(dir, "no-name.yaml")
	require.NoError(t, os.WriteFile(noName, []byte("cards: []\n"), 0644))
	_, err = LoadScenario(noName)
	assert.ErrorContains(t, err, "name is required")
}

func TestRun_ExpectationFailuresAccumulate(t *testing.T) {
	scenario := &Scenario{
		Name: "mismatch",
		Cards: []project.CardDoc{
			{ID: "sec", Type: "section.rectangle", Inputs: map[string]project.SlotDoc{
				"B": {Value: strp("10")},
				"H": {Value: strp("10")},
			}},
		},
		Expect: []Expectation{
			{Card: "sec", Outputs: map[string]float64{"A": 999}},
			{Card: "sec", MissingOutputs: []string{"A"}},
			{Card: "sec", Error: "nope"},
			{Card: "ghost"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Passed())
	assert.Len(t, result.Errors, 4)
}

func TestRun_StepsDriveTheSheet(t *testing.T) {
	scenario := &Scenario{
		Name: "steps",
		Cards: []project.CardDoc{
			{ID: "t", Type: "sum", Inputs: map[string]project.SlotDoc{
				"v1": {Value: strp("1")},
				"v2": {Value: strp("2")},
			}},
			{ID: "gone", Type: "sum"},
		},
		Steps: []Step{
			{Set: &SetStep{Card: "t", Key: "v3", Value: "4"}},
			{Delete: &DeleteStep{Card: "gone"}},
			{Create: &CreateStep{Type: "section.rectangle"}},
			{SetRef: &SetRefStep{Card: "t", Key: "v4", Producer: "card-1", Output: "A"}},
			{ClearRef: &KeyStep{Card: "t", Key: "v4"}},
			{DeleteInput: &KeyStep{Card: "t", Key: "v1"}},
			{Reorder: []string{"card-1", "t"}},
		},
		Expect: []Expectation{
			{Card: "t", NoError: true, Outputs: map[string]float64{"total": 6}},
			{Card: "card-1", NoError: true, Outputs: map[string]float64{"A": 20000}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Passed(), "errors: %v", result.Errors)

	require.Len(t, result.Document.Cards, 2)
	assert.Equal(t, "card-1", result.Document.Cards[0].ID, "created ids are sequential")
	assert.Equal(t, "t", result.Document.Cards[1].ID)
}

func TestRun_StepErrorsAbort(t *testing.T) {
	scenario := &Scenario{
		Name:  "bad-step",
		Cards: []project.CardDoc{{ID: "a", Type: "sum"}},
		Steps: []Step{
			{Set: &SetStep{Card: "ghost", Key: "v1", Value: "1"}},
		},
	}

	_, err := Run(scenario)
	assert.ErrorContains(t, err, "step 0")
}

func TestRun_InvalidCardsRejected(t *testing.T) {
	scenario := &Scenario{
		Name: "invalid",
		Cards: []project.CardDoc{
			{ID: "a", Type: "sum"},
			{ID: "a", Type: "sum"},
		},
	}

	_, err := Run(scenario)
	assert.ErrorContains(t, err, "duplicate card id")
}

func TestRun_CycleTolerated(t *testing.T) {
	scenario := &Scenario{
		Name: "cycle",
		Cards: []project.CardDoc{
			{ID: "t1", Type: "sum", Inputs: map[string]project.SlotDoc{
				"v1": {Ref: &project.RefDoc{Card: "t2", Output: "total"}},
			}},
			{ID: "t2", Type: "sum", Inputs: map[string]project.SlotDoc{
				"v1": {Ref: &project.RefDoc{Card: "t1", Output: "total"}},
			}},
		},
		Expect: []Expectation{
			{Card: "t1", NoError: true, Outputs: map[string]float64{"total": 0}},
			{Card: "t2", NoError: true, Outputs: map[string]float64{"total": 0}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Passed(), "errors: %v", result.Errors)
	assert.Len(t, result.Pass.Cycles, 1)
}
