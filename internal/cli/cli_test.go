package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/girder/internal/project"
)

const beamProject = `name: demo
cards:
  - id: sec
    type: section.rectangle
    inputs:
      B: {value: "300"}
      H: {value: "600"}
  - id: b1
    type: beam
    inputs:
      L: {value: "4000"}
      w: {value: "9"}
  - id: chk
    type: check.bending
    inputs:
      M: {ref: {card: b1, output: M_max}}
      Z: {ref: {card: sec, output: Z}}
      fb: {value: "200"}
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalc_Text(t *testing.T) {
	path := writeProject(t, beamProject)

	out, err := runCLI(t, "calc", path)
	require.NoError(t, err)

	assert.Contains(t, out, "sec [section.rectangle]")
	assert.Contains(t, out, "A = 180,000")
	assert.Contains(t, out, "M_max = 18,000,000")
	assert.Contains(t, out, "isOk = 1")
	assert.Contains(t, out, "3 cards, 0 failed, 0 cycles")
}

func TestCalc_JSON(t *testing.T) {
	path := writeProject(t, beamProject)

	out, err := runCLI(t, "--format", "json", "calc", path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCalc_FailedCardExitsNonzero(t *testing.T) {
	path := writeProject(t, `cards:
  - id: chk
    type: check.bending
    inputs:
      Z: {value: "0"}
`)

	out, err := runCLI(t, "calc", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "section modulus Z is zero")
}

func TestCalc_MissingFile(t *testing.T) {
	_, err := runCLI(t, "calc", "does-not-exist.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSet_RewritesFile(t *testing.T) {
	path := writeProject(t, beamProject)

	_, err := runCLI(t, "set", path, "b1", "w", "18")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := project.DecodeYAML(data)
	require.NoError(t, err)

	var beam project.CardDoc
	for _, cd := range doc.Cards {
		if cd.ID == "b1" {
			beam = cd
		}
	}
	require.NotNil(t, beam.Inputs["w"].Value)
	assert.Equal(t, "18", *beam.Inputs["w"].Value)
	assert.Equal(t, 3.6e7, beam.Outputs["M_max"], "file carries recomputed outputs")
}

func TestSet_RefAndClear(t *testing.T) {
	path := writeProject(t, beamProject)

	_, err := runCLI(t, "set", path, "chk", "M", "--ref", "b1.V_max")
	require.NoError(t, err)

	data, _ := os.ReadFile(path)
	doc, err := project.DecodeYAML(data)
	require.NoError(t, err)
	for _, cd := range doc.Cards {
		if cd.ID == "chk" {
			require.NotNil(t, cd.Inputs["M"].Ref)
			assert.Equal(t, "V_max", cd.Inputs["M"].Ref.Output)
		}
	}

	_, err = runCLI(t, "set", path, "chk", "M", "--clear")
	require.NoError(t, err)

	data, _ = os.ReadFile(path)
	doc, err = project.DecodeYAML(data)
	require.NoError(t, err)
	for _, cd := range doc.Cards {
		if cd.ID == "chk" {
			_, present := cd.Inputs["M"]
			assert.False(t, present)
		}
	}
}

func TestSet_ModeValidation(t *testing.T) {
	path := writeProject(t, beamProject)

	_, err := runCLI(t, "set", path, "b1", "w")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = runCLI(t, "set", path, "b1", "w", "10", "--clear")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = runCLI(t, "set", path, "b1", "w", "--ref", "noseparator")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCardAddAndRm(t *testing.T) {
	path := writeProject(t, beamProject)

	out, err := runCLI(t, "card", "add", path, "sum")
	require.NoError(t, err)
	assert.Contains(t, out, "[sum]")

	data, _ := os.ReadFile(path)
	doc, err := project.DecodeYAML(data)
	require.NoError(t, err)
	require.Len(t, doc.Cards, 4)
	assert.Equal(t, "sum", doc.Cards[3].Type)

	_, err = runCLI(t, "card", "rm", path, doc.Cards[3].ID)
	require.NoError(t, err)

	data, _ = os.ReadFile(path)
	doc, err = project.DecodeYAML(data)
	require.NoError(t, err)
	assert.Len(t, doc.Cards, 3)
}

func TestCardAdd_UnknownType(t *testing.T) {
	path := writeProject(t, beamProject)

	_, err := runCLI(t, "card", "add", path, "nope")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCardTypes(t *testing.T) {
	out, err := runCLI(t, "card", "types")
	require.NoError(t, err)
	assert.Contains(t, out, "section.rectangle")
	assert.Contains(t, out, "beam")
	assert.Contains(t, out, "Bending check")
}

func TestValidate(t *testing.T) {
	path := writeProject(t, beamProject)
	out, err := runCLI(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	bad := writeProject(t, "cards: [{id: a, type: t}, {id: a, type: t}]\n")
	out, err = runCLI(t, "validate", bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "duplicate card id")
}

func TestShareAndOpen(t *testing.T) {
	path := writeProject(t, beamProject)

	token, err := runCLI(t, "share", path)
	require.NoError(t, err)
	token = trimTrailingNewline(token)

	restored := filepath.Join(t.TempDir(), "restored.yaml")
	out, err := runCLI(t, "open", token, "--out", restored)
	require.NoError(t, err)
	assert.Contains(t, out, "isOk = 1")

	data, err := os.ReadFile(restored)
	require.NoError(t, err)
	doc, err := project.DecodeYAML(data)
	require.NoError(t, err)
	assert.Len(t, doc.Cards, 3)
}

func TestOpen_BadToken(t *testing.T) {
	_, err := runCLI(t, "open", "gdr1:garbage")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSaveLoadHistory(t *testing.T) {
	path := writeProject(t, beamProject)
	db := filepath.Join(t.TempDir(), "girder.db")

	out, err := runCLI(t, "save", path, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "saved demo")

	// unchanged save is a no-op
	out, err = runCLI(t, "save", path, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged")

	out, err = runCLI(t, "history", "demo", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "demo")

	out, err = runCLI(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "demo")

	loaded := filepath.Join(t.TempDir(), "loaded.yaml")
	_, err = runCLI(t, "load", "demo", "--db", db, "--out", loaded)
	require.NoError(t, err)

	data, err := os.ReadFile(loaded)
	require.NoError(t, err)
	doc, err := project.DecodeYAML(data)
	require.NoError(t, err)
	assert.Len(t, doc.Cards, 3)
}

func TestLoad_UnknownProject(t *testing.T) {
	db := filepath.Join(t.TempDir(), "girder.db")
	_, err := runCLI(t, "load", "ghost", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTest_RunsScenarios(t *testing.T) {
	dir := t.TempDir()
	scenario := `name: rect
cards:
  - id: sec
    type: section.rectangle
    inputs:
      B: {value: "10"}
      H: {value: "10"}
expect:
  - card: sec
    no_error: true
    outputs:
      A: 100
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rect.yaml"), []byte(scenario), 0644))

	out, err := runCLI(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ok   rect")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTest_FailingScenario(t *testing.T) {
	dir := t.TempDir()
	scenario := `name: wrong
cards:
  - id: sec
    type: section.rectangle
    inputs:
      B: {value: "10"}
      H: {value: "10"}
expect:
  - card: sec
    outputs:
      A: 999
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong.yaml"), []byte(scenario), 0644))

	out, err := runCLI(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "FAIL wrong")
}

func TestInvalidFormatFlag(t *testing.T) {
	_, err := runCLI(t, "--format", "xml", "card", "types")
	assert.Error(t, err)
}

func trimTrailingNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
