package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/girder/internal/project"
)

// Scenario is a declarative test case: an initial card list, a
// sequence of mutations, and expectations about the final sheet.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what behavior the scenario verifies.
	Description string `yaml:"description,omitempty"`

	// Cards is the initial sheet, in the project wire format.
	Cards []project.CardDoc `yaml:"cards"`

	// Steps are mutations applied in order after the initial pass.
	Steps []Step `yaml:"steps,omitempty"`

	// Expect holds per-card expectations evaluated after all steps.
	Expect []Expectation `yaml:"expect,omitempty"`
}

// Step is one mutation. Exactly one of the operation fields is set.
type Step struct {
	// Set stores a literal input value.
	Set *SetStep `yaml:"set,omitempty"`

	// SetRef stores a reference input.
	SetRef *SetRefStep `yaml:"set_ref,omitempty"`

	// ClearRef removes a reference input.
	ClearRef *KeyStep `yaml:"clear_ref,omitempty"`

	// DeleteInput removes an input slot entirely.
	DeleteInput *KeyStep `yaml:"delete_input,omitempty"`

	// Create appends a new card of the given type.
	Create *CreateStep `yaml:"create,omitempty"`

	// Delete removes a card.
	Delete *DeleteStep `yaml:"delete,omitempty"`

	// Reorder rearranges the sheet.
	Reorder []string `yaml:"reorder,omitempty"`
}

// SetStep stores a literal value in a card's input slot.
type SetStep struct {
	Card  string `yaml:"card"`
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// SetRefStep stores a reference in a card's input slot.
type SetRefStep struct {
	Card     string `yaml:"card"`
	Key      string `yaml:"key"`
	Producer string `yaml:"producer"`
	Output   string `yaml:"output"`
}

// KeyStep names a card input slot.
type KeyStep struct {
	Card string `yaml:"card"`
	Key  string `yaml:"key"`
}

// CreateStep appends a card of a type.
type CreateStep struct {
	Type string `yaml:"type"`
}

// DeleteStep removes a card.
type DeleteStep struct {
	Card string `yaml:"card"`
}

// Expectation describes the final state of one card.
type Expectation struct {
	Card string `yaml:"card"`

	// Outputs are expected values, compared within Tolerance.
	Outputs map[string]float64 `yaml:"outputs,omitempty"`

	// MissingOutputs are keys that must NOT be present.
	MissingOutputs []string `yaml:"missing_outputs,omitempty"`

	// Error is a substring the card's error must contain. "" with
	// NoError unset means the error slot is not checked.
	Error string `yaml:"error,omitempty"`

	// NoError asserts the card finished without an error.
	NoError bool `yaml:"no_error,omitempty"`

	// Tolerance for output comparison. 0 means exact within 1e-9
	// relative.
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("load scenario %s: name is required", path)
	}
	return &sc, nil
}
