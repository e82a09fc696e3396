package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/girder/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run recalculation scenarios",
		Long: `Run scenario files against the formula catalog. Each scenario builds
a fresh sheet, applies its mutation steps, and checks the expected
outputs and errors.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  girder test ./scenarios
  girder test ./scenarios --filter "beam-*"
  girder test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	scenarioFiles, err := findScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot find scenarios", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	if len(scenarioFiles) == 0 {
		if done, err := f.JSON(TestResult{Scenarios: []ScenarioResult{}}); done {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(scenarioFiles)),
		Total:     len(scenarioFiles),
	}
	for _, scenarioFile := range scenarioFiles {
		scenResult := runScenario(scenarioFile, opts, cmd)
		result.Scenarios = append(result.Scenarios, scenResult)
		if scenResult.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if done, err := f.JSON(result); done {
		if err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// findScenarioFiles finds all YAML scenario files in a directory.
func findScenarioFiles(dir string, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// runScenario executes a single scenario and returns its result.
func runScenario(scenarioFile string, opts *TestOptions, cmd *cobra.Command) ScenarioResult {
	w := cmd.OutOrStdout()
	text := opts.Format != "json"

	scenario, err := harness.LoadScenario(scenarioFile)
	if err != nil {
		if text {
			fmt.Fprintf(w, "FAIL %s\n  %v\n", filepath.Base(scenarioFile), err)
		}
		return ScenarioResult{
			Name:   filepath.Base(scenarioFile),
			Pass:   false,
			Errors: []string{err.Error()},
		}
	}

	result, err := harness.Run(scenario)
	if err != nil {
		if text {
			fmt.Fprintf(w, "FAIL %s\n  %v\n", scenario.Name, err)
		}
		return ScenarioResult{
			Name:   scenario.Name,
			Pass:   false,
			Errors: []string{err.Error()},
		}
	}

	if !result.Passed() {
		if text {
			fmt.Fprintf(w, "FAIL %s\n", scenario.Name)
			for _, e := range result.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
		return ScenarioResult{
			Name:   scenario.Name,
			Pass:   false,
			Errors: result.Errors,
		}
	}

	if text {
		fmt.Fprintf(w, "ok   %s\n", scenario.Name)
	}
	return ScenarioResult{Name: scenario.Name, Pass: true}
}
