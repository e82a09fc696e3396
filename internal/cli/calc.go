package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/girder/internal/card"
	"github.com/roach88/girder/internal/engine"
	"github.com/roach88/girder/internal/project"
)

// CalcOptions holds flags for the calc command.
type CalcOptions struct {
	*RootOptions
	Out string // write the recomputed document here instead of stdout-only
}

// NewCalcCommand creates the calc command.
func NewCalcCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalcOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "calc <project-file>",
		Short: "Recompute a project and print card results",
		Long: `Load a project file, recompute every card in dependency order, and
print the resulting outputs and errors.

Exit codes:
  0 - All cards computed without errors
  1 - One or more cards failed (or the document is invalid)
  2 - Command error (missing file, etc.)

Examples:
  girder calc beam.yaml
  girder calc beam.yaml --out beam.yaml
  girder calc beam.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "write the recomputed document to this file")

	return cmd
}

func runCalc(opts *CalcOptions, path string, cmd *cobra.Command) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	sheet, err := buildSheet(doc)
	if err != nil {
		return err
	}

	pass := sheet.LastPass()
	result := project.FromCards(doc.Name, sheet.Cards())

	if opts.Out != "" {
		if err := writeDocument(opts.Out, result); err != nil {
			return err
		}
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if done, err := f.JSON(calcPayload{Document: result, Pass: pass.Pass, Failed: pass.Failed, Cycles: cycleLists(pass)}); done {
		if err != nil {
			return err
		}
	} else {
		printSheet(f, sheet, pass)
	}

	if pass.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d card(s) failed", pass.Failed))
	}
	return nil
}

type calcPayload struct {
	Document *project.Document `json:"document"`
	Pass     int64             `json:"pass"`
	Failed   int               `json:"failed"`
	Cycles   [][]string        `json:"cycles,omitempty"`
}

func cycleLists(pass engine.PassReport) [][]string {
	if len(pass.Cycles) == 0 {
		return nil
	}
	lists := make([][]string, len(pass.Cycles))
	for i, cyc := range pass.Cycles {
		lists[i] = cyc.IDs
	}
	return lists
}

// printSheet renders the per-card text report.
func printSheet(f *OutputFormatter, sheet *engine.Sheet, pass engine.PassReport) {
	w := f.Writer

	for _, c := range sheet.Cards() {
		fmt.Fprintf(w, "%s\n", cardHeading(c))
		keys := make([]string, 0, len(c.Outputs))
		for key := range c.Outputs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(w, "  %s = %s\n", key, f.Number(c.Outputs[key]))
		}
		if c.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", c.Error)
		}
	}

	for _, cyc := range pass.Cycles {
		fmt.Fprintf(w, "cycle: %s\n", strings.Join(cyc.IDs, " -> "))
	}
	fmt.Fprintf(w, "\n%s\n", pass.String())
}

func cardHeading(c *card.Card) string {
	if c.Alias != "" {
		return fmt.Sprintf("%s (%s) [%s]", c.Alias, c.ID, c.Type)
	}
	return fmt.Sprintf("%s [%s]", c.ID, c.Type)
}
