package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/girder/internal/project"
)

// SetOptions holds flags for the set command.
type SetOptions struct {
	*RootOptions
	Ref   string // "card.output" reference target
	Clear bool   // remove the reference arm of the slot
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <project-file> <card> <key> [<value>]",
		Short: "Set a card input, recompute, and rewrite the file",
		Long: `Store a literal value or a reference in a card's input slot, run a
recalculation pass, and write the recomputed document back to the file.

A literal value is given as the fourth argument. A reference is given
with --ref card.output. --clear removes a reference (a literal stored
in the same slot is untouched).

Examples:
  girder set beam.yaml b1 L 4000
  girder set beam.yaml chk M --ref b1.M
  girder set beam.yaml chk M --clear`,
		Args:          cobra.RangeArgs(3, 4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ref, "ref", "", "reference target as card.output")
	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "remove the slot's reference")

	return cmd
}

func runSet(opts *SetOptions, args []string, cmd *cobra.Command) error {
	path, cardID, key := args[0], args[1], args[2]

	modes := 0
	if len(args) == 4 {
		modes++
	}
	if opts.Ref != "" {
		modes++
	}
	if opts.Clear {
		modes++
	}
	if modes != 1 {
		return NewExitError(ExitCommandError, "exactly one of <value>, --ref, or --clear is required")
	}

	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	sheet, err := buildSheet(doc)
	if err != nil {
		return err
	}

	switch {
	case opts.Clear:
		err = sheet.ClearReference(cardID, key)
	case opts.Ref != "":
		producer, output, splitErr := splitRef(opts.Ref)
		if splitErr != nil {
			return WrapExitError(ExitCommandError, "invalid --ref", splitErr)
		}
		err = sheet.SetReference(cardID, key, producer, output)
	default:
		err = sheet.SetLiteral(cardID, key, args[3])
	}
	if err != nil {
		return WrapExitError(ExitFailure, "mutation rejected", err)
	}

	result := project.FromCards(doc.Name, sheet.Cards())
	if err := writeDocument(path, result); err != nil {
		return err
	}

	pass := sheet.LastPass()
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if done, err := f.JSON(calcPayload{Document: result, Pass: pass.Pass, Failed: pass.Failed, Cycles: cycleLists(pass)}); done {
		return err
	}
	printSheet(f, sheet, pass)
	return nil
}

// splitRef parses "card.output" at the LAST dot, so card ids that
// contain dots still work as long as the output key has none.
func splitRef(ref string) (producer, output string, err error) {
	i := strings.LastIndex(ref, ".")
	if i <= 0 || i == len(ref)-1 {
		return "", "", fmt.Errorf("want card.output, got %q", ref)
	}
	return ref[:i], ref[i+1:], nil
}
