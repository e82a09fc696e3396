package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/girder/internal/project"
)

// OpenOptions holds flags for the open command.
type OpenOptions struct {
	*RootOptions
	Out string // write the decoded project to this file
}

// NewOpenCommand creates the open command.
func NewOpenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OpenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "open <token>",
		Short: "Decode a share token and recompute the project",
		Long: `Decode a share token produced by "girder share", validate the embedded
document, recompute it, and print the card results. With --out the
recomputed document is also written to a file.

Examples:
  girder open gdr1:...
  girder open gdr1:... --out restored.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "write the decoded document to this file")

	return cmd
}

func runOpen(opts *OpenOptions, token string, cmd *cobra.Command) error {
	doc, err := project.DecodeShare(token)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot decode share token", err)
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
		return err
	}
	printSheet(f, sheet, pass)
	return nil
}
