package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/girder/internal/project"
)

// NewShareCommand creates the share command.
func NewShareCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "share <project-file>",
		Short: "Encode a project as a shareable token",
		Long: `Encode a project file as a compact self-contained token. The token
carries the whole document (compressed) plus a fingerprint check, so
"girder open" can restore it without access to the original file.

Examples:
  girder share beam.yaml
  girder share beam.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShare(rootOpts, args[0], cmd)
		},
	}
}

func runShare(opts *RootOptions, path string, cmd *cobra.Command) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	token, err := project.EncodeShare(doc)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot encode share token", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if done, err := f.JSON(map[string]string{"token": token}); done {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
