package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/girder/internal/project"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <project-file>",
		Short: "Validate a project file without computing",
		Long: `Check a project file against the document schema and data model
invariants: unique non-empty card ids, required types, and input slots
that are exactly a value or a reference.

Exit codes:
  0 - Document is valid
  1 - Document is invalid
  2 - Command error (missing file, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot read project file", err)
	}

	var verr error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		_, verr = project.DecodeJSON(data)
	} else {
		_, verr = project.DecodeYAML(data)
	}

	if verr != nil {
		if done, err := f.JSONError("E_INVALID_DOCUMENT", verr.Error(), nil); done {
			if err != nil {
				return err
			}
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "invalid: %v\n", verr)
		}
		return NewExitError(ExitFailure, "document is invalid")
	}

	if done, err := f.JSON(map[string]string{"file": path, "result": "valid"}); done {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
	return nil
}
