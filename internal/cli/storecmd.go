package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/girder/internal/store"
)

// defaultDBPath is where the project store lives unless --db is given.
const defaultDBPath = "girder.db"

// StoreOptions holds flags shared by the store-backed commands.
type StoreOptions struct {
	*RootOptions
	DB string
}

func addDBFlag(cmd *cobra.Command, opts *StoreOptions) {
	cmd.Flags().StringVar(&opts.DB, "db", defaultDBPath, "path to the project store database")
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}
	var projectName string

	cmd := &cobra.Command{
		Use:   "save <project-file>",
		Short: "Save a project revision to the store",
		Long: `Validate a project file and save it as a new revision. Saving the
same content twice is a no-op: revisions are deduplicated by content
fingerprint.

Examples:
  girder save beam.yaml
  girder save beam.yaml --project bridge-a --db work.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(opts, args[0], projectName, cmd)
		},
	}

	addDBFlag(cmd, opts)
	cmd.Flags().StringVar(&projectName, "project", "", "project name (defaults to the file name)")

	return cmd
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}
	var out string

	cmd := &cobra.Command{
		Use:   "load <project-name>",
		Short: "Load the latest revision of a project from the store",
		Long: `Load the most recent saved revision of a project and write it to a
file (or print it as YAML).

Examples:
  girder load bridge-a --out beam.yaml
  girder load bridge-a --db work.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args[0], out, cmd)
		},
	}

	addDBFlag(cmd, opts)
	cmd.Flags().StringVar(&out, "out", "", "write the document to this file instead of stdout")

	return cmd
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [<project-name>]",
		Short: "List saved revisions",
		Long: `List the saved revisions of a project, newest first. Without a
project name, list the projects in the store.

Examples:
  girder history bridge-a
  girder history --db work.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runHistory(opts, name, cmd)
		},
	}

	addDBFlag(cmd, opts)

	return cmd
}

func openStore(opts *StoreOptions) (*store.Store, error) {
	st, err := store.Open(opts.DB)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot open store %s", opts.DB), err)
	}
	return st, nil
}

func runSave(opts *StoreOptions, path, projectName string, cmd *cobra.Command) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	if projectName == "" {
		projectName = doc.Name
	}
	if projectName == "" {
		projectName = filepath.Base(path)
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	inserted, err := st.SaveRevision(cmd.Context(), projectName, doc)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot save revision", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if done, err := f.JSON(map[string]any{"project": projectName, "inserted": inserted}); done {
		return err
	}
	if inserted {
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", projectName)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s unchanged, nothing saved\n", projectName)
	}
	return nil
}

func runLoad(opts *StoreOptions, name, out string, cmd *cobra.Command) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	doc, err := st.LoadLatest(cmd.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NewExitError(ExitCommandError, fmt.Sprintf("project %s not found", name))
		}
		return WrapExitError(ExitCommandError, "cannot load project", err)
	}

	if out != "" {
		if err := writeDocument(out, doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
		return nil
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if done, err := f.JSON(doc); done {
		return err
	}
	data, err := doc.EncodeYAML()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runHistory(opts *StoreOptions, name string, cmd *cobra.Command) error {
	if _, err := os.Stat(opts.DB); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("store not found: %s", opts.DB))
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	w := cmd.OutOrStdout()

	if name == "" {
		projects, err := st.Projects(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot list projects", err)
		}
		if done, err := f.JSON(projects); done {
			return err
		}
		for _, p := range projects {
			fmt.Fprintln(w, p)
		}
		return nil
	}

	revisions, err := st.History(cmd.Context(), name)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot read history", err)
	}
	if len(revisions) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("project %s not found", name))
	}

	if done, err := f.JSON(revisions); done {
		return err
	}
	for _, rev := range revisions {
		fmt.Fprintf(w, "%s  %s  %s\n", rev.SavedAt, rev.Fingerprint[:12], name)
	}
	return nil
}
