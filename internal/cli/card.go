package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/girder/internal/formula"
	"github.com/roach88/girder/internal/project"
)

// NewCardCommand creates the card command group (add, rm, types).
func NewCardCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Add or remove cards in a project",
	}

	cmd.AddCommand(newCardAddCommand(rootOpts))
	cmd.AddCommand(newCardRmCommand(rootOpts))
	cmd.AddCommand(newCardTypesCommand(rootOpts))

	return cmd
}

func newCardAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <project-file> <type>",
		Short: "Append a card of a registered type",
		Long: `Append a new card to the end of the project, seeded with the type's
default inputs, then recompute and rewrite the file.

Examples:
  girder card add beam.yaml section.rectangle
  girder card add beam.yaml beam`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCardAdd(rootOpts, args[0], args[1], cmd)
		},
	}
}

func newCardRmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project-file> <card>",
		Short: "Remove a card",
		Long: `Remove a card from the project, then recompute and rewrite the file.
Inputs in other cards that referenced the removed card stay in place
and resolve to 0 until pointed elsewhere.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCardRm(rootOpts, args[0], args[1], cmd)
		},
	}
}

func newCardTypesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "types",
		Short:         "List registered card types",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCardTypes(rootOpts, cmd)
		},
	}
}

func runCardAdd(opts *RootOptions, path, typeID string, cmd *cobra.Command) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	sheet, err := buildSheet(doc)
	if err != nil {
		return err
	}

	c, err := sheet.CreateCard(typeID)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot add card", err)
	}

	result := project.FromCards(doc.Name, sheet.Cards())
	if err := writeDocument(path, result); err != nil {
		return err
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if done, err := f.JSON(map[string]string{"id": c.ID, "type": c.Type}); done {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %s [%s]\n", c.ID, c.Type)
	return nil
}

func runCardRm(opts *RootOptions, path, cardID string, cmd *cobra.Command) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	sheet, err := buildSheet(doc)
	if err != nil {
		return err
	}

	if err := sheet.DeleteCard(cardID); err != nil {
		return WrapExitError(ExitFailure, "cannot remove card", err)
	}

	result := project.FromCards(doc.Name, sheet.Cards())
	if err := writeDocument(path, result); err != nil {
		return err
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if done, err := f.JSON(map[string]string{"removed": cardID}); done {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", cardID)
	return nil
}

func runCardTypes(opts *RootOptions, cmd *cobra.Command) error {
	cat := formula.Catalog()
	ids := cat.TypeIDs()

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if done, err := f.JSON(ids); done {
		return err
	}
	for _, id := range ids {
		def, _ := cat.Lookup(id)
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", id, def.Label)
	}
	return nil
}
