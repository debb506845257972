package cli

import (
	"github.com/spf13/cobra"
)

func newLinkCmd(app *App) *cobra.Command {
	var assumeDate1, assumeDate2 bool
	cmd := &cobra.Command{
		Use:     "link <parent> <child>",
		Aliases: []string{"ln"},
		Short:   "Link a node under an additional parent",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			parent, err := app.resolve(args[0], assumeDate1)
			if err != nil {
				return err
			}
			child, err := app.resolve(args[1], assumeDate2)
			if err != nil {
				return err
			}
			if err := app.g.Link(parent, child); err != nil {
				return err
			}
			app.markDirty()
			if app.showConnections() {
				app.renderer(cmd).Linked(parent, child)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&assumeDate1, "assumedate1", false, "Read the parent ID as a date")
	cmd.Flags().BoolVar(&assumeDate2, "assumedate2", false, "Read the child ID as a date")
	return cmd
}

func newUnlinkCmd(app *App) *cobra.Command {
	var assumeDate1, assumeDate2 bool
	cmd := &cobra.Command{
		Use:   "unlink <parent> <child>",
		Short: "Remove the edge between a parent and a child",
		Long: "Remove the edge between parent and child. A child losing its\n" +
			"last parent becomes a root node.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			parent, err := app.resolve(args[0], assumeDate1)
			if err != nil {
				return err
			}
			child, err := app.resolve(args[1], assumeDate2)
			if err != nil {
				return err
			}
			if err := app.g.Unlink(parent, child); err != nil {
				return err
			}
			app.markDirty()
			if app.showConnections() {
				app.renderer(cmd).Unlinked(parent, child)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&assumeDate1, "assumedate1", false, "Read the parent ID as a date")
	cmd.Flags().BoolVar(&assumeDate2, "assumedate2", false, "Read the child ID as a date")
	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	var assumeDate1, assumeDate2 bool
	cmd := &cobra.Command{
		Use:   "mv <node>... <parent>",
		Short: "Detach nodes from all parents and relink under a new one",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			parent, err := app.resolve(args[len(args)-1], assumeDate2)
			if err != nil {
				return err
			}
			r := app.renderer(cmd)
			for _, token := range args[:len(args)-1] {
				node, err := app.resolve(token, assumeDate1)
				if err != nil {
					return err
				}
				if err := app.g.Move(node, parent); err != nil {
					return err
				}
				app.markDirty()
				if app.showConnections() {
					r.Linked(parent, node)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&assumeDate1, "assumedate1", false, "Read the node IDs as dates")
	cmd.Flags().BoolVar(&assumeDate2, "assumedate2", false, "Read the parent ID as a date")
	return cmd
}
