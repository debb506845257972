package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var (
		showArchived bool
		depth        int
		recurse      bool
		assumeDate   bool
	)
	cmd := &cobra.Command{
		Use:   "ls [ID]",
		Short: "List the trees under the roots, or under one node",
		Long: "List root nodes and their children to the given depth. With an\n" +
			"ID, list that node and its children instead. Nodes reachable\n" +
			"through more than one parent are marked with the multi-parent\n" +
			"arm and not expanded twice.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			if recurse {
				depth = 0
			}
			r := app.renderer(cmd)
			if len(args) == 0 {
				return r.ListRoots(app.g, depth, showArchived)
			}
			h, err := app.resolve(args[0], assumeDate)
			if err != nil {
				return err
			}
			return r.ListChildren(app.g, h, depth, showArchived)
		},
	}
	cmd.Flags().BoolVarP(&showArchived, "archived", "a", false, "Include archived nodes")
	cmd.Flags().IntVarP(&depth, "depth", "d", 1, "How many levels to descend, 0 for no limit")
	cmd.Flags().BoolVarP(&recurse, "recurse", "r", false, "Descend without a depth limit")
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read the ID as a date")
	return cmd
}

func newListDatesCmd(app *App) *cobra.Command {
	var showArchived bool
	cmd := &cobra.Command{
		Use:   "lsd",
		Short: "List date nodes in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			return app.renderer(cmd).ListDates(app.g, showArchived)
		},
	}
	cmd.Flags().BoolVarP(&showArchived, "archived", "a", false, "Include archived nodes")
	return cmd
}

func newListArchivedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lsa",
		Short: "List archived nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			return app.renderer(cmd).ListArchived(app.g)
		},
	}
}
