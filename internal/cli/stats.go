package cli

import (
	"time"

	"github.com/spf13/cobra"

	"knot-cli/internal/graph"
)

func newStatsCmd(app *App) *cobra.Command {
	var assumeDate bool
	cmd := &cobra.Command{
		Use:   "stats [ID]",
		Short: "Show a node's details, or totals for the whole graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			r := app.renderer(cmd)
			if len(args) == 0 {
				r.Summary(app.g)
				return nil
			}
			h, err := app.resolve(args[0], assumeDate)
			if err != nil {
				return err
			}
			return r.Stats(app.g, h)
		},
	}
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read the ID as a date")
	return cmd
}

func newCleanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Compact the save file, renumbering nodes densely",
		Long: "Drop the slots left behind by removed nodes and renumber the\n" +
			"survivors. Handles change; aliases keep following their nodes.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			app.g.Clean()
			app.markDirty()
			return nil
		},
	}
}

func newCalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cal [date]",
		Short: "Show a month calendar with activity heat per day",
		Long: "Print the month holding the given date, today by default. Days\n" +
			"with a date node are colored by how many children the node\n" +
			"has; today is highlighted.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			ref := time.Now()
			if len(args) == 1 {
				key, err := graph.ParseDateExtended(args[0])
				if err != nil {
					return err
				}
				t, err := time.Parse("2006-01-02", key)
				if err != nil {
					return err
				}
				ref = t
			}
			app.renderer(cmd).Calendar(app.g, ref)
			return nil
		},
	}
	return cmd
}
