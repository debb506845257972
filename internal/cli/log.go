package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"knot-cli/internal/activity"
)

func newLogCmd(app *App) *cobra.Command {
	var (
		count int
		clear bool
	)
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent commands that changed this save",
		Long: "Every command that writes the save file is journaled next to\n" +
			"it. log lists the most recent entries, oldest first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.bpName != "" {
				return fmt.Errorf("blueprint %q has no activity journal", app.bpName)
			}
			if err := app.ensure(); err != nil {
				return err
			}
			j := activity.Open(app.savePath)
			if clear {
				if err := j.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Activity log cleared.")
				return nil
			}
			events, err := j.Recent(cmd.Context(), count)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No activity yet.")
				return nil
			}
			for _, e := range events {
				line := e.TS.Local().Format("2006-01-02 15:04") + "  " + e.Action
				if e.Detail != "" {
					line += "  " + e.Detail
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 20, "How many entries to show, 0 for all")
	cmd.Flags().BoolVar(&clear, "clear", false, "Drop all journal entries")
	return cmd
}
