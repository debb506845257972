package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"knot-cli/internal/tui"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the graph interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}

func runTUI(app *App) error {
	if app.bpName != "" {
		return fmt.Errorf("the interactive view cannot edit blueprint %q", app.bpName)
	}
	if err := app.ensure(); err != nil {
		return err
	}
	changed, err := tui.Run(app.g, app.cfg)
	if err != nil {
		return err
	}
	if changed {
		app.markDirty()
	}
	return nil
}
