package cli

import (
	"github.com/spf13/cobra"
)

func newArchiveCmd(app *App) *cobra.Command {
	var assumeDate bool
	cmd := &cobra.Command{
		Use:   "arc <ID>...",
		Short: "Archive nodes",
		Long: "Archive each node. Archived nodes keep their edges but are\n" +
			"hidden from listings unless asked for.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setArchived(app, args, assumeDate, true)
		},
	}
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read IDs as dates")
	return cmd
}

func newUnarchiveCmd(app *App) *cobra.Command {
	var assumeDate bool
	cmd := &cobra.Command{
		Use:   "unarc <ID>...",
		Short: "Unarchive nodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setArchived(app, args, assumeDate, false)
		},
	}
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read IDs as dates")
	return cmd
}

func setArchived(app *App, tokens []string, assumeDate, archived bool) error {
	if err := app.ensure(); err != nil {
		return err
	}
	for _, token := range tokens {
		h, err := app.resolve(token, assumeDate)
		if err != nil {
			return err
		}
		if err := app.g.SetArchived(h, archived); err != nil {
			return err
		}
		app.markDirty()
	}
	return nil
}
