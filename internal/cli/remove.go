package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(app *App) *cobra.Command {
	var (
		recursive  bool
		assumeDate bool
	)
	cmd := &cobra.Command{
		Use:   "rm <ID>...",
		Short: "Remove nodes from the graph",
		Long: "Remove each node, unlinking it from all parents. Children are\n" +
			"kept and re-rooted unless -r removes the whole subtree.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			r := app.renderer(cmd)
			for _, token := range args {
				h, err := app.resolve(token, assumeDate)
				if err != nil {
					return err
				}
				if app.bpName != "" && h == 0 {
					return fmt.Errorf("node 0 is the root of blueprint %q and cannot be removed", app.bpName)
				}
				if recursive {
					err = app.g.RemoveRecursive(h)
				} else {
					err = app.g.Remove(h)
				}
				if err != nil {
					return err
				}
				app.markDirty()
				if app.showConnections() {
					r.Removed(h, recursive)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Remove the node and its entire subtree")
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read IDs as dates")
	return cmd
}
