package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"knot-cli/internal/graph"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		root   bool
		date   string
		pseudo bool
	)
	cmd := &cobra.Command{
		Use:   "add [title] [parent]",
		Short: "Add a node to the graph",
		Long: "Add a task under a parent node, or a root node with -r, or a\n" +
			"date node with -d. Date nodes are unique per day: adding an\n" +
			"existing date reuses its node instead of creating a duplicate.",
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			if app.bpName != "" && (root || date != "") {
				return fmt.Errorf("blueprint %q holds a single tree: root and date nodes cannot be added", app.bpName)
			}
			if root && date != "" {
				return errors.New("--root and --date are mutually exclusive")
			}
			var title string
			if len(args) > 0 {
				title = args[0]
			}
			r := app.renderer(cmd)
			switch {
			case root:
				if len(args) > 1 {
					return errors.New("a root node takes no parent")
				}
				h := app.g.InsertRoot(title, pseudo)
				app.markDirty()
				if app.showConnections() {
					r.LinkedRoot(h)
				}
			case date != "":
				if len(args) > 1 {
					return errors.New("a date node takes no parent")
				}
				key, err := graph.ParseDateExtended(date)
				if err != nil {
					return err
				}
				h, err := app.g.DateHandle(key)
				if err != nil {
					h = app.g.InsertDate(title, key)
					app.markDirty()
				}
				if app.showConnections() {
					r.LinkedDates(h)
				}
			default:
				if len(args) < 2 {
					return errors.New("adding a child takes a title and a parent ID")
				}
				parent, err := app.g.Resolve(args[1])
				if err != nil {
					return err
				}
				h, err := app.g.InsertChild(title, parent, pseudo)
				if err != nil {
					return err
				}
				app.markDirty()
				if app.showConnections() {
					r.Linked(parent, h)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&root, "root", "r", false, "Add as a root node")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Add a date node for the given date")
	cmd.Flags().BoolVarP(&pseudo, "pseudo", "u", false, "Add as a pseudo node with no checkbox")
	return cmd
}
