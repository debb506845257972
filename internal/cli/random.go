package cli

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"knot-cli/internal/graph"
)

// pickIndex is a hook so tests can pin the draw.
var pickIndex = rand.IntN

func newRandCmd(app *App) *cobra.Command {
	var (
		unchecked  bool
		checked    bool
		assumeDate bool
	)
	cmd := &cobra.Command{
		Use:   "rand <ID>",
		Short: "Pick a random child of a node",
		Long: "Pick one child of the node at random and show its stats. The\n" +
			"-u and -c filters drop done or not-done tasks first; nodes\n" +
			"without a checkbox pass either filter.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			if unchecked && checked {
				return errors.New("--unchecked and --checked are mutually exclusive")
			}
			h, err := app.resolve(args[0], assumeDate)
			if err != nil {
				return err
			}
			n, err := app.g.Node(h)
			if err != nil {
				return err
			}
			var pool []int
			for _, c := range n.Meta.Children {
				cn, err := app.g.Node(c)
				if err != nil {
					continue
				}
				if unchecked && cn.Kind == graph.KindTask && cn.State == graph.StateDone {
					continue
				}
				if checked && cn.Kind == graph.KindTask && cn.State != graph.StateDone {
					continue
				}
				pool = append(pool, c)
			}
			if len(pool) == 0 {
				return fmt.Errorf("node %d has no children to pick from", h)
			}
			return app.renderer(cmd).Stats(app.g, pool[pickIndex(len(pool))])
		},
	}
	cmd.Flags().BoolVarP(&unchecked, "unchecked", "u", false, "Pick among children that are not done")
	cmd.Flags().BoolVarP(&checked, "checked", "c", false, "Pick among children that are done")
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read the ID as a date")
	return cmd
}
