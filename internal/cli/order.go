package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newOrderCmd(app *App) *cobra.Command {
	var (
		parentToken string
		assumeDate1 bool
		assumeDate2 bool
	)
	cmd := &cobra.Command{
		Use:   "ord <node> <up|down> [count]",
		Short: "Move a node up or down among its siblings",
		Long: "Shift a node by count positions (default 1) in one parent's\n" +
			"child list. Without -p the first parent is used; when the node\n" +
			"has several, they are listed so the choice is visible.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			node, err := app.resolve(args[0], assumeDate1)
			if err != nil {
				return err
			}
			var delta int
			switch args[1] {
			case "up":
				delta = -1
			case "down":
				delta = 1
			default:
				return fmt.Errorf("direction must be up or down, got %q", args[1])
			}
			if len(args) == 3 {
				count, err := strconv.Atoi(args[2])
				if err != nil || count < 1 {
					return fmt.Errorf("count must be a positive number, got %q", args[2])
				}
				delta *= count
			}

			n, err := app.g.Node(node)
			if err != nil {
				return err
			}
			var parent int
			if parentToken != "" {
				parent, err = app.resolve(parentToken, assumeDate2)
				if err != nil {
					return err
				}
				if !containsHandle(n.Meta.Parents, parent) {
					return fmt.Errorf("node %d is not a parent of %d", parent, node)
				}
			} else {
				if len(n.Meta.Parents) == 0 {
					return fmt.Errorf("node %d has no parents to order under", node)
				}
				if len(n.Meta.Parents) > 1 {
					app.renderer(cmd).ParentsChoice(app.g, n.Meta.Parents)
				}
				parent = n.Meta.Parents[0]
			}

			if err := app.g.ReorderChild(parent, node, delta); err != nil {
				return err
			}
			app.markDirty()
			return nil
		},
	}
	cmd.Flags().StringVarP(&parentToken, "parent", "p", "", "Order within this parent's child list")
	cmd.Flags().BoolVar(&assumeDate1, "assumedate1", false, "Read the node ID as a date")
	cmd.Flags().BoolVar(&assumeDate2, "assumedate2", false, "Read the parent ID as a date")
	return cmd
}

func containsHandle(hs []int, h int) bool {
	for _, x := range hs {
		if x == h {
			return true
		}
	}
	return false
}
