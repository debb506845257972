package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"knot-cli/internal/graph"
)

func newCopyCmd(app *App) *cobra.Command {
	var (
		recursive   bool
		assumeDate1 bool
		assumeDate2 bool
	)
	cmd := &cobra.Command{
		Use:   "cp <source>... <target>",
		Short: "Copy nodes under a new parent",
		Long: "Copy each source node as a fresh child of target. Copies are\n" +
			"plain task nodes regardless of the source kind. A target date\n" +
			"with no node yet is created on the fly; that form requires -r\n" +
			"and copies the children of each source into the new date node.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			targetToken := args[len(args)-1]
			sources := args[:len(args)-1]

			targetExists := true
			target, err := app.resolve(targetToken, assumeDate2)
			if err != nil {
				key, derr := graph.ParseDateExtended(targetToken)
				if derr != nil {
					return fmt.Errorf("target node not found: %q", targetToken)
				}
				if !recursive {
					return errors.New("copying to a date with no node yet requires --recursive")
				}
				targetExists = false
				target = app.g.InsertDate("", key)
				app.markDirty()
			}

			for _, token := range sources {
				from, err := app.resolve(token, assumeDate1)
				if err != nil {
					return err
				}
				// A freshly created date target gets the children of
				// each source, not the source node itself: copying
				// flattens kinds, so this keeps a date's content
				// shaped like a date's content.
				if !targetExists {
					n, err := app.g.Node(from)
					if err != nil {
						return err
					}
					for _, c := range append([]int(nil), n.Meta.Children...) {
						if err := app.g.CopyRecurse(c, target); err != nil {
							return err
						}
					}
				} else if recursive {
					if err := app.g.CopyRecurse(from, target); err != nil {
						return err
					}
				} else {
					if _, err := app.g.Copy(from, target); err != nil {
						return err
					}
				}
				app.markDirty()
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Copy whole subtrees")
	cmd.Flags().BoolVar(&assumeDate1, "assumedate1", false, "Read the source IDs as dates")
	cmd.Flags().BoolVar(&assumeDate2, "assumedate2", false, "Read the target ID as a date")
	return cmd
}
