package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"knot-cli/internal/graph"
)

// blueprint graphs carry structure only; completion state stays unset
// until the blueprint is instantiated.
func (app *App) rejectStateInBlueprint() error {
	if app.bpName == "" {
		return nil
	}
	return fmt.Errorf("blueprint %q nodes carry no completion state", app.bpName)
}

func parseState(s string) (graph.State, error) {
	switch s {
	case "none":
		return graph.StateNone, nil
	case "partial":
		return graph.StatePartial, nil
	case "done":
		return graph.StateDone, nil
	}
	return "", fmt.Errorf("state must be none, partial or done, got %q", s)
}

func newSetCmd(app *App) *cobra.Command {
	var assumeDate bool
	cmd := &cobra.Command{
		Use:   "set <ID> <none|partial|done>",
		Short: "Set a task's completion state",
		Long: "Set the state of a task node. The change propagates: children\n" +
			"follow a done or none parent, and ancestors recompute from\n" +
			"their children.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			if err := app.rejectStateInBlueprint(); err != nil {
				return err
			}
			h, err := app.resolve(args[0], assumeDate)
			if err != nil {
				return err
			}
			state, err := parseState(args[1])
			if err != nil {
				return err
			}
			if err := app.g.SetState(h, state, true); err != nil {
				return err
			}
			app.markDirty()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read the ID as a date")
	return cmd
}

func newCheckCmd(app *App) *cobra.Command {
	var assumeDate bool
	cmd := &cobra.Command{
		Use:   "check <ID>...",
		Short: "Mark tasks done",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setStates(app, args, assumeDate, graph.StateDone)
		},
	}
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read IDs as dates")
	return cmd
}

func newUncheckCmd(app *App) *cobra.Command {
	var assumeDate bool
	cmd := &cobra.Command{
		Use:   "uncheck <ID>...",
		Short: "Mark tasks not done",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setStates(app, args, assumeDate, graph.StateNone)
		},
	}
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read IDs as dates")
	return cmd
}

func setStates(app *App, tokens []string, assumeDate bool, state graph.State) error {
	if err := app.ensure(); err != nil {
		return err
	}
	if err := app.rejectStateInBlueprint(); err != nil {
		return err
	}
	for _, token := range tokens {
		h, err := app.resolve(token, assumeDate)
		if err != nil {
			return err
		}
		if err := app.g.SetState(h, state, true); err != nil {
			return err
		}
		app.markDirty()
	}
	return nil
}
