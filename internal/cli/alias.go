package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAliasCmd(app *App) *cobra.Command {
	var assumeDate bool
	cmd := &cobra.Command{
		Use:   "alias <ID> <alias>",
		Short: "Name a node so the name works anywhere an ID does",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			if app.bpName != "" {
				return fmt.Errorf("blueprint %q cannot hold aliases", app.bpName)
			}
			h, err := app.resolve(args[0], assumeDate)
			if err != nil {
				return err
			}
			if err := app.g.SetAlias(h, args[1]); err != nil {
				return err
			}
			app.markDirty()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read the ID as a date")
	return cmd
}

func newUnaliasCmd(app *App) *cobra.Command {
	var assumeDate bool
	cmd := &cobra.Command{
		Use:   "unalias <ID>...",
		Short: "Drop the alias from nodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			for _, token := range args {
				h, err := app.resolve(token, assumeDate)
				if err != nil {
					return err
				}
				if err := app.g.UnsetAlias(h); err != nil {
					return err
				}
				app.markDirty()
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read IDs as dates")
	return cmd
}

func newAliasesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "aliases",
		Short: "List every alias",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			app.renderer(cmd).Aliases(app.g)
			return nil
		},
	}
}

func newRenameCmd(app *App) *cobra.Command {
	var assumeDate bool
	cmd := &cobra.Command{
		Use:   "rename <ID> <title>",
		Short: "Retitle a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			h, err := app.resolve(args[0], assumeDate)
			if err != nil {
				return err
			}
			if err := app.g.Rename(h, args[1]); err != nil {
				return err
			}
			app.markDirty()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read the ID as a date")
	return cmd
}
