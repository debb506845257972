package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"knot-cli/internal/config"
)

func newNewCfgCmd(app *App) *cobra.Command {
	var (
		write bool
		force bool
	)
	cmd := &cobra.Command{
		Use:   "new-cfg",
		Short: "Print a default config file, or install one with --write",
		Long: "Print a config file with every option at its default. Redirect\n" +
			"it to ~/" + config.FileName + " and edit from there, or pass\n" +
			"--write to put it there directly.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), config.DefaultTemplate)
				return nil
			}
			path := app.ConfigPath
			if path == "" {
				p, err := config.Path()
				if err != nil {
					return err
				}
				path = p
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the file instead of printing it")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing config file")
	return cmd
}
