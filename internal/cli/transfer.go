package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"knot-cli/internal/doc"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the whole graph as JSON to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			data, err := doc.EncodeJSON(app.g)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Replace the save with JSON read from stdin",
		Long: "Read a JSON graph from stdin and write it over the selected\n" +
			"save file. The old save is not read first, so a damaged file\n" +
			"can be replaced this way.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.bpName != "" {
				return fmt.Errorf("cannot import over blueprint %q", app.bpName)
			}
			if err := app.ensureConfig(); err != nil {
				return err
			}
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			g, err := doc.DecodeJSON(data)
			if err != nil {
				return err
			}
			path, err := app.resolveSavePath()
			if err != nil {
				return err
			}
			app.g = g
			app.savePath = path
			app.loaded = true
			app.markDirty()
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully imported json! %d nodes; %d root nodes; %d aliases\n",
				g.NodeCount(), g.RootCount(), g.AliasCount())
			return nil
		},
	}
}
