package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"knot-cli/internal/docs"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, "Topics:")
				for _, t := range docs.Topics() {
					fmt.Fprintln(out, "  "+t)
				}
				return nil
			}
			md, ok := docs.Get(args[0])
			if !ok {
				return fmt.Errorf("no docs topic %q, run docs without arguments for the list", args[0])
			}
			if raw || app.NoColor {
				fmt.Fprintln(out, strings.TrimRight(md, "\n"))
				return nil
			}
			fmt.Fprint(out, docs.Render(md, 0))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown source without rendering")
	return cmd
}
