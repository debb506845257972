// Package cli wires every knot command to the graph engine. Commands
// share one App per invocation: flags resolve a save file, the graph
// loads once, and a successful mutating command writes it back.
package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"knot-cli/internal/activity"
	"knot-cli/internal/config"
	"knot-cli/internal/display"
	"knot-cli/internal/doc"
	"knot-cli/internal/graph"
)

const version = "0.5.0"

// App carries one invocation's flags plus the session state loaded on
// first use.
type App struct {
	LocalDir   string
	Global     bool
	ConfigPath string
	NoColor    bool

	cfg      *config.Config
	g        *graph.Graph
	savePath string
	loaded   bool
	dirty    bool

	// bpName is set while commands run against a blueprint through
	// `bp edit`; root and date mutations are rejected then.
	bpName string

	load   func(*App) error
	commit func(*App, *cobra.Command, []string) error
}

func newApp() *App {
	return &App{load: loadSave, commit: commitSave}
}

func NewRootCmd() *cobra.Command {
	return newRootCmdWithApp(newApp())
}

func newRootCmdWithApp(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "knot",
		Short:        "Graph-shaped todo keeper",
		Version:      version,
		SilenceUsage: true,
		Example: strings.TrimRight(`
  # Start the interactive TUI
  knot

  # Add a root task, then a child under handle 0
  knot add -r "learn go"
  knot add "read the tour" 0

  # Mark it done and show the tree
  knot check 1
  knot ls -r`, "\n"),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand starts the TUI.
			if len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.commit(app, cmd, args)
	}

	cmd.PersistentFlags().StringVarP(&app.LocalDir, "local", "l", "", "Use the save file in the given directory")
	cmd.PersistentFlags().BoolVarP(&app.Global, "global", "g", false, "Use the home-directory save file")
	cmd.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "", "Config file to read instead of ~/"+config.FileName)
	cmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Disable styled output")
	cmd.Flags().BoolP("version", "V", false, "Print the version and exit")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newLinkCmd(app))
	cmd.AddCommand(newUnlinkCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newCopyCmd(app))
	cmd.AddCommand(newOrderCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newUncheckCmd(app))
	cmd.AddCommand(newArchiveCmd(app))
	cmd.AddCommand(newUnarchiveCmd(app))
	cmd.AddCommand(newAliasCmd(app))
	cmd.AddCommand(newUnaliasCmd(app))
	cmd.AddCommand(newAliasesCmd(app))
	cmd.AddCommand(newRenameCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newListDatesCmd(app))
	cmd.AddCommand(newListArchivedCmd(app))
	cmd.AddCommand(newRandCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newCleanCmd(app))
	cmd.AddCommand(newCalCmd(app))
	cmd.AddCommand(newBlueprintCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newLogCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newNewCfgCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

// ensure loads config and graph once per invocation.
func (app *App) ensure() error {
	if app.loaded {
		return nil
	}
	if err := app.ensureConfig(); err != nil {
		return err
	}
	if err := app.load(app); err != nil {
		return err
	}
	app.loaded = true
	return nil
}

func (app *App) ensureConfig() error {
	if app.cfg != nil {
		return nil
	}
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	app.cfg = cfg
	return nil
}

func loadSave(app *App) error {
	path, err := app.resolveSavePath()
	if err != nil {
		return err
	}
	g, err := doc.Load(path)
	if err != nil {
		return err
	}
	app.savePath = path
	app.g = g
	return nil
}

// resolveSavePath picks the save file: -g beats -l beats the default
// local-then-global search.
func (app *App) resolveSavePath() (string, error) {
	switch {
	case app.Global:
		return doc.GlobalPath()
	case app.LocalDir != "":
		return filepath.Join(app.LocalDir, doc.FileName), nil
	}
	return doc.DefaultPath()
}

func commitSave(app *App, cmd *cobra.Command, args []string) error {
	if !app.dirty || app.g == nil {
		return nil
	}
	if app.cfg != nil && app.cfg.Graph.AutoClean {
		app.g.Clean()
	}
	if err := doc.Save(app.savePath, app.g); err != nil {
		return err
	}
	app.recordActivity(cmd, args)
	return nil
}

// recordActivity journals the command best effort; a broken journal
// never fails a command whose save already succeeded.
func (app *App) recordActivity(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	action := strings.TrimSpace(strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()))
	if action == "" {
		action = cmd.Name()
	}
	_ = activity.Open(app.savePath).Append(ctx, action, strings.Join(args, " "))
}

func (app *App) renderer(cmd *cobra.Command) *display.Renderer {
	display.ApplyColorProfile(app.NoColor)
	return display.New(cmd.OutOrStdout(), app.cfg)
}

// resolve turns a command-line ID into a handle, forcing date
// interpretation when the command's -D flag was set.
func (app *App) resolve(token string, assumeDate bool) (int, error) {
	if assumeDate {
		return app.g.ResolveAssumeDate(token)
	}
	return app.g.Resolve(token)
}

func (app *App) showConnections() bool {
	return app.cfg != nil && app.cfg.Display.ShowConnections
}

func (app *App) markDirty() { app.dirty = true }
