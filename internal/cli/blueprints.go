package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"knot-cli/internal/blueprint"
	"knot-cli/internal/doc"
)

func newBlueprintCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bp",
		Short: "Save, inspect and reuse subtrees as blueprints",
		Long: "Blueprints are subtrees extracted into named template files.\n" +
			"They live in the store directory from the config, or travel as\n" +
			"plain files.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.bpName != "" {
				return fmt.Errorf("blueprint commands cannot run inside blueprint %q", app.bpName)
			}
			return nil
		},
	}
	cmd.AddCommand(newBlueprintListCmd(app))
	cmd.AddCommand(newBlueprintSaveCmd(app))
	cmd.AddCommand(newBlueprintRemoveCmd(app))
	cmd.AddCommand(newBlueprintInsertCmd(app))
	cmd.AddCommand(newBlueprintShowCmd(app))
	cmd.AddCommand(newBlueprintExportCmd(app))
	cmd.AddCommand(newBlueprintEditCmd(app))
	return cmd
}

func (app *App) blueprintStore() (*blueprint.Store, error) {
	if err := app.ensureConfig(); err != nil {
		return nil, err
	}
	return blueprint.NewStore(app.cfg.Blueprints.Dir), nil
}

// loadBlueprintPreferFile reads name as a working-directory file first
// and falls back to the store, so a blueprint passed around as a file
// shadows a stored one of the same name.
func (app *App) loadBlueprintPreferFile(name string) (*blueprint.Doc, string, error) {
	if doc.Exists(name) {
		d, err := blueprint.LoadFile(name)
		return d, name, err
	}
	store, err := app.blueprintStore()
	if err != nil {
		return nil, "", err
	}
	d, err := store.Load(name)
	return d, store.Path(name), err
}

// loadBlueprintPreferStore tries the store first, then name as a file.
func (app *App) loadBlueprintPreferStore(name string) (*blueprint.Doc, error) {
	store, err := app.blueprintStore()
	if err != nil {
		return nil, err
	}
	if d, err := store.Load(name); err == nil {
		return d, nil
	}
	d, err := blueprint.LoadFile(name)
	if err != nil {
		return nil, fmt.Errorf("no blueprint %q in the store or on disk", name)
	}
	return d, nil
}

func newBlueprintListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List stored blueprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.blueprintStore()
			if err != nil {
				return err
			}
			names, err := store.List()
			if err != nil {
				return err
			}
			app.renderer(cmd).BlueprintList(names)
			return nil
		},
	}
}

func newBlueprintSaveCmd(app *App) *cobra.Command {
	var (
		author     string
		toFile     bool
		preserve   bool
		overwrite  bool
		assumeDate bool
	)
	cmd := &cobra.Command{
		Use:   "save <ID> <name>",
		Short: "Extract a subtree into a blueprint",
		Long: "Extract the subtree under the node into a blueprint. The node\n" +
			"and its subtree are removed from the graph afterwards unless\n" +
			"-p keeps them.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			h, err := app.resolve(args[0], assumeDate)
			if err != nil {
				return err
			}
			name := args[1]
			d, err := blueprint.Extract(app.g, h, name, author)
			if err != nil {
				return err
			}

			var path string
			if toFile {
				path = name + ".yaml"
				if doc.Exists(path) && !overwrite {
					return fmt.Errorf("%s already exists, pass -o to overwrite", path)
				}
				if err := blueprint.WriteFile(path, d); err != nil {
					return err
				}
			} else {
				store, err := app.blueprintStore()
				if err != nil {
					return err
				}
				path, err = store.Save(name, d, overwrite)
				if errors.Is(err, blueprint.ErrExists) {
					return fmt.Errorf("%v, pass -o to overwrite", err)
				}
				if err != nil {
					return err
				}
			}
			app.renderer(cmd).BlueprintWritten(path)

			if !preserve {
				if err := app.g.RemoveRecursive(h); err != nil {
					return err
				}
				app.markDirty()
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&author, "author", "a", "", "Record an author in the blueprint")
	cmd.Flags().BoolVarP(&toFile, "file", "f", false, "Write <name>.yaml in the working directory instead of the store")
	cmd.Flags().BoolVarP(&preserve, "preserve", "p", false, "Keep the subtree in the graph")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false, "Replace an existing blueprint")
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read the ID as a date")
	return cmd
}

func newBlueprintRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a stored blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.blueprintStore()
			if err != nil {
				return err
			}
			path, err := store.Remove(args[0])
			if err != nil {
				return err
			}
			app.renderer(cmd).BlueprintDeleted(path)
			return nil
		},
	}
}

func newBlueprintInsertCmd(app *App) *cobra.Command {
	var (
		root       bool
		assumeDate bool
	)
	cmd := &cobra.Command{
		Use:   "ins <name> <parent> [title]",
		Short: "Materialize a blueprint into the graph",
		Long: "Insert the blueprint's subtree under a parent node, or as a\n" +
			"new root with -r. The title argument replaces the blueprint\n" +
			"root's own title.",
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensure(); err != nil {
				return err
			}
			name := args[0]
			d, _, err := app.loadBlueprintPreferFile(name)
			if err != nil {
				return err
			}

			var h int
			if root {
				if len(args) > 2 {
					return errors.New("inserting at root takes no parent ID")
				}
				var title string
				if len(args) == 2 {
					title = args[1]
				}
				h, err = blueprint.InsertRoot(app.g, d, title)
			} else {
				if len(args) < 2 {
					return errors.New("a parent ID is required unless --root is set")
				}
				parent, perr := app.resolve(args[1], assumeDate)
				if perr != nil {
					return perr
				}
				var title string
				if len(args) == 3 {
					title = args[2]
				}
				h, err = blueprint.Insert(app.g, d, parent, title)
			}
			if err != nil {
				return err
			}
			app.markDirty()
			if app.showConnections() {
				app.renderer(cmd).BlueprintInserted(name, h)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&root, "root", "r", false, "Insert as a new root subtree")
	cmd.Flags().BoolVarP(&assumeDate, "assumedate", "D", false, "Read the parent ID as a date")
	return cmd
}

func newBlueprintShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Preview a blueprint as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.loadBlueprintPreferStore(args[0])
			if err != nil {
				return err
			}
			bg, err := blueprint.BuildGraph(d)
			if err != nil {
				return err
			}
			r := app.renderer(cmd)
			r.BlueprintHeader(args[0], d.Author)
			return r.ListRoots(bg, 0, true)
		},
	}
}

func newBlueprintExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <name>",
		Short: "Print a stored blueprint's raw document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.blueprintStore()
			if err != nil {
				return err
			}
			d, err := store.Load(args[0])
			if err != nil {
				return err
			}
			data, err := blueprint.Encode(d)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newBlueprintEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <name> <command>...",
		Short: "Run a graph command against a blueprint",
		Long: "Load the blueprint as its own small graph, run the given knot\n" +
			"command against it, and write the blueprint back. The root of\n" +
			"the blueprint is node 0; roots, dates, aliases and completion\n" +
			"states are not allowed inside blueprints.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensureConfig(); err != nil {
				return err
			}
			name := args[0]
			d, path, err := app.loadBlueprintPreferFile(name)
			if err != nil {
				return err
			}
			bg, err := blueprint.BuildGraph(d)
			if err != nil {
				return err
			}

			inner := &App{
				ConfigPath: app.ConfigPath,
				NoColor:    app.NoColor,
				cfg:        app.cfg,
				bpName:     name,
				load: func(a *App) error {
					a.g = bg
					return nil
				},
				commit: func(a *App, _ *cobra.Command, _ []string) error {
					if !a.dirty {
						return nil
					}
					nd, err := blueprint.Extract(a.g, 0, d.Name, d.Author)
					if err != nil {
						return err
					}
					return blueprint.WriteFile(path, nd)
				},
			}
			sub := newRootCmdWithApp(inner)
			sub.SetArgs(args[1:])
			sub.SetOut(cmd.OutOrStdout())
			sub.SetErr(cmd.ErrOrStderr())
			// The outer command reports the failure; without this the
			// inner root prints it a second time.
			sub.SilenceErrors = true
			return sub.Execute()
		},
	}
	// Everything after the name belongs to the inner command, flags
	// included.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
