// Package config reads the user's knot configuration file. Every value
// has a baked-in default; a config file only has to name what it
// changes.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the per-user config file under the home directory.
const FileName = ".knotconf.yaml"

type Config struct {
	Graph      GraphConfig      `yaml:"graph"`
	Display    DisplayConfig    `yaml:"display"`
	Blueprints BlueprintsConfig `yaml:"blueprints"`
}

type GraphConfig struct {
	// AutoClean compacts the graph after every mutating command, which
	// keeps handles small at the cost of renumbering them.
	AutoClean bool `yaml:"auto_clean"`
}

type DisplayConfig struct {
	DateFormat      string         `yaml:"date_format"`
	ShowConnections bool           `yaml:"show_connections"`
	BarIndent       bool           `yaml:"bar_indent"`
	Icons           IconsConfig    `yaml:"icons"`
	Calendar        CalendarConfig `yaml:"calendar"`
}

// Icon pairs a glyph with the color it prints in. Colors are lipgloss
// color strings: an ANSI palette number or a #RRGGBB hex value.
type Icon struct {
	Value string `yaml:"icon"`
	Color string `yaml:"color"`
}

type IconsConfig struct {
	Arm                Icon `yaml:"arm"`
	ArmLast            Icon `yaml:"arm_last"`
	ArmMultiparent     Icon `yaml:"arm_multiparent"`
	ArmMultiparentLast Icon `yaml:"arm_multiparent_last"`
	Bar                Icon `yaml:"arm_bar"`

	NodeNone    Icon `yaml:"node_none"`
	NodeChecked Icon `yaml:"node_checked"`
	NodePartial Icon `yaml:"node_partial"`
	NodePseudo  Icon `yaml:"node_pseudo"`
	NodeDate    Icon `yaml:"node_date"`
}

type CalendarConfig struct {
	// HeatmapPalette colors calendar days by how many tasks sit on
	// them, coolest to hottest.
	HeatmapPalette []string `yaml:"heatmap_palette"`
}

type BlueprintsConfig struct {
	Dir string `yaml:"store_path"`
}

// Default returns the full baked-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Graph: GraphConfig{AutoClean: false},
		Display: DisplayConfig{
			DateFormat:      "2006-01-02",
			ShowConnections: true,
			BarIndent:       false,
			Icons: IconsConfig{
				Arm:                Icon{Value: "+--", Color: "15"},
				ArmLast:            Icon{Value: "+--", Color: "15"},
				ArmMultiparent:     Icon{Value: "+..", Color: "15"},
				ArmMultiparentLast: Icon{Value: "+..", Color: "15"},
				Bar:                Icon{Value: "|", Color: "15"},

				NodeNone:    Icon{Value: "[ ]", Color: "6"},
				NodeChecked: Icon{Value: "[x]", Color: "2"},
				NodePartial: Icon{Value: "[~]", Color: "208"},
				NodePseudo:  Icon{Value: "[*]", Color: "3"},
				NodeDate:    Icon{Value: "[#]", Color: "129"},
			},
			Calendar: CalendarConfig{
				HeatmapPalette: []string{"#5A7EDE", "#785EF0", "#DC267F", "#FE6100", "#E0A729"},
			},
		},
		Blueprints: BlueprintsConfig{Dir: filepath.Join(home, ".knot-blueprints")},
	}
}

// Path is the config file a run will read: the KNOT_CONFIG override if
// set, the home-directory file otherwise.
func Path() (string, error) {
	if v := strings.TrimSpace(os.Getenv("KNOT_CONFIG")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, FileName), nil
}

// Load reads the config at path, or the default location when path is
// empty. A missing file and any keys the file does not set fall back
// to defaults; values of the wrong type do too, rather than failing
// the whole run.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return Default(), nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		var te *yaml.TypeError
		if !errors.As(err, &te) {
			return nil, err
		}
	}
	if len(cfg.Display.Calendar.HeatmapPalette) == 0 {
		cfg.Display.Calendar.HeatmapPalette = Default().Display.Calendar.HeatmapPalette
	}
	if cfg.Blueprints.Dir == "" {
		cfg.Blueprints.Dir = Default().Blueprints.Dir
	}
	return cfg, nil
}

// DefaultTemplate is what new-cfg writes: the defaults spelled out so
// they can be edited in place.
const DefaultTemplate = `# knot configuration

graph:
  # compact the graph after every mutating command
  auto_clean: false

display:
  date_format: "2006-01-02"
  show_connections: true
  bar_indent: false
  icons:
    arm: {icon: "+--", color: "15"}
    arm_last: {icon: "+--", color: "15"}
    arm_multiparent: {icon: "+..", color: "15"}
    arm_multiparent_last: {icon: "+..", color: "15"}
    arm_bar: {icon: "|", color: "15"}
    node_none: {icon: "[ ]", color: "6"}
    node_checked: {icon: "[x]", color: "2"}
    node_partial: {icon: "[~]", color: "208"}
    node_pseudo: {icon: "[*]", color: "3"}
    node_date: {icon: "[#]", color: "129"}
  calendar:
    heatmap_palette: ["#5A7EDE", "#785EF0", "#DC267F", "#FE6100", "#E0A729"]

blueprints:
  # store_path: /path/to/blueprints
`

// WriteDefault writes the default template to path, refusing to
// replace an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists at " + path)
		}
	}
	return os.WriteFile(path, []byte(DefaultTemplate), 0o644)
}
