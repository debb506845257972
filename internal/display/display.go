// Package display renders graph listings, stats, and the calendar for
// the CLI. All output is written through a Renderer so commands can be
// tested against a buffer.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"knot-cli/internal/config"
	"knot-cli/internal/graph"
)

// Renderer prints graph output styled per the user's config.
type Renderer struct {
	out io.Writer
	cfg *config.Config

	idStyle lipgloss.Style
	badges  map[string]lipgloss.Style
	arm     lipgloss.Style
	bar     lipgloss.Style
}

func New(out io.Writer, cfg *config.Config) *Renderer {
	ic := cfg.Display.Icons
	return &Renderer{
		out:     out,
		cfg:     cfg,
		idStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		badges: map[string]lipgloss.Style{
			"none":    lipgloss.NewStyle().Foreground(lipgloss.Color(ic.NodeNone.Color)),
			"checked": lipgloss.NewStyle().Foreground(lipgloss.Color(ic.NodeChecked.Color)),
			"partial": lipgloss.NewStyle().Foreground(lipgloss.Color(ic.NodePartial.Color)),
			"pseudo":  lipgloss.NewStyle().Foreground(lipgloss.Color(ic.NodePseudo.Color)),
			"date":    lipgloss.NewStyle().Foreground(lipgloss.Color(ic.NodeDate.Color)),
		},
		arm: lipgloss.NewStyle().Foreground(lipgloss.Color(ic.Arm.Color)),
		bar: lipgloss.NewStyle().Foreground(lipgloss.Color(ic.Bar.Color)),
	}
}

// ApplyColorProfile configures lipgloss for CLI output. NO_COLOR and
// the --no-color flag force plain text; otherwise the terminal's
// capabilities decide.
func ApplyColorProfile(noColor bool) {
	if noColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

// badge picks the state icon for a node.
func (r *Renderer) badge(n *graph.Node) string {
	ic := r.cfg.Display.Icons
	switch n.Kind {
	case graph.KindDate:
		return r.badges["date"].Render(ic.NodeDate.Value)
	case graph.KindPseudo:
		return r.badges["pseudo"].Render(ic.NodePseudo.Value)
	}
	switch n.State {
	case graph.StateDone:
		return r.badges["checked"].Render(ic.NodeChecked.Value)
	case graph.StatePartial:
		return r.badges["partial"].Render(ic.NodePartial.Value)
	}
	return r.badges["none"].Render(ic.NodeNone.Value)
}

// ID renders a node handle as "(3)", or "(3:alias)" when aliased.
func (r *Renderer) ID(handle int, alias string) string {
	if alias != "" {
		return r.idStyle.Render(fmt.Sprintf("(%d:%s)", handle, alias))
	}
	return r.idStyle.Render(fmt.Sprintf("(%d)", handle))
}

// NodeLine renders one node as badge, text, and handle. Untitled date
// nodes show their date instead, reformatted per the configured date
// format.
func (r *Renderer) NodeLine(n *graph.Node) string {
	text := n.Title
	if n.Kind == graph.KindDate && text == "" {
		text = r.FormatDate(n.Date)
	}
	return fmt.Sprintf("%s %s %s", r.badge(n), text, r.ID(n.Meta.Index, n.Meta.Alias))
}

// FormatDate reformats a canonical YYYY-MM-DD key per the configured
// layout, passing unparseable values through untouched.
func (r *Renderer) FormatDate(key string) string {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return t.Format(r.cfg.Display.DateFormat)
}

// Linked prints a new parent-child connection.
func (r *Renderer) Linked(parent, child int) {
	fmt.Fprintf(r.out, "%s -> %s\n", r.ID(parent, ""), r.ID(child, ""))
}

// Unlinked prints a severed parent-child connection.
func (r *Renderer) Unlinked(parent, child int) {
	fmt.Fprintf(r.out, "%s -x- %s\n", r.ID(parent, ""), r.ID(child, ""))
}

// LinkedRoot prints the connection message for a new root node.
func (r *Renderer) LinkedRoot(handle int) {
	fmt.Fprintf(r.out, "%s -> (root)\n", r.ID(handle, ""))
}

// LinkedDates prints the connection message for a new date node.
func (r *Renderer) LinkedDates(handle int) {
	fmt.Fprintf(r.out, "%s -> (dates)\n", r.ID(handle, ""))
}

// Removed prints a removal notice.
func (r *Renderer) Removed(handle int, recursive bool) {
	if recursive {
		fmt.Fprintf(r.out, "%s -x- (all)\n", r.ID(handle, ""))
		return
	}
	fmt.Fprintf(r.out, "%s -x- (parents)\n", r.ID(handle, ""))
}
