package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"knot-cli/internal/graph"
)

const calWidth = 21 // seven 3-char day cells

// Calendar prints one month with date nodes shaded by how many items
// hang off them. Only ref's year and month matter; ref's day is shown
// highlighted when the month is the current one.
func (r *Renderer) Calendar(g *graph.Graph, ref time.Time) {
	year, month := ref.Year(), ref.Month()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysIn := first.AddDate(0, 1, -1).Day()

	title := fmt.Sprintf("%s %d", month, year)
	pad := (calWidth - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(r.out, "%s%s\n", strings.Repeat(" ", pad), title)
	fmt.Fprintln(r.out, "Su Mo Tu We Th Fr Sa")

	palette := r.cfg.Display.Calendar.HeatmapPalette
	today := time.Now()

	col := int(first.Weekday())
	var row strings.Builder
	row.WriteString(strings.Repeat("   ", col))
	for day := 1; day <= daysIn; day++ {
		cell := fmt.Sprintf("%2d", day)

		key := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		if h, ok := g.Dates[key]; ok && g.Live(h) {
			if n := heat(g, h); n > 0 && len(palette) > 0 {
				bucket := n - 1
				if bucket >= len(palette) {
					bucket = len(palette) - 1
				}
				cell = lipgloss.NewStyle().Foreground(lipgloss.Color(palette[bucket])).Render(cell)
			}
		}
		if year == today.Year() && month == today.Month() && day == today.Day() {
			cell = lipgloss.NewStyle().Reverse(true).Render(cell)
		}

		row.WriteString(cell)
		if col == 6 {
			fmt.Fprintln(r.out, strings.TrimRight(row.String(), " "))
			row.Reset()
			col = 0
		} else {
			row.WriteString(" ")
			col++
		}
	}
	if row.Len() > 0 {
		fmt.Fprintln(r.out, strings.TrimRight(row.String(), " "))
	}
}

// heat counts the live items hanging off a date node.
func heat(g *graph.Graph, handle int) int {
	n := 0
	for _, c := range g.Nodes[handle].Meta.Children {
		if g.Live(c) {
			n++
		}
	}
	return n
}
