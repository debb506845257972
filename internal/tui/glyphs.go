package tui

import (
	"os"
	"strings"
)

// Terminal apps cannot change the user's font, only pick glyphs it is
// likely to have. KNOT_TUI_GLYPHS=ascii swaps the twisties for plain
// characters on fonts that render the triangles badly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

func glyphPreference() glyphSet {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("KNOT_TUI_GLYPHS")), "ascii") {
		return glyphSetASCII
	}
	return glyphSetUnicode
}

func (gs glyphSet) twistyCollapsed() string {
	if gs == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func (gs glyphSet) twistyExpanded() string {
	if gs == glyphSetASCII {
		return "v"
	}
	return "▾"
}
