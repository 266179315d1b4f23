package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/opdozitz/internal/core"
)

// ansi is the terminal color code of each core.Color.
var ansi = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Roles drawn bold so they read over the girders at one cell per glyph.
var boldRoles = map[core.Color]bool{
	core.ColorZit:      true,
	core.ColorHazard:   true,
	core.ColorSelected: true,
	core.ColorCursor:   true,
}

var palette = buildPalette()

func buildPalette() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(ansi))
	for i, code := range ansi {
		s := lipgloss.NewStyle()
		if code != "" {
			s = s.Foreground(lipgloss.Color(code))
		}
		if boldRoles[core.Color(i)] {
			s = s.Bold(true)
		}
		styles[i] = s
	}
	return styles
}

// styleFor falls back to the default style for colors outside the palette.
func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// run is a stretch of one screen row drawn in a single color.
type run struct {
	color core.Color
	text  string
}

// rowRuns splits row y into maximal same-color runs. Zero runes pad the
// second cell of a double-width glyph and are dropped, so a run can hold
// fewer runes than the cells it covers.
func rowRuns(s *core.Screen, y int) []run {
	var (
		runs []run
		text strings.Builder
	)
	current := s.GetCell(0, y).Color
	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != current {
			runs = append(runs, run{color: current, text: text.String()})
			text.Reset()
			current = cell.Color
		}
		if cell.Rune != 0 {
			text.WriteRune(cell.Rune)
		}
	}
	if s.Width() > 0 {
		runs = append(runs, run{color: current, text: text.String()})
	}
	return runs
}

// RenderScreen turns the screen into exactly Height lines joined by '\n',
// with no trailing newline. Each color run gets one styled segment.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range rowRuns(s, y) {
			sb.WriteString(styleFor(r.color).Render(r.text))
		}
	}
	return sb.String()
}
