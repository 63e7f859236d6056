package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dos-defender/internal/core"
)

// Palette styles the screen colors used by the game sprites and HUD.
// Colors missing from a palette render unstyled.
type Palette map[core.Color]lipgloss.Style

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// DefaultPalette returns the ANSI palette: red hostiles, green ship and
// pickups, orange debris and enemy fire.
func DefaultPalette() Palette {
	return Palette{
		core.ColorRed:          fg("1").Bold(true),
		core.ColorGreen:        fg("2").Bold(true),
		core.ColorYellow:       fg("3"),
		core.ColorBlue:         fg("4"),
		core.ColorMagenta:      fg("5").Bold(true),
		core.ColorCyan:         fg("6"),
		core.ColorWhite:        fg("7"),
		core.ColorBrightGreen:  fg("10").Bold(true),
		core.ColorBrightYellow: fg("11"),
		core.ColorBrightCyan:   fg("14").Bold(true),
		core.ColorOrange:       fg("208"),
		core.ColorGray:         fg("245"),
	}
}

// MonochromePalette renders every cell unstyled.
func MonochromePalette() Palette {
	return Palette{}
}

func (p Palette) style(c core.Color) (lipgloss.Style, bool) {
	if c == core.ColorDefault {
		return lipgloss.Style{}, false
	}
	st, ok := p[c]
	return st, ok
}

// Render converts a screen to a string, styling each run of same-colored
// cells once.
func (p Palette) Render(s *core.Screen) string {
	var out, run strings.Builder
	out.Grow(s.Width()*s.Height()*2 + s.Height())

	flush := func(c core.Color) {
		if run.Len() == 0 {
			return
		}
		if st, ok := p.style(c); ok {
			out.WriteString(st.Render(run.String()))
		} else {
			out.WriteString(run.String())
		}
		run.Reset()
	}

	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}
		current := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current {
				flush(current)
				current = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		flush(current)
	}
	return out.String()
}

var defaultPalette = DefaultPalette()

// RenderScreen renders a screen with the default palette.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}
