package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ballflaps/internal/core"
)

// ansiCodes maps core.Color to terminal color codes. Bright colors are
// also drawn bold so they stay distinct on 8-color terminals.
var ansiCodes = [...]struct {
	code string
	bold bool
}{
	core.ColorDefault:       {},
	core.ColorRed:           {code: "1"},
	core.ColorGreen:         {code: "2"},
	core.ColorYellow:        {code: "3"},
	core.ColorBlue:          {code: "4"},
	core.ColorMagenta:       {code: "5"},
	core.ColorCyan:          {code: "6"},
	core.ColorWhite:         {code: "7"},
	core.ColorBrightRed:     {code: "9", bold: true},
	core.ColorBrightGreen:   {code: "10", bold: true},
	core.ColorBrightYellow:  {code: "11", bold: true},
	core.ColorBrightBlue:    {code: "12", bold: true},
	core.ColorBrightMagenta: {code: "13", bold: true},
	core.ColorBrightCyan:    {code: "14", bold: true},
	core.ColorBrightWhite:   {code: "15", bold: true},
	core.ColorOrange:        {code: "208"},
	core.ColorGray:          {code: "245"},
}

// Palette turns screen buffers into styled strings for one output.
// SSH sessions each get their own, bound to the session's renderer, so the
// color profile matches the remote terminal rather than the server's.
type Palette struct {
	styles []lipgloss.Style
}

// NewPalette builds the styles for r. A nil renderer uses lipgloss's
// default renderer (local stdout).
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{styles: make([]lipgloss.Style, len(ansiCodes))}
	for i, a := range ansiCodes {
		st := r.NewStyle()
		if a.code != "" {
			st = st.Foreground(lipgloss.Color(a.code))
		}
		if a.bold {
			st = st.Bold(true)
		}
		p.styles[i] = st
	}
	return p
}

func (p *Palette) style(c core.Color) lipgloss.Style {
	if int(c) < len(p.styles) {
		return p.styles[c]
	}
	return p.styles[core.ColorDefault]
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

var localPalette = NewPalette(nil)

// RenderScreen renders s with the local terminal's palette.
func RenderScreen(s *core.Screen) string {
	return localPalette.Render(s)
}
