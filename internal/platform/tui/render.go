package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/couch-arcade/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Rasterizer draws snapshots onto a cell screen. One cell covers UnitW by
// UnitH world units.
type Rasterizer struct {
	UnitW, UnitH float64
}

// Draw clears s and paints the snapshot: lines, bodies, HUD, then the
// overlay on top.
func (r Rasterizer) Draw(s *core.Screen, snap *core.Snapshot) {
	s.Clear()
	cam := snap.Camera
	for _, l := range snap.Lines {
		r.line(s, l.A.Sub(cam), l.B.Sub(cam), l.Glyph, l.Color)
	}
	for _, b := range snap.Bodies {
		pos := b.Pos.Sub(cam)
		switch b.Shape {
		case core.ShapeCircle:
			r.circle(s, pos, b.Radius, b.Glyph, b.Color)
		default:
			r.rect(s, pos, b.W, b.H, b.Glyph, b.Color)
		}
	}
	for i, h := range snap.HUD {
		s.DrawText(1, i, h, core.ColorBrightWhite)
	}
	if snap.Overlay != nil {
		drawOverlay(s, snap.Overlay)
	}
}

func (r Rasterizer) cell(p core.Vec2) (int, int) {
	return int(math.Floor(p.X / r.UnitW)), int(math.Floor(p.Y / r.UnitH))
}

// span returns the cells covered by [lo, hi), never fewer than one.
func span(lo, hi, unit float64) (int, int) {
	a := int(math.Floor(lo / unit))
	b := int(math.Ceil(hi/unit)) - 1
	return a, max(a, b)
}

func (r Rasterizer) rect(s *core.Screen, c core.Vec2, w, h float64, g rune, col core.Color) {
	x0, x1 := span(c.X-w/2, c.X+w/2, r.UnitW)
	y0, y1 := span(c.Y-h/2, c.Y+h/2, r.UnitH)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.SetColored(x, y, g, col)
		}
	}
}

// circle fills every cell whose center lies inside the circle, or the
// center cell when the circle is smaller than a cell.
func (r Rasterizer) circle(s *core.Screen, c core.Vec2, radius float64, g rune, col core.Color) {
	x0, x1 := span(c.X-radius, c.X+radius, r.UnitW)
	y0, y1 := span(c.Y-radius, c.Y+radius, r.UnitH)
	hit := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			mid := core.V((float64(x)+0.5)*r.UnitW, (float64(y)+0.5)*r.UnitH)
			if mid.Dist(c) <= radius {
				s.SetColored(x, y, g, col)
				hit = true
			}
		}
	}
	if !hit {
		x, y := r.cell(c)
		s.SetColored(x, y, g, col)
	}
}

func (r Rasterizer) line(s *core.Screen, a, b core.Vec2, g rune, col core.Color) {
	ax, ay := r.cell(a)
	bx, by := r.cell(b)
	n := max(abs(bx-ax), abs(by-ay))
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		x, y := r.cell(a.Add(b.Sub(a).Scale(t)))
		s.SetColored(x, y, g, col)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// drawOverlay centers a boxed panel with the overlay text.
func drawOverlay(s *core.Screen, ov *core.Overlay) {
	lines := ov.Lines()

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := core.NewRect((s.Width()-w-4)/2, (s.Height()-len(lines)-2)/2, w+4, len(lines)+2)
	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBox(box, core.ColorGray)

	titleColor := core.ColorBrightYellow
	if ov.Pulse > 0.5 {
		titleColor = core.ColorBrightWhite
	}
	for i, l := range lines {
		c := core.ColorWhite
		switch {
		case i == 0:
			c = titleColor
		case len(ov.Options) > 0 && i == len(lines)-len(ov.Options)+ov.Selected:
			c = core.ColorBrightCyan
		}
		x := box.X + 2 + (w-len([]rune(l)))/2
		s.DrawText(x, box.Y+1+i, l, c)
	}
}
