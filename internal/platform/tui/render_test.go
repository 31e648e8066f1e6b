package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/couch-arcade/internal/core"
)

func TestRasterizerBodies(t *testing.T) {
	r := Rasterizer{UnitW: 8, UnitH: 16}
	tests := []struct {
		name   string
		snap   core.Snapshot
		filled [][2]int
		glyph  rune
	}{
		{
			name:   "rect spans covered cells",
			snap:   core.Snapshot{Bodies: []core.BodyView{{Shape: core.ShapeRect, Pos: core.V(20, 24), W: 16, H: 16, Glyph: '#'}}},
			filled: [][2]int{{1, 1}, {2, 1}, {3, 1}},
			glyph:  '#',
		},
		{
			name:   "camera offsets bodies",
			snap:   core.Snapshot{Camera: core.V(8, 16), Bodies: []core.BodyView{{Shape: core.ShapeRect, Pos: core.V(28, 40), W: 16, H: 16, Glyph: '#'}}},
			filled: [][2]int{{1, 1}, {2, 1}, {3, 1}},
			glyph:  '#',
		},
		{
			name:   "circle fills cells whose center is inside",
			snap:   core.Snapshot{Bodies: []core.BodyView{{Shape: core.ShapeCircle, Pos: core.V(44, 40), Radius: 2, Glyph: 'o'}}},
			filled: [][2]int{{5, 2}},
			glyph:  'o',
		},
		{
			name:   "tiny circle falls back to its cell",
			snap:   core.Snapshot{Bodies: []core.BodyView{{Shape: core.ShapeCircle, Pos: core.V(41, 33), Radius: 1, Glyph: 'o'}}},
			filled: [][2]int{{5, 2}},
			glyph:  'o',
		},
		{
			name:   "line walks between endpoints",
			snap:   core.Snapshot{Lines: []core.LineView{{A: core.V(4, 72), B: core.V(36, 72), Glyph: '='}}},
			filled: [][2]int{{0, 4}, {1, 4}, {2, 4}, {3, 4}, {4, 4}},
			glyph:  '=',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := core.NewScreen(10, 6)
			r.Draw(s, &tt.snap)

			want := make(map[[2]int]bool)
			for _, c := range tt.filled {
				want[c] = true
			}
			for y := range s.Height() {
				for x := range s.Width() {
					got := s.Get(x, y) == tt.glyph
					if got != want[[2]int{x, y}] {
						t.Errorf("cell (%d,%d) filled = %v, expected %v\n%s", x, y, got, want[[2]int{x, y}], s.String())
					}
				}
			}
		})
	}
}

func TestRasterizerClearsPreviousFrame(t *testing.T) {
	r := Rasterizer{UnitW: 8, UnitH: 16}
	s := core.NewScreen(10, 6)
	r.Draw(s, &core.Snapshot{Bodies: []core.BodyView{{Shape: core.ShapeRect, Pos: core.V(4, 8), W: 8, H: 16, Glyph: '#'}}})
	r.Draw(s, &core.Snapshot{})
	if strings.ContainsRune(s.String(), '#') {
		t.Errorf("Draw() left a stale body:\n%s", s.String())
	}
}

func TestRasterizerHUDAndOverlay(t *testing.T) {
	r := Rasterizer{UnitW: 8, UnitH: 16}
	s := core.NewScreen(40, 12)
	snap := &core.Snapshot{
		HUD: []string{"P1 3  P2 1"},
		Overlay: &core.Overlay{
			Title:    "PAUSED",
			Options:  []string{"Resume", "Quit"},
			Selected: 1,
		},
	}
	r.Draw(s, snap)

	if !strings.HasPrefix(s.Row(0), " P1 3  P2 1") {
		t.Errorf("Row(0) = %q, expected the HUD", s.Row(0))
	}
	out := s.String()
	for _, want := range []string{"PAUSED", "  Resume", "> Quit", "┌", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("overlay missing %q:\n%s", want, out)
		}
	}

	for y := range s.Height() {
		row := s.Row(y)
		if i := strings.Index(row, "> Quit"); i >= 0 {
			x := len([]rune(row[:i]))
			if c := s.GetCell(x, y).Color; c != core.ColorBrightCyan {
				t.Errorf("selected option color = %v, expected %v", c, core.ColorBrightCyan)
			}
		}
	}
}

func TestOverlayPulse(t *testing.T) {
	r := Rasterizer{UnitW: 8, UnitH: 16}
	titleColor := func(pulse float64) core.Color {
		s := core.NewScreen(30, 9)
		r.Draw(s, &core.Snapshot{Overlay: &core.Overlay{Title: "3", Pulse: pulse}})
		for y := range s.Height() {
			for x := range s.Width() {
				if s.Get(x, y) == '3' {
					return s.GetCell(x, y).Color
				}
			}
		}
		t.Fatal("countdown digit not drawn")
		return core.ColorDefault
	}

	if a, b := titleColor(0.9), titleColor(0.2); a == b {
		t.Errorf("title color did not pulse: %v at both ends", a)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(0, 1, "cd", core.ColorDefault)

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() rows = %d, expected 2", strings.Count(out, "\n")+1)
	}
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q: %q", want, out)
		}
	}
}
