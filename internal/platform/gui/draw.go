package gui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/couch-arcade/internal/core"
)

// Debug font cell size used by ebitenutil.DebugPrintAt.
const (
	charW = 6
	charH = 16
)

var background = color.RGBA{R: 12, G: 12, B: 20, A: 255}

var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       {R: 200, G: 200, B: 200, A: 255},
	core.ColorRed:           {R: 170, G: 30, B: 30, A: 255},
	core.ColorGreen:         {R: 30, G: 160, B: 60, A: 255},
	core.ColorYellow:        {R: 190, G: 170, B: 40, A: 255},
	core.ColorBlue:          {R: 40, G: 70, B: 190, A: 255},
	core.ColorMagenta:       {R: 170, G: 50, B: 170, A: 255},
	core.ColorCyan:          {R: 40, G: 170, B: 180, A: 255},
	core.ColorWhite:         {R: 220, G: 220, B: 220, A: 255},
	core.ColorBrightRed:     {R: 255, G: 85, B: 85, A: 255},
	core.ColorBrightGreen:   {R: 85, G: 255, B: 85, A: 255},
	core.ColorBrightYellow:  {R: 255, G: 255, B: 85, A: 255},
	core.ColorBrightBlue:    {R: 85, G: 140, B: 255, A: 255},
	core.ColorBrightMagenta: {R: 255, G: 85, B: 255, A: 255},
	core.ColorBrightCyan:    {R: 85, G: 255, B: 255, A: 255},
	core.ColorBrightWhite:   {R: 255, G: 255, B: 255, A: 255},
	core.ColorOrange:        {R: 255, G: 140, B: 0, A: 255},
	core.ColorGray:          {R: 120, G: 120, B: 130, A: 255},
}

// rgba returns the window color for a snapshot color.
func rgba(c core.Color) color.RGBA {
	if col, ok := palette[c]; ok {
		return col
	}
	return palette[core.ColorDefault]
}

// drawSnapshot paints one frame. World units map one to one onto window
// pixels, offset by the snapshot camera.
func drawSnapshot(screen *ebiten.Image, snap *core.Snapshot) {
	screen.Fill(background)
	cam := snap.Camera

	for _, l := range snap.Lines {
		a, b := l.A.Sub(cam), l.B.Sub(cam)
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, rgba(l.Color), true)
	}
	for _, b := range snap.Bodies {
		drawBody(screen, b, b.Pos.Sub(cam))
	}
	for i, h := range snap.HUD {
		ebitenutil.DebugPrintAt(screen, h, charW, i*charH)
	}
	if snap.Overlay != nil {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		drawOverlay(screen, snap.Overlay, w, h)
	}
}

func drawBody(screen *ebiten.Image, b core.BodyView, p core.Vec2) {
	col := rgba(b.Color)
	switch {
	case b.Shape == core.ShapeCircle:
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(b.Radius), col, true)
	case b.Angle != 0:
		// A butt-capped stroke along the heading is the rotated rectangle.
		half := core.FromAngle(b.Angle).Scale(b.W / 2)
		a, z := p.Sub(half), p.Add(half)
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(z.X), float32(z.Y), float32(b.H), col, true)
	default:
		vector.DrawFilledRect(screen, float32(p.X-b.W/2), float32(p.Y-b.H/2), float32(b.W), float32(b.H), col, false)
	}
}

// overlayBox returns the panel rectangle for lines of text centered on a
// w by h window.
func overlayBox(lines []string, w, h int) core.Rect {
	cols := 0
	for _, l := range lines {
		cols = max(cols, len([]rune(l)))
	}
	bw := cols*charW + 4*charW
	bh := len(lines)*charH + charH
	return core.NewRect((w-bw)/2, (h-bh)/2, bw, bh)
}

// drawOverlay draws a dimmed panel with the overlay text. The border
// brightens with the countdown pulse.
func drawOverlay(screen *ebiten.Image, ov *core.Overlay, w, h int) {
	lines := ov.Lines()
	box := overlayBox(lines, w, h)

	vector.DrawFilledRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), color.RGBA{A: 200}, false)
	border := rgba(core.ColorGray)
	if ov.Pulse > 0 {
		border = lerp(border, rgba(core.ColorBrightYellow), ov.Pulse)
	}
	vector.StrokeRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), 2, border, false)

	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l))*charW)/2
		ebitenutil.DebugPrintAt(screen, l, x, box.Y+charH/2+i*charH)
	}
}

// lerp blends a toward b by t in [0, 1].
func lerp(a, b color.RGBA, t float64) color.RGBA {
	t = core.ClampF(t, 0, 1)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
