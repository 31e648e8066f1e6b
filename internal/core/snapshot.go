package core

// ShapeKind tags how a snapshot body is drawn.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

// BodyView is a read-only drawable copy of a body.
type BodyView struct {
	Shape  ShapeKind
	Pos    Vec2 // Center in world units
	Radius float64
	W, H   float64
	Angle  float64
	Color  Color
	Glyph  rune
}

// LineView is a drawable segment in world units.
type LineView struct {
	A, B  Vec2
	Color Color
	Glyph rune
}

// Overlay is text composited over a frozen or live frame.
type Overlay struct {
	Title    string
	Subtitle string
	Options  []string
	Selected int
	// Pulse runs from 1 to 0 across each countdown step.
	Pulse float64
}

// Snapshot is everything a renderer needs for one frame.
// Renderers subtract Camera from world positions to get canvas positions.
type Snapshot struct {
	Extent  Extent
	Camera  Vec2
	Phase   string
	Bodies  []BodyView
	Lines   []LineView
	HUD     []string
	Overlay *Overlay
}

// Reset clears the snapshot while keeping allocated capacity.
func (s *Snapshot) Reset() {
	s.Camera = Vec2{}
	s.Phase = ""
	s.Bodies = s.Bodies[:0]
	s.Lines = s.Lines[:0]
	s.HUD = s.HUD[:0]
	s.Overlay = nil
}

// AddCircle appends a circle to the snapshot.
func (s *Snapshot) AddCircle(pos Vec2, r float64, c Color, glyph rune) {
	s.Bodies = append(s.Bodies, BodyView{Shape: ShapeCircle, Pos: pos, Radius: r, Color: c, Glyph: glyph})
}

// AddRect appends a rectangle centered on pos.
func (s *Snapshot) AddRect(pos Vec2, w, h float64, c Color, glyph rune) {
	s.Bodies = append(s.Bodies, BodyView{Shape: ShapeRect, Pos: pos, W: w, H: h, Color: c, Glyph: glyph})
}

// AddLine appends a segment.
func (s *Snapshot) AddLine(a, b Vec2, c Color, glyph rune) {
	s.Lines = append(s.Lines, LineView{A: a, B: b, Color: c, Glyph: glyph})
}

// Lines returns the overlay text top to bottom: title, subtitle, a blank
// separator before the options, and the options with the selected one
// marked "> ".
func (o *Overlay) Lines() []string {
	lines := []string{o.Title}
	if o.Subtitle != "" {
		lines = append(lines, o.Subtitle)
	}
	if len(o.Options) > 0 {
		lines = append(lines, "")
	}
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected {
			prefix = "> "
		}
		lines = append(lines, prefix+opt)
	}
	return lines
}
