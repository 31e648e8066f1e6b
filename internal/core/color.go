package core

// Color is a palette index shared by every front-end.
// The terminal maps it to ANSI 256 colors, the window maps it to RGBA.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// PlayerColor returns the signature color of a local actor.
func PlayerColor(id PlayerID) Color {
	if id == Player2 {
		return ColorBrightBlue
	}
	return ColorBrightRed
}
