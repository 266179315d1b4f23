package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors.
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

// Roles the game renderer paints with.
const (
	ColorFrame     = ColorBlue
	ColorGirder    = ColorWhite
	ColorLocked    = ColorGray
	ColorHazard    = ColorBrightRed
	ColorBlock     = ColorRed
	ColorHome      = ColorBrightGreen
	ColorStart     = ColorCyan
	ColorZit       = ColorBrightYellow
	ColorExplosion = ColorOrange
	ColorSelected  = ColorBrightCyan
	ColorCursor    = ColorBrightMagenta
	ColorHUD       = ColorBrightWhite
)
