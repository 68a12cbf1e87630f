package core

// Color represents a foreground color for a screen cell.
// The platform maps it to an ANSI 256-color code.
type Color uint8

// Colors used by the arena and HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorGray
)
