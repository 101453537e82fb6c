package core

import "fmt"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
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

// BallColor is a player-selectable ball color.
type BallColor string

// Selectable ball colors, in picker order.
const (
	BallRed    BallColor = "red"
	BallGreen  BallColor = "green"
	BallBlue   BallColor = "blue"
	BallYellow BallColor = "yellow"
	BallPink   BallColor = "pink"
)

// BallColors lists the colors offered on the start screen.
var BallColors = []BallColor{BallRed, BallGreen, BallBlue, BallYellow, BallPink}

// DefaultBallColor is preselected on the start screen.
const DefaultBallColor = BallYellow

// Cell returns the screen color used to draw a ball of this color.
func (b BallColor) Cell() Color {
	switch b {
	case BallRed:
		return ColorBrightRed
	case BallGreen:
		return ColorBrightGreen
	case BallBlue:
		return ColorBrightBlue
	case BallPink:
		return ColorBrightMagenta
	default:
		return ColorBrightYellow
	}
}

// ParseBallColor validates a color name.
func ParseBallColor(name string) (BallColor, error) {
	for _, c := range BallColors {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown ball color %q", name)
}

// NextBallColor returns the color step positions away from b in picker order,
// wrapping around at both ends.
func NextBallColor(b BallColor, step int) BallColor {
	idx := 0
	for i, c := range BallColors {
		if c == b {
			idx = i
			break
		}
	}
	n := len(BallColors)
	return BallColors[((idx+step)%n+n)%n]
}
