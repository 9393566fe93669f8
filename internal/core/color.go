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
	ColorDarkGray
)

// colorNames is used by ParseColor for theme files.
var colorNames = map[string]Color{
	"default":        ColorDefault,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright_red":     ColorBrightRed,
	"bright_green":   ColorBrightGreen,
	"bright_yellow":  ColorBrightYellow,
	"bright_blue":    ColorBrightBlue,
	"bright_magenta": ColorBrightMagenta,
	"bright_cyan":    ColorBrightCyan,
	"bright_white":   ColorBrightWhite,
	"orange":         ColorOrange,
	"gray":           ColorGray,
	"dark_gray":      ColorDarkGray,
}

// ParseColor maps a color name to a Color.
func ParseColor(name string) (Color, bool) {
	c, ok := colorNames[name]
	return c, ok
}

// RGB is a 24-bit true color packed as 0xRRGGBB.
type RGB uint32

// Components splits the color into its channels.
func (c RGB) Components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c) //#nosec G115 -- masked by truncation
}

// Hex returns the color in #rrggbb notation.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// LerpRGB interpolates each channel linearly from a to b.
// t is clamped to [0, 1].
func LerpRGB(a, b RGB, t float64) RGB {
	t = ClampF(t, 0, 1)
	ar, ag, ab := a.Components()
	br, bg, bb := b.Components()

	mix := func(x, y uint8) uint32 {
		return uint32(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return RGB(mix(ar, br)<<16 | mix(ag, bg)<<8 | mix(ab, bb))
}
