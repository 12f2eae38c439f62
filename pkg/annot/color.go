package annot

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is one of the fixed semantic highlight colors.
type Color int

const (
	ColorYellow Color = iota
	ColorGreen
	ColorBlue
	ColorRed
)

// palette maps each semantic color to its canonical RGB triple, used when
// writing annotations back to the document.
var palette = map[Color]colorful.Color{
	ColorYellow: {R: 1.0, G: 1.0, B: 0.0},
	ColorGreen:  {R: 0.0, G: 1.0, B: 0.0},
	ColorBlue:   {R: 0.0, G: 0.5, B: 1.0},
	ColorRed:    {R: 1.0, G: 0.0, B: 0.0},
}

// Classify maps a sampled annotation color to a semantic color. The input
// is whatever channel list the annotation carries (0-4 components in
// [0,1]); with fewer than three channels there is no RGB information and
// yellow is the safe default. The rules are ordered and total: every input
// classifies to exactly one color.
func Classify(components []float64) Color {
	if len(components) < 3 {
		return ColorYellow
	}

	r, g, b := components[0], components[1], components[2]

	if r > 0.7 && g > 0.7 && b < 0.5 {
		return ColorYellow
	}
	if g > 0.6 && g > r && g > b {
		return ColorGreen
	}
	if b > 0.5 && b > r {
		return ColorBlue
	}
	if r > 0.6 && r > g && r > b {
		return ColorRed
	}

	return ColorYellow
}

// RGB returns the canonical RGB triple for the color.
func (c Color) RGB() colorful.Color {
	rgb, ok := palette[c]
	if !ok {
		return palette[ColorYellow]
	}
	return rgb
}

// Hex returns the canonical color as "#rrggbb".
func (c Color) Hex() string {
	return c.RGB().Hex()
}

func (c Color) String() string {
	switch c {
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorRed:
		return "red"
	default:
		return "yellow"
	}
}

// MarshalText encodes the color by name.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a color name.
func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "yellow":
		*c = ColorYellow
	case "green":
		*c = ColorGreen
	case "blue":
		*c = ColorBlue
	case "red":
		*c = ColorRed
	default:
		return fmt.Errorf("unknown highlight color %q", text)
	}
	return nil
}
