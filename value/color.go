package value

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is an opaque sRGB color.
type Color struct {
	rgba color.RGBA
}

// Kind is part of interface Value.
func (c Color) Kind() Kind { return KindColor }

// Match is part of interface Value.
func (c Color) Match() *Matcher { return &Matcher{v: c} }

// RGBA returns c as a standard library color.
func (c Color) RGBA() color.RGBA { return c.rgba }

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.rgba.R, c.rgba.G, c.rgba.B)
}

// RGB creates a color from three channel values in [0…255]. Channels out of
// range are clamped.
func RGB(r, g, b float64) Color {
	return Color{rgba: color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 0xff}}
}

func channel(x float64) uint8 {
	switch {
	case x <= 0:
		return 0
	case x >= 255:
		return 255
	}
	return uint8(roundHalfUp(x))
}

// ParseColor parses a color specification "#rgb" or "#rrggbb".
func ParseColor(spec string) (Color, error) {
	if !strings.HasPrefix(spec, "#") || (len(spec) != 4 && len(spec) != 7) {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
	}
	c, err := colorful.Hex(strings.ToLower(spec))
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
	}
	r, g, b := c.RGB255()
	return Color{rgba: color.RGBA{R: r, G: g, B: b, A: 0xff}}, nil
}

// NamedColor looks up a color keyword (CSS/SVG color names, case
// insensitive).
func NamedColor(name string) (Color, bool) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return Color{}, false
	}
	return Color{rgba: c}, true
}

// ColorName returns the keyword of c, if c has one.
func ColorName(c Color) (string, bool) {
	for _, name := range colornames.Names {
		if colornames.Map[name] == c.rgba {
			return name, true
		}
	}
	return "", false
}
