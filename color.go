package pixart

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrInvalidColor is returned when a hex color string cannot be parsed.
var ErrInvalidColor = errors.New("pixart: invalid hex color")

// Color is an 8-bit straight (non-premultiplied) RGBA color, the unit stored
// in every pixel buffer.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex returns the color as "#RRGGBB", or "#RRGGBBAA" when it is not opaque.
// Digits are uppercase.
func (c Color) Hex() string {
	if c.A < 255 {
		return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Opaque returns c with alpha forced to 255.
func (c Color) Opaque() Color {
	c.A = 255
	return c
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// FromColor converts a standard color.Color to Color, undoing the
// premultiplication that color.Color.RGBA applies.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseHex parses a hex color string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", each with an
// optional leading '#'.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")

	var v [4]uint8
	v[3] = 255

	switch len(hex) {
	case 3, 4: // RGB, RGBA
		for i := 0; i < len(hex); i++ {
			d, ok := hexDigit(hex[i])
			if !ok {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			v[i] = d * 17
		}
	case 6, 8: // RRGGBB, RRGGBBAA
		for i := 0; i < len(hex); i += 2 {
			hi, ok1 := hexDigit(hex[i])
			lo, ok2 := hexDigit(hex[i+1])
			if !ok1 || !ok2 {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			v[i/2] = hi<<4 | lo
		}
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	return Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

// Hex creates a color from a hex string. Malformed input yields opaque
// black; use ParseHex when the error matters.
func Hex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		return Black
	}
	return c
}

// hexDigit decodes a single hex digit.
func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Common colors
var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Red         = Color{255, 0, 0, 255}
	Green       = Color{0, 255, 0, 255}
	Blue        = Color{0, 0, 255, 255}
	Yellow      = Color{255, 255, 0, 255}
	Cyan        = Color{0, 255, 255, 255}
	Magenta     = Color{255, 0, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// DefaultPalette returns the palette a new document starts with.
func DefaultPalette() []Color {
	return []Color{
		Black, White, Red, Green, Blue,
		Yellow, Magenta, Cyan,
		{128, 128, 128, 255}, {192, 192, 192, 255},
	}
}
