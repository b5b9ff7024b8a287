package functions

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is the internal RGBA color-math engine the builtins operate on:
// R/G/B range 0-255, A ranges 0-1. Builtins convert to/from *tree.Color
// at the boundary so the arithmetic below stays free of AST concerns.
type Color struct {
	R, G, B, A float64
}

// ParseHex parses a hex color string (#fff, #ffff, #ffffff, #ffffffff).
func ParseHex(hex string) (*Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b, a float64
	a = 1.0

	switch len(hex) {
	case 3:
		r = parseHexDigit(hex[0:1]) * 17
		g = parseHexDigit(hex[1:2]) * 17
		b = parseHexDigit(hex[2:3]) * 17
	case 4:
		r = parseHexDigit(hex[0:1]) * 17
		g = parseHexDigit(hex[1:2]) * 17
		b = parseHexDigit(hex[2:3]) * 17
		a = parseHexDigit(hex[3:4]) / 15.0
	case 6:
		r = parseHexByte(hex[0:2])
		g = parseHexByte(hex[2:4])
		b = parseHexByte(hex[4:6])
	case 8:
		r = parseHexByte(hex[0:2])
		g = parseHexByte(hex[2:4])
		b = parseHexByte(hex[4:6])
		a = parseHexByte(hex[6:8]) / 255.0
	default:
		return nil, fmt.Errorf("invalid hex color: #%s", hex)
	}

	return &Color{r, g, b, a}, nil
}

func parseHexDigit(h string) float64 {
	n, _ := strconv.ParseInt(h, 16, 64)
	return float64(n)
}

func parseHexByte(h string) float64 {
	n, _ := strconv.ParseInt(h, 16, 64)
	return float64(n)
}

// namedColors maps CSS color keywords to hex so color() and IsColor can
// recognize a bare keyword argument.
var namedColors = map[string]string{
	"transparent": "#00000000",
	"black": "#000000", "white": "#ffffff", "red": "#ff0000", "green": "#008000",
	"blue": "#0000ff", "yellow": "#ffff00", "orange": "#ffa500", "purple": "#800080",
	"pink": "#ffc0cb", "cyan": "#00ffff", "magenta": "#ff00ff", "gray": "#808080",
	"grey": "#808080", "silver": "#c0c0c0", "gold": "#ffd700", "maroon": "#800000",
	"navy": "#000080", "teal": "#008080", "olive": "#808000", "lime": "#00ff00",
	"brown": "#a52a2a", "indigo": "#4b0082", "violet": "#ee82ee", "coral": "#ff7f50",
	"salmon": "#fa8072", "khaki": "#f0e68c", "tan": "#d2b48c", "beige": "#f5f5dc",
	"ivory": "#fffff0", "chocolate": "#d2691e", "crimson": "#dc143c",
}

// LookupNamedColor resolves a bare CSS color keyword, if it is one.
func LookupNamedColor(name string) (*Color, bool) {
	hex, ok := namedColors[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	c, err := ParseHex(hex)
	if err != nil {
		return nil, false
	}
	return c, true
}

// ToHex renders the color as #rrggbb or #rrggbbaa.
func (c *Color) ToHex() string {
	r := uint8(math.Round(clamp(c.R, 0, 255)))
	g := uint8(math.Round(clamp(c.G, 0, 255)))
	b := uint8(math.Round(clamp(c.B, 0, 255)))
	if c.A < 1.0 {
		a := uint8(math.Round(c.A * 255))
		return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Lighten lightens a color by a 0-1 amount, in HSL space.
func (c *Color) Lighten(amount float64) *Color {
	h, s, l := c.ToHSL()
	l = math.Min(1.0, l+amount)
	return HSLToColor(h, s, l, c.A)
}

// Darken darkens a color by a 0-1 amount, in HSL space.
func (c *Color) Darken(amount float64) *Color {
	h, s, l := c.ToHSL()
	l = math.Max(0.0, l-amount)
	return HSLToColor(h, s, l, c.A)
}

// Saturate increases saturation by a 0-1 amount.
func (c *Color) Saturate(amount float64) *Color {
	h, s, l := c.ToHSL()
	s = math.Min(1.0, s+amount)
	return HSLToColor(h, s, l, c.A)
}

// Desaturate decreases saturation by a 0-1 amount.
func (c *Color) Desaturate(amount float64) *Color {
	h, s, l := c.ToHSL()
	s = math.Max(0.0, s-amount)
	return HSLToColor(h, s, l, c.A)
}

// Spin rotates the hue by the given number of degrees, wrapping at 360.
func (c *Color) Spin(degrees float64) *Color {
	h, s, l := c.ToHSL()
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	return HSLToColor(h, s, l, c.A)
}

// Mix blends two colors by weight (0 = all c, 1 = all other).
func (c *Color) Mix(other *Color, weight float64) *Color {
	weight = clamp(weight, 0, 1)
	return &Color{
		R: c.R*(1-weight) + other.R*weight,
		G: c.G*(1-weight) + other.G*weight,
		B: c.B*(1-weight) + other.B*weight,
		A: c.A*(1-weight) + other.A*weight,
	}
}

// ToHSL converts RGB (0-255) to HSL (h in degrees, s/l in 0-1).
func (c *Color) ToHSL() (h, s, l float64) {
	r := c.R / 255.0
	g := c.G / 255.0
	b := c.B / 255.0

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		h, s = 0, 0
	} else {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}
		switch max {
		case r:
			h = math.Mod((g-b)/d+6, 6)
		case g:
			h = (b-r)/d + 2
		case b:
			h = (r-g)/d + 4
		}
		h *= 60
	}
	return h, s, l
}

// HSLToColor converts HSL back to an RGB Color.
func HSLToColor(h, s, l, a float64) *Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp(s, 0, 1)
	l = clamp(l, 0, 1)

	chroma := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := chroma * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r1, g1, b1 float64
	switch {
	case hp >= 0 && hp < 1:
		r1, g1, b1 = chroma, x, 0
	case hp >= 1 && hp < 2:
		r1, g1, b1 = x, chroma, 0
	case hp >= 2 && hp < 3:
		r1, g1, b1 = 0, chroma, x
	case hp >= 3 && hp < 4:
		r1, g1, b1 = 0, x, chroma
	case hp >= 4 && hp < 5:
		r1, g1, b1 = x, 0, chroma
	case hp >= 5 && hp < 6:
		r1, g1, b1 = chroma, 0, x
	}

	m := l - chroma/2
	return &Color{R: (r1 + m) * 255, G: (g1 + m) * 255, B: (b1 + m) * 255, A: a}
}

// Greyscale drops saturation to zero.
func (c *Color) Greyscale() *Color {
	h, _, l := c.ToHSL()
	return HSLToColor(h, 0, l, c.A)
}

// Luma is the perceptual brightness used by the luma()/contrast() builtins
// (ITU-R BT.709 coefficients over linearized sRGB channels).
func (c *Color) Luma() float64 {
	return (0.2126*srgb(c.R/255) + 0.7152*srgb(c.G/255) + 0.0722*srgb(c.B/255))
}

func srgb(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
