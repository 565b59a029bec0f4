package paint

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is a straight (non-premultiplied) RGBA color with components in [0, 1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// RGBA builds a color, clamping every component into [0, 1].
func RGBA(r, g, b, a float64) Color {
	return Color{R: clamp01(r), G: clamp01(g), B: clamp01(b), A: clamp01(a)}
}

// ParseColor accepts #rrggbb or #rrggbbaa.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q must be #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{
		R: float64((v>>24)&0xff) / 255,
		G: float64((v>>16)&0xff) / 255,
		B: float64((v>>8)&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// String formats the color as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B), to8(c.A))
}

// ARGB returns the premultiplied 32-bit pixel expected by an X11 ARGB visual.
func (c Color) ARGB() uint32 {
	a := to8(c.A)
	r := to8(c.R * c.A)
	g := to8(c.G * c.A)
	b := to8(c.B * c.A)
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// RGB returns the 24-bit pixel for an opaque visual: the color composited
// over black, which is the premultiplied pixel with alpha dropped.
func (c Color) RGB() uint32 {
	return c.ARGB() & 0x00ffffff
}

// Palette holds the colors used to paint the grid overlay.
type Palette struct {
	Backdrop Color
	Cell     Color
	Selected Color
}

// DefaultPalette is a half-transparent black backdrop with light gray cells at
// 90% opacity and medium gray selected cells at 80% opacity.
func DefaultPalette() Palette {
	return Palette{
		Backdrop: RGBA(0, 0, 0, 0.5),
		Cell:     RGBA(0.9, 0.9, 0.9, 0.9),
		Selected: RGBA(0.6, 0.6, 0.6, 0.8),
	}
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
