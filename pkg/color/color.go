// Package color provides an 8-bit RGBA color type shared between the
// settings layer and GPU-facing storage.
package color

import "github.com/emberfall/caster/pkg/math"

// Color represents an RGBA color with 8-bit components (0-255).
type Color struct {
	R, G, B, A uint8
}

// RGBA creates a color from 8-bit RGBA values.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// Vec4 returns the color as normalized float components (0.0 to 1.0),
// the layout GPU-facing storage uses.
func (c Color) Vec4() math.Vec4 {
	return math.Vec4{
		X: float32(c.R) / 255.0,
		Y: float32(c.G) / 255.0,
		Z: float32(c.B) / 255.0,
		W: float32(c.A) / 255.0,
	}
}

// FromVec4 converts normalized float components back to an 8-bit color.
// Components are clamped to [0, 1].
func FromVec4(v math.Vec4) Color {
	return Color{
		R: toByte(v.X),
		G: toByte(v.Y),
		B: toByte(v.Z),
		A: toByte(v.W),
	}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a uint8) Color {
	return Color{c.R, c.G, c.B, a}
}

func toByte(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
