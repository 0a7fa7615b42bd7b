package quarkgl

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Hex parses "#rrggbb" or "#rgb".
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("quarkgl: color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// MustHex is Hex for compile-time constants.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Mix blends a toward b in linear RGB; t is clamped to [0,1]. Alpha is interpolated directly.
func Mix(a, b Color, t Scalar) Color {
	t = Clamp01(t)
	m := a.colorful().BlendLinearRgb(b.colorful(), float64(t)).Clamped()
	r, g, bl := m.RGB255()
	alpha := float32(a.A) + (float32(b.A)-float32(a.A))*t
	return Color{R: r, G: g, B: bl, A: uint8(alpha + 0.5)}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c Color) MulScalar(s Scalar) Color {
	t := uint32(Clamp01(s) * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// Tint multiplies two colors channel-wise, including alpha.
func (c Color) Tint(o Color) Color {
	mul := func(a, b uint8) uint8 { return uint8((uint32(a) * uint32(b)) / 255) }
	return Color{R: mul(c.R, o.R), G: mul(c.G, o.G), B: mul(c.B, o.B), A: mul(c.A, o.A)}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// Fade scales alpha by s in [0,1].
func (c Color) Fade(s Scalar) Color {
	c.A = uint8(float32(c.A)*Clamp01(s) + 0.5)
	return c
}

// Premultiplied returns the color with channels scaled by alpha.
func (c Color) Premultiplied() Color {
	if c.A == 0xFF {
		return c
	}
	a := uint32(c.A)
	return Color{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}
