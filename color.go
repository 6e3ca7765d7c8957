package stage3d

import (
	"image/color"
	"math"
)

// A Color represents a color, containing R, G, B, and A components, each expected to range from 0 to 1.
type Color struct {
	R, G, B, A float32
}

// NewColor returns a new Color, with the provided R, G, B, and A components expected to range from 0 to 1.
func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// NewColorFromHexInt returns an opaque Color from a 0xRRGGBB integer, the way scene files and three.js-style
// materials usually write them (e.g. 0xf28d00).
func NewColorFromHexInt(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
		A: 1,
	}
}

// Mix returns the Color blended towards other by percent.
func (c Color) Mix(other Color, percent float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*percent,
		G: c.G + (other.G-c.G)*percent,
		B: c.B + (other.B-c.B)*percent,
		A: c.A + (other.A-c.A)*percent,
	}
}

// ToNRGBA64 converts the Color to a color.NRGBA64 for use with Ebitengine drawing functions.
func (c Color) ToNRGBA64() color.NRGBA64 {
	clamp := func(v float32) uint16 {
		return uint16(math.Max(0, math.Min(1, float64(v))) * math.MaxUint16)
	}
	return color.NRGBA64{clamp(c.R), clamp(c.G), clamp(c.B), clamp(c.A)}
}

// ConvertTosRGB converts the linear Color to sRGB in place; glTF stores material colors linearly.
func (c *Color) ConvertTosRGB() {
	conv := func(v float32) float32 {
		if v <= 0.0031308 {
			return v * 12.92
		}
		return float32(1.055*math.Pow(float64(v), 1/2.4) - 0.055)
	}
	c.R = conv(c.R)
	c.G = conv(c.G)
	c.B = conv(c.B)
}

// MultiplyRGB returns the Color with its R, G and B channels multiplied by the values given. Alpha is unchanged.
func (c Color) MultiplyRGB(r, g, b float32) Color {
	c.R *= r
	c.G *= g
	c.B *= b
	return c
}
