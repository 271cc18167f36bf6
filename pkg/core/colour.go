package core

import "math"

// Colour is an additive RGB value. Channels are nominally in [0,1] but are
// not clamped until export.
type Colour struct {
	R, G, B float64
}

var (
	Black = Colour{0, 0, 0}
	White = Colour{1, 1, 1}
)

// NewColour creates a new Colour
func NewColour(r, g, b float64) Colour {
	return Colour{R: r, G: g, B: b}
}

// Add returns the channel-wise sum of two colours
func (c Colour) Add(other Colour) Colour {
	return Colour{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Scale multiplies every channel by factor
func (c Colour) Scale(factor float64) Colour {
	return Colour{c.R * factor, c.G * factor, c.B * factor}
}

// Multiply returns the channel-wise product of two colours
func (c Colour) Multiply(other Colour) Colour {
	return Colour{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Clamp returns a colour with channels clamped to [minVal, maxVal]
func (c Colour) Clamp(minVal, maxVal float64) Colour {
	return Colour{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// Luminance returns the perceptual luminance of the colour
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Colour) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// IsBlack reports whether every channel is zero
func (c Colour) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Quantize maps each channel to floor(255*channel) after clamping to [0,1].
// NaN channels map to 0.
func (c Colour) Quantize() (r, g, b uint8) {
	q := func(channel float64) uint8 {
		if math.IsNaN(channel) {
			return 0
		}
		return uint8(math.Floor(255 * max(0, min(1, channel))))
	}
	return q(c.R), q(c.G), q(c.B)
}
