package material

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ColourSource provides colours that vary over texture coordinates
type ColourSource interface {
	Evaluate(uv core.Vec2) core.Colour
}

// SolidColour provides a uniform colour
type SolidColour struct {
	Colour core.Colour
}

// NewSolidColour creates a new solid colour source
func NewSolidColour(colour core.Colour) *SolidColour {
	return &SolidColour{Colour: colour}
}

// Evaluate returns the solid colour regardless of UV
func (s *SolidColour) Evaluate(uv core.Vec2) core.Colour {
	return s.Colour
}
