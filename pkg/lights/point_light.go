package lights

import "github.com/df07/go-phong-raytracer/pkg/core"

// PointLight emits light from a single world-space location
type PointLight struct {
	Location core.HVector
	Colour   core.Colour
}

// NewPointLight creates a white point light
func NewPointLight(location core.HVector) *PointLight {
	return &PointLight{Location: location, Colour: core.White}
}

// NewColouredPointLight creates a point light with the given colour
func NewColouredPointLight(location core.HVector, colour core.Colour) *PointLight {
	return &PointLight{Location: location, Colour: colour}
}

// Type returns the light type
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Sample returns the direction toward the light. A shading point exactly at
// the light location gets a zero direction and contributes nothing.
func (pl *PointLight) Sample(point core.HVector) LightSample {
	toLight := pl.Location.Subtract(point)
	distance := toLight.Magnitude()
	if distance == 0 {
		return LightSample{Colour: pl.Colour}
	}
	return LightSample{
		Direction: toLight.Scale(1 / distance),
		Distance:  distance,
		Colour:    pl.Colour,
	}
}
