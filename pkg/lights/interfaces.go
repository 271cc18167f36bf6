package lights

import "github.com/df07/go-phong-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint LightType = "point"
)

// Light is a source that illuminates shading points
type Light interface {
	Type() LightType

	// Sample returns the direction and colour of light arriving at point.
	// Direction points FROM the shading point TO the light and is unit length.
	Sample(point core.HVector) LightSample
}

// LightSample describes the light reaching a single shading point
type LightSample struct {
	Direction core.HVector // Unit direction from shading point to light
	Distance  float64      // Distance to light
	Colour    core.Colour  // Emitted colour
}
