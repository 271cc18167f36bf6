package geometry

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Epsilon is the minimum distance along a ray that counts as a hit. It is
// shared by every shape so sphere and triangle agree on what "too close" means.
const Epsilon = 1e-9

// Hit contains information about a ray-shape intersection
type Hit struct {
	Normal   core.Ray           // Origin is the hit point, Direction the surface normal
	UV       core.Vec2          // Texture coordinates
	Material *material.Material // Innermost material found, nil until one is attached
}

// Point returns the intersection point
func (h *Hit) Point() core.HVector {
	return h.Normal.Origin
}

// Shape is geometry in its own local coordinate frame
type Shape interface {
	Intersection(ray core.Ray) (*Hit, bool)
}

// Intersectable is anything the closest-hit search can walk over
type Intersectable interface {
	Intersect(ray core.Ray) (*Hit, bool)
	MaterialOf() *material.Material
}
