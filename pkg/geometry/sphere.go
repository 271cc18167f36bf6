package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Sphere is the unit sphere centred at the origin. Size and placement come
// from the enclosing Object's transform.
type Sphere struct{}

// NewSphere creates a new unit sphere
func NewSphere() *Sphere {
	return &Sphere{}
}

// Intersection solves k^2 + 2bk + c = 0 for a ray with unit direction
func (s *Sphere) Intersection(ray core.Ray) (*Hit, bool) {
	b := ray.Direction.Dot(ray.Origin)
	c := ray.Origin.Dot(ray.Origin) - 1.0
	discriminant := b*b - c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Prefer the nearer root unless it is behind or on the ray origin
	k := -b - sqrtD
	if k <= Epsilon {
		k = -b + sqrtD
	}
	if k <= Epsilon {
		return nil, false
	}

	point := ray.At(k)

	return &Hit{
		Normal: core.NewRay(point, point),
		UV: core.NewVec2(
			0.5+math.Atan2(point.X, point.Z)/(2*math.Pi),
			0.5+math.Asin(max(-1, min(1, point.Y)))/math.Pi,
		),
	}, true
}
