package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Culling selects which side of a triangle can be hit
type Culling int

const (
	// DoubleSided hits from either side; only rays parallel to the plane miss
	DoubleSided Culling = iota
	// BackFaceCulled misses rays arriving on the side opposite the winding normal
	BackFaceCulled
)

// Triangle represents a single triangle defined by three vertices. Edges are
// cached at construction, so triangles are immutable and built with NewTriangle.
type Triangle struct {
	p1, p2, p3 core.HVector
	culling    Culling
	side1      core.HVector // p2 - p1
	side2      core.HVector // p3 - p1
	normal     core.HVector // side1 x side2, unnormalized
}

// NewTriangle creates a new double-sided triangle from three vertices
func NewTriangle(p1, p2, p3 core.HVector) *Triangle {
	side1 := p2.Subtract(p1)
	side2 := p3.Subtract(p1)
	return &Triangle{
		p1:      p1,
		p2:      p2,
		p3:      p3,
		culling: DoubleSided,
		side1:   side1,
		side2:   side2,
		normal:  side1.Cross(side2),
	}
}

// NewCulledTriangle creates a triangle that can only be hit from its front face
func NewCulledTriangle(p1, p2, p3 core.HVector) *Triangle {
	t := NewTriangle(p1, p2, p3)
	t.culling = BackFaceCulled
	return t
}

// Vertices returns the three corners in winding order
func (t *Triangle) Vertices() (p1, p2, p3 core.HVector) {
	return t.p1, t.p2, t.p3
}

// Culling returns which sides of the triangle can be hit
func (t *Triangle) Culling() Culling {
	return t.culling
}

// Intersection tests the ray against the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersection(ray core.Ray) (*Hit, bool) {
	pVector := ray.Direction.Cross(t.side2)
	determinant := t.side1.Dot(pVector)

	switch t.culling {
	case BackFaceCulled:
		if determinant <= Epsilon {
			return nil, false
		}
	default:
		if math.Abs(determinant) <= Epsilon {
			return nil, false
		}
	}
	inverseDeterminant := 1.0 / determinant

	tVector := ray.Origin.Subtract(t.p1)
	u := tVector.Dot(pVector) * inverseDeterminant
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	qVector := tVector.Cross(t.side1)
	v := ray.Direction.Dot(qVector) * inverseDeterminant
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	distance := t.side2.Dot(qVector) * inverseDeterminant
	if distance <= Epsilon {
		return nil, false
	}

	return &Hit{
		Normal: core.NewRay(ray.At(distance), t.normal),
		UV:     core.NewVec2(u, v),
	}, true
}

// GetNormal returns the triangle's unnormalized winding normal
func (t *Triangle) GetNormal() core.HVector {
	return t.normal
}
