package geometry

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/transform"
)

// Object wraps a Shape with an optional transform and an optional material.
// The four constructors cover the roles an object can play in a scene graph:
//
//	NewObject          transform + material (top-level scene objects)
//	NewChildObject     transform, inherits material
//	NewLeafObject      no transform, inherits material (mesh triangles)
//	NewTexturedObject  no transform + material (per-face materials)
type Object struct {
	shape    Shape
	matrix   *transform.AffineMatrix
	material *material.Material
}

// NewObject creates a transformed object that owns a material.
// A nil material falls back to material.Default().
func NewObject(shape Shape, t transform.AffineTransformation, m *material.Material) (*Object, error) {
	matrix, err := transform.NewAffineMatrix(t)
	if err != nil {
		return nil, fmt.Errorf("object transform: %w", err)
	}
	if m == nil {
		m = material.Default()
	}
	return &Object{shape: shape, matrix: matrix, material: m}, nil
}

// NewChildObject creates a transformed object that inherits its material
func NewChildObject(shape Shape, t transform.AffineTransformation) (*Object, error) {
	matrix, err := transform.NewAffineMatrix(t)
	if err != nil {
		return nil, fmt.Errorf("child object transform: %w", err)
	}
	return &Object{shape: shape, matrix: matrix}, nil
}

// NewLeafObject creates an object already in its parent's space with no material
func NewLeafObject(shape Shape) *Object {
	return &Object{shape: shape}
}

// NewTexturedObject creates an untransformed object that owns a material.
// A nil material falls back to material.Default().
func NewTexturedObject(shape Shape, m *material.Material) *Object {
	if m == nil {
		m = material.Default()
	}
	return &Object{shape: shape, material: m}
}

// Intersect finds where a ray in the parent's space hits this object. The
// returned normal ray is in the parent's space and carries the innermost
// material found along the recursion.
func (o *Object) Intersect(ray core.Ray) (*Hit, bool) {
	local := ray
	if o.matrix != nil {
		local = o.matrix.Shift(ray)
	}

	hit, ok := o.shape.Intersection(local)
	if !ok {
		return nil, false
	}

	if o.matrix != nil {
		hit.Normal = o.matrix.Unshift(hit.Normal)
	}
	if hit.Material == nil {
		hit.Material = o.material
	}
	return hit, true
}

// MaterialOf returns the material this object owns, or nil if it inherits one
func (o *Object) MaterialOf() *material.Material {
	return o.material
}

// Shape returns the wrapped shape
func (o *Object) Shape() Shape {
	return o.shape
}
