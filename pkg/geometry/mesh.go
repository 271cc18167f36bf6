package geometry

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// GroupedMesh is a composite whose children carry their own materials or
// transforms. Children share the group's coordinate frame.
type GroupedMesh struct {
	children []*Object
}

// NewGroupedMesh pairs each shape with its material as untransformed textured
// objects. Shapes with a nil material become leaves that inherit from the
// enclosing object.
func NewGroupedMesh(shapes []Shape, materials []*material.Material) (*GroupedMesh, error) {
	if len(shapes) != len(materials) {
		return nil, fmt.Errorf("grouped mesh: %d shapes but %d materials", len(shapes), len(materials))
	}
	children := make([]*Object, len(shapes))
	for i, shape := range shapes {
		if materials[i] == nil {
			children[i] = NewLeafObject(shape)
			continue
		}
		children[i] = NewTexturedObject(shape, materials[i])
	}
	return &GroupedMesh{children: children}, nil
}

// NewGroup builds a composite from arbitrary child objects
func NewGroup(children ...*Object) *GroupedMesh {
	return &GroupedMesh{children: children}
}

// Intersection returns the closest child hit
func (g *GroupedMesh) Intersection(ray core.Ray) (*Hit, bool) {
	return FindClosestIntersection(g.children, ray)
}

// Children returns the child objects
func (g *GroupedMesh) Children() []*Object {
	return g.children
}

// Mesh is a composite of material-less leaves that inherit the material of
// whatever object encloses the mesh
type Mesh struct {
	children []*Object
}

// NewMesh wraps each shape as a leaf object
func NewMesh(shapes []Shape) *Mesh {
	children := make([]*Object, len(shapes))
	for i, shape := range shapes {
		children[i] = NewLeafObject(shape)
	}
	return &Mesh{children: children}
}

// NewMeshFromIndices builds a triangle mesh from vertices and face indices
// (each group of 3 indices forms a triangle)
func NewMeshFromIndices(vertices []core.HVector, faces []int) (*Mesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	shapes := make([]Shape, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, index := range [3]int{i0, i1, i2} {
			if index < 0 || index >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of bounds [0,%d)", i/3, index, len(vertices))
			}
		}
		shapes = append(shapes, NewTriangle(vertices[i0], vertices[i1], vertices[i2]))
	}

	return NewMesh(shapes), nil
}

// Intersection returns the closest child hit
func (m *Mesh) Intersection(ray core.Ray) (*Hit, bool) {
	return FindClosestIntersection(m.children, ray)
}

// GetTriangleCount returns the number of leaves in this mesh
func (m *Mesh) GetTriangleCount() int {
	return len(m.children)
}
