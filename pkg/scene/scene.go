package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// Scene holds the objects and lights to trace. Objects and lights are only
// appended while the scene is built; tracing treats the scene as read-only,
// so any number of goroutines may trace it at once.
type Scene struct {
	Objects    []*geometry.Object
	Lights     []lights.Light
	Background core.Colour // Colour of rays that miss every object
	Settings   RenderSettings
}

// RenderSettings are the camera and output parameters a scene recommends
type RenderSettings struct {
	CameraPosition core.HVector
	FocalLength    float64
	Resolution     core.Resolution
	MaxDepth       int // Recursion budget for secondary rays
}

// DefaultRenderSettings returns sensible default values
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		CameraPosition: core.NewHVector(0, 0, 0),
		FocalLength:    1,
		Resolution:     core.Resolution{Width: 256, Height: 144},
		MaxDepth:       0,
	}
}

// New creates a scene with a black background
func New(objects []*geometry.Object, sceneLights []lights.Light) *Scene {
	return &Scene{
		Objects:    objects,
		Lights:     sceneLights,
		Background: core.Black,
		Settings:   DefaultRenderSettings(),
	}
}

// AddObject appends an object to the scene
func (s *Scene) AddObject(object *geometry.Object) {
	s.Objects = append(s.Objects, object)
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// Trace returns the colour seen along ray. depth is the remaining budget for
// secondary rays spawned while shading.
func (s *Scene) Trace(ray core.Ray, depth int) core.Colour {
	hit, ok := geometry.FindClosestIntersection(s.Objects, ray)
	if !ok {
		return s.Background
	}
	return s.Shade(ray.Direction, hit, depth)
}

// GetPrimitiveCount returns the number of spheres and triangles in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, object := range s.Objects {
		count += countPrimitives(object.Shape())
	}
	return count
}

func countPrimitives(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.GroupedMesh:
		count := 0
		for _, child := range obj.Children() {
			count += countPrimitives(child.Shape())
		}
		return count
	case *geometry.Mesh:
		return obj.GetTriangleCount()
	default:
		return 1
	}
}
