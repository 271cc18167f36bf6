package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/transform"
)

// NewPyramidScene creates a square pyramid with one material per face, nested
// inside a rotated group, next to a checkerboard sphere. Two coloured lights.
func NewPyramidScene() (*Scene, error) {
	apex := core.NewHVector(0, 1, 0)
	base := []core.HVector{
		core.NewHVector(-1, -1, -1),
		core.NewHVector(1, -1, -1),
		core.NewHVector(1, -1, 1),
		core.NewHVector(-1, -1, 1),
	}

	faceColours := []core.Colour{
		core.NewColour(0.9, 0.2, 0.2),
		core.NewColour(0.2, 0.9, 0.2),
		core.NewColour(0.2, 0.2, 0.9),
		core.NewColour(0.9, 0.9, 0.2),
	}

	var sideFaces []geometry.Shape
	var sideMaterials []*material.Material
	for i := range base {
		sideFaces = append(sideFaces, geometry.NewTriangle(base[i], base[(i+1)%len(base)], apex))
		sideMaterials = append(sideMaterials, material.MustNew(0.2, 0.6, 0.2, 8, faceColours[i]))
	}
	sides, err := geometry.NewGroupedMesh(sideFaces, sideMaterials)
	if err != nil {
		return nil, fmt.Errorf("pyramid scene: %w", err)
	}

	// Base quad, uncoloured so it inherits from the enclosing object
	bottom := geometry.NewMesh([]geometry.Shape{
		geometry.NewTriangle(base[0], base[2], base[1]),
		geometry.NewTriangle(base[0], base[3], base[2]),
	})

	sidesChild, err := geometry.NewChildObject(sides, transform.Identity())
	if err != nil {
		return nil, fmt.Errorf("pyramid scene: %w", err)
	}
	bottomChild, err := geometry.NewChildObject(bottom, transform.Identity())
	if err != nil {
		return nil, fmt.Errorf("pyramid scene: %w", err)
	}

	pyramid, err := geometry.NewObject(
		geometry.NewGroup(sidesChild, bottomChild),
		transform.AffineTransformation{
			Scale:       [3]float64{1, 1.5, 1},
			Position:    [3]float64{-1.2, 0, 6},
			Orientation: transform.Orientation{Y: math.Pi / 6},
		},
		material.MustNew(0.3, 0.5, 0.2, 2, core.NewColour(0.6, 0.6, 0.6)),
	)
	if err != nil {
		return nil, fmt.Errorf("pyramid scene: %w", err)
	}

	checker, err := material.NewTextured(0.2, 0.5, 0.3, 16,
		material.NewCheckerboardTexture(256, 128, 16, core.White, core.NewColour(0.1, 0.1, 0.1)))
	if err != nil {
		return nil, fmt.Errorf("pyramid scene: %w", err)
	}
	ball, err := geometry.NewObject(
		geometry.NewSphere(),
		transform.AffineTransformation{
			Scale:    [3]float64{0.8, 0.8, 0.8},
			Position: [3]float64{1.5, -0.4, 5},
		},
		checker,
	)
	if err != nil {
		return nil, fmt.Errorf("pyramid scene: %w", err)
	}

	s := New([]*geometry.Object{pyramid, ball}, []lights.Light{
		lights.NewPointLight(core.NewHVector(-3, 20, 1)),
		lights.NewColouredPointLight(core.NewHVector(4, 2, 0), core.NewColour(1, 0.8, 0.6)),
	})
	s.Settings.Resolution = core.Resolution{Width: 320, Height: 180}
	return s, nil
}
