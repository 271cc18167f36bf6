package scene

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/transform"
)

// NewDefaultScene creates a single stretched sphere lit from above and to the left
func NewDefaultScene() (*Scene, error) {
	sphere, err := geometry.NewObject(
		geometry.NewSphere(),
		transform.AffineTransformation{
			Scale:    [3]float64{1, 3, 1},
			Position: [3]float64{1, 0.5, 3},
		},
		material.MustNew(0.5, 0.3, 0.2, 0.7, core.White),
	)
	if err != nil {
		return nil, fmt.Errorf("default scene: %w", err)
	}

	s := New([]*geometry.Object{sphere}, []lights.Light{
		lights.NewPointLight(core.NewHVector(-3, 20, 1)),
	})
	s.Settings.CameraPosition = core.NewHVector(0, 0, -1)
	s.Settings.Resolution = core.Resolution{Width: 256, Height: 144}
	return s, nil
}

// NewSphereScene creates a unit sphere five units in front of a camera at the
// origin. The sphere covers only the middle of the frame.
func NewSphereScene() (*Scene, error) {
	sphere, err := geometry.NewObject(
		geometry.NewSphere(),
		transform.Translate(0, 0, 5),
		material.MustNew(0.2, 0.5, 0.3, 4, core.NewColour(0.9, 0.4, 0.2)),
	)
	if err != nil {
		return nil, fmt.Errorf("sphere scene: %w", err)
	}

	s := New([]*geometry.Object{sphere}, []lights.Light{
		lights.NewPointLight(core.NewHVector(-3, 20, 1)),
	})
	s.Settings.Resolution = core.Resolution{Width: 64, Height: 64}
	return s, nil
}
