package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// constantTracer returns the same colour for every ray
type constantTracer struct {
	colour core.Colour
}

func (c constantTracer) Trace(core.Ray, int) core.Colour { return c.colour }

// directionTracer encodes the ray direction as a colour
type directionTracer struct{}

func (directionTracer) Trace(ray core.Ray, depth int) core.Colour {
	return core.NewColour(ray.Direction.X, ray.Direction.Y, ray.Direction.Z+float64(depth))
}

func TestGeneratePixelRay(t *testing.T) {
	camera := NewCamera(core.NewHVector(0, 0, 0), core.Resolution{Width: 3, Height: 3}, 1)
	invSqrt2 := 1 / math.Sqrt2
	invSqrt3 := 1 / math.Sqrt(3)

	tests := []struct {
		name      string
		row, col  int
		direction core.HVector
	}{
		{"centre", 1, 1, core.NewHVector(0, 0, 1)},
		{"top left", 0, 0, core.NewHVector(-invSqrt3, invSqrt3, invSqrt3)},
		{"bottom right", 2, 2, core.NewHVector(invSqrt3, -invSqrt3, invSqrt3)},
		{"middle right", 1, 2, core.NewHVector(invSqrt2, 0, invSqrt2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GeneratePixelRay(tt.row, tt.col)
			if ray.Origin != core.NewHVector(0, 0, 0) {
				t.Errorf("Expected origin at camera, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.direction).Magnitude() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
			if math.Abs(ray.Direction.Magnitude()-1) > 1e-9 {
				t.Errorf("Expected unit direction, got magnitude %v", ray.Direction.Magnitude())
			}
		})
	}
}

func TestGeneratePixelRayOffsetCamera(t *testing.T) {
	position := core.NewHVector(2, -1, -1)
	camera := NewCamera(position, core.Resolution{Width: 5, Height: 5}, 2)

	ray := camera.GeneratePixelRay(2, 2)
	if ray.Origin != position {
		t.Errorf("Expected origin %v, got %v", position, ray.Origin)
	}
	if ray.Direction.Subtract(core.NewHVector(0, 0, 1)).Magnitude() > 1e-9 {
		t.Errorf("Expected centre ray along +z, got %v", ray.Direction)
	}
}

func TestGeneratePixelRaySinglePixel(t *testing.T) {
	camera := NewCamera(core.NewHVector(0, 0, 0), core.Resolution{Width: 1, Height: 1}, 0)
	ray := camera.GeneratePixelRay(0, 0)
	if ray.Direction.Subtract(core.NewHVector(0, 0, 1)).Magnitude() > 1e-9 {
		t.Errorf("Expected single pixel to look straight ahead, got %v", ray.Direction)
	}
}

func TestGenerateImage(t *testing.T) {
	resolution := core.Resolution{Width: 4, Height: 2}
	camera := NewCamera(core.NewHVector(0, 0, 0), resolution, 1)

	img := camera.GenerateImage(constantTracer{colour: core.NewColour(0.2, 0.4, 0.6)}, 0)
	if img.Resolution != resolution || len(img.Pixels) != resolution.Pixels() {
		t.Fatalf("Unexpected image dimensions %+v with %d pixels", img.Resolution, len(img.Pixels))
	}
	for i, c := range img.Pixels {
		if c != core.NewColour(0.2, 0.4, 0.6) {
			t.Errorf("Pixel %d: expected tracer colour, got %v", i, c)
		}
	}

	// The depth budget reaches the tracer unchanged
	img = camera.GenerateImage(directionTracer{}, 3)
	if got := img.At(0, 0).B; got < 3 {
		t.Errorf("Expected depth 3 folded into blue channel, got %v", got)
	}
	if img.At(0, 0).R >= 0 || img.At(0, 3).R <= 0 {
		t.Errorf("Expected columns to sweep left to right, got %v and %v", img.At(0, 0), img.At(0, 3))
	}
	if img.At(0, 0).G <= 0 || img.At(1, 0).G >= 0 {
		t.Errorf("Expected row 0 at the top, got %v and %v", img.At(0, 0), img.At(1, 0))
	}
}
