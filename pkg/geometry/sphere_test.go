package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func TestSphere_Intersection(t *testing.T) {
	sphere := NewSphere()

	tests := []struct {
		name           string
		origin         core.HVector
		direction      core.HVector
		shouldHit      bool
		expectedPoint  core.HVector
		expectedNormal core.HVector
	}{
		{
			name:           "head-on hit",
			origin:         core.NewHVector(0, 0, -5),
			direction:      core.NewHVector(0, 0, 1),
			shouldHit:      true,
			expectedPoint:  core.NewHVector(0, 0, -1),
			expectedNormal: core.NewHVector(0, 0, -1),
		},
		{
			name:      "passes at distance 2",
			origin:    core.NewHVector(2, 0, -5),
			direction: core.NewHVector(0, 0, 1),
			shouldHit: false,
		},
		{
			name:           "origin inside uses far root",
			origin:         core.NewHVector(0, 0, 0),
			direction:      core.NewHVector(0, 0, 1),
			shouldHit:      true,
			expectedPoint:  core.NewHVector(0, 0, 1),
			expectedNormal: core.NewHVector(0, 0, 1),
		},
		{
			name:      "sphere behind the ray",
			origin:    core.NewHVector(0, 0, 5),
			direction: core.NewHVector(0, 0, 1),
			shouldHit: false,
		},
		{
			name:           "grazing tangent",
			origin:         core.NewHVector(1, 0, -5),
			direction:      core.NewHVector(0, 0, 1),
			shouldHit:      true,
			expectedPoint:  core.NewHVector(1, 0, 0),
			expectedNormal: core.NewHVector(1, 0, 0),
		},
		{
			name:           "starting on the surface skips self-intersection",
			origin:         core.NewHVector(0, 0, -1),
			direction:      core.NewHVector(0, 0, 1),
			shouldHit:      true,
			expectedPoint:  core.NewHVector(0, 0, 1),
			expectedNormal: core.NewHVector(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Intersection(core.NewRay(tt.origin, tt.direction))
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
			}
			if !tt.shouldHit {
				return
			}

			const tolerance = 1e-9
			if hit.Point().Subtract(tt.expectedPoint).Magnitude() > tolerance {
				t.Errorf("Expected hit point %v, got %v", tt.expectedPoint, hit.Point())
			}
			if hit.Normal.Direction.Subtract(tt.expectedNormal).Magnitude() > tolerance {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal.Direction)
			}
			if hit.Material != nil {
				t.Errorf("Primitive shapes should not attach a material, got %+v", hit.Material)
			}
		})
	}
}

func TestSphere_TextureCoordinates(t *testing.T) {
	sphere := NewSphere()

	tests := []struct {
		name      string
		origin    core.HVector
		direction core.HVector
		u, v      float64
	}{
		{"front", core.NewHVector(0, 0, 5), core.NewHVector(0, 0, -1), 0.5, 0.5},
		{"back", core.NewHVector(0, 0, -5), core.NewHVector(0, 0, 1), 1.0, 0.5},
		{"side", core.NewHVector(5, 0, 0), core.NewHVector(-1, 0, 0), 0.75, 0.5},
		{"top", core.NewHVector(0, 5, 0), core.NewHVector(0, -1, 0), 0.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := sphere.Intersection(core.NewRay(tt.origin, tt.direction))
			if !ok {
				t.Fatal("Expected hit, got miss")
			}
			if math.Abs(hit.UV.U-tt.u) > 1e-9 || math.Abs(hit.UV.V-tt.v) > 1e-9 {
				t.Errorf("Expected UV (%f,%f), got (%f,%f)", tt.u, tt.v, hit.UV.U, hit.UV.V)
			}
		})
	}
}
