package renderer

import (
	"math"
	"testing"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red, green, blue and an over-bright white that clamps to 1.
	// Luminances: 0.299 + 0.587 + 0.114 + 1.0 = 2.0
	img := core.NewImage(core.Resolution{Width: 2, Height: 2})
	img.Set(0, 0, core.NewColour(1, 0, 0))
	img.Set(0, 1, core.NewColour(0, 1, 0))
	img.Set(1, 0, core.NewColour(0, 0, 1))
	img.Set(1, 1, core.NewColour(5, 5, 5))

	avgLum := CalculateAverageLuminance(img)
	if math.Abs(avgLum-0.5) > 1e-9 {
		t.Errorf("Expected average luminance 0.5, got %f", avgLum)
	}

	if got := CalculateAverageLuminance(core.NewImage(core.Resolution{})); got != 0 {
		t.Errorf("Expected 0 for an empty image, got %f", got)
	}
}

func TestRenderStats(t *testing.T) {
	var total RenderStats
	total.Add(RenderStats{TotalPixels: 10, PrimaryRays: 10, TotalTiles: 1})
	total.Add(RenderStats{TotalPixels: 6, PrimaryRays: 6, TotalTiles: 1})

	if total.TotalPixels != 16 || total.PrimaryRays != 16 || total.TotalTiles != 2 {
		t.Errorf("Unexpected totals %+v", total)
	}
	if total.RaysPerSecond() != 0 {
		t.Error("Expected zero throughput without elapsed time")
	}

	total.Elapsed = 2 * time.Second
	if total.RaysPerSecond() != 8 {
		t.Errorf("Expected 8 rays/s, got %f", total.RaysPerSecond())
	}
}
