package renderer

import (
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	PrimaryRays int           // Camera rays traced (one per pixel)
	TotalTiles  int           // Tiles completed
	NumWorkers  int           // Workers that shared the tiles
	Elapsed     time.Duration // Wall-clock render time
}

// Add merges the counters of a tile into the running totals
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.PrimaryRays += other.PrimaryRays
	s.TotalTiles += other.TotalTiles
}

// RaysPerSecond returns the primary ray throughput
func (s RenderStats) RaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.PrimaryRays) / s.Elapsed.Seconds()
}

// CalculateAverageLuminance returns the mean luminance of the image after
// clamping each pixel to the displayable range
func CalculateAverageLuminance(img *core.Image) float64 {
	if len(img.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range img.Pixels {
		total += c.Clamp(0, 1).Luminance()
	}
	return total / float64(len(img.Pixels))
}
