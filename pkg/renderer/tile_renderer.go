package renderer

import (
	"image"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// TileRenderer traces the pixels of one rectangular region
type TileRenderer struct {
	camera *Camera
	tracer Tracer
}

// NewTileRenderer creates a tile renderer for the given camera and tracer
func NewTileRenderer(camera *Camera, tracer Tracer) *TileRenderer {
	return &TileRenderer{
		camera: camera,
		tracer: tracer,
	}
}

// RenderTileBounds traces every pixel inside bounds into img. Bounds use
// image coordinates: X is the column and Y the row. Distinct tiles never
// share pixels, so concurrent calls on disjoint bounds are safe.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, img *core.Image, depth int) RenderStats {
	for row := bounds.Min.Y; row < bounds.Max.Y; row++ {
		for column := bounds.Min.X; column < bounds.Max.X; column++ {
			ray := tr.camera.GeneratePixelRay(row, column)
			img.Set(row, column, tr.tracer.Trace(ray, depth))
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	return RenderStats{
		TotalPixels: pixels,
		PrimaryRays: pixels,
		TotalTiles:  1,
	}
}
