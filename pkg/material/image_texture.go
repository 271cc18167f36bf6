package material

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ImageTexture provides colour from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Colour // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Colour) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture with nearest-neighbour filtering.
// UVs wrap into [0,1); V=0 is the bottom row.
func (t *ImageTexture) Evaluate(uv core.Vec2) core.Colour {
	u := wrap(uv.U)
	v := wrap(uv.V)

	x := min(t.Width-1, max(0, int(u*float64(t.Width))))
	y := min(t.Height-1, max(0, int((1.0-v)*float64(t.Height))))

	return t.Pixels[y*t.Width+x]
}

func wrap(f float64) float64 {
	f -= float64(int(f))
	if f < 0 {
		f += 1.0
	}
	return f
}
