package renderer

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Tracer resolves the colour seen along a ray. *scene.Scene implements it.
type Tracer interface {
	Trace(ray core.Ray, depth int) core.Colour
}

// Camera generates one ray per pixel through an image plane placed
// focalLength in front of the camera along +z. The plane spans [-1,1] on
// both axes regardless of aspect ratio.
type Camera struct {
	position    core.HVector
	resolution  core.Resolution
	focalLength float64
}

// NewCamera creates a camera; a non-positive focal length defaults to 1
func NewCamera(position core.HVector, resolution core.Resolution, focalLength float64) *Camera {
	if focalLength <= 0 {
		focalLength = 1
	}
	return &Camera{
		position:    position,
		resolution:  resolution,
		focalLength: focalLength,
	}
}

// Resolution returns the image dimensions the camera renders
func (c *Camera) Resolution() core.Resolution {
	return c.resolution
}

// GeneratePixelRay returns the normalized ray from the camera through the
// centre of the given pixel. Row 0 is the top of the image.
func (c *Camera) GeneratePixelRay(row, column int) core.Ray {
	x := deviceCoordinate(column, c.resolution.Width)
	y := deviceCoordinate(row, c.resolution.Height)
	pixel := c.position.Add(core.NewHVector(x, -y, c.focalLength))
	return core.NewRay(c.position, pixel.Subtract(c.position).Normalized())
}

// GenerateImage traces every pixel in row-major order on the calling goroutine
func (c *Camera) GenerateImage(tracer Tracer, depth int) *core.Image {
	img := core.NewImage(c.resolution)
	for row := 0; row < c.resolution.Height; row++ {
		for column := 0; column < c.resolution.Width; column++ {
			img.Set(row, column, tracer.Trace(c.GeneratePixelRay(row, column), depth))
		}
	}
	return img
}

// deviceCoordinate maps 0..dimension-1 onto [-1,1]. A single-pixel
// dimension maps to the centre.
func deviceCoordinate(coord, dimension int) float64 {
	if dimension <= 1 {
		return 0
	}
	return float64(coord)/(float64(dimension-1)/2) - 1
}
