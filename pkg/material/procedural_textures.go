package material

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// NewCheckerboardTexture creates a procedural checkerboard pattern texture
func NewCheckerboardTexture(width, height, checkSize int, colour1, colour2 core.Colour) *ImageTexture {
	pixels := make([]core.Colour, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = colour1
			} else {
				pixels[y*width+x] = colour2
			}
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewUVDebugTexture creates a texture showing UV coordinates as colours
// U maps to red channel, V maps to green channel
func NewUVDebugTexture(width, height int) *ImageTexture {
	pixels := make([]core.Colour, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float64(x) / float64(width-1)
			v := 1.0 - float64(y)/float64(height-1)
			pixels[y*width+x] = core.NewColour(u, v, 0.0)
		}
	}

	return NewImageTexture(width, height, pixels)
}
