package core

import (
	"image"
	"image/color"
)

// Resolution is the fixed size of an image in pixels
type Resolution struct {
	Height int
	Width  int
}

// Pixels returns the total number of pixels
func (r Resolution) Pixels() int {
	return r.Height * r.Width
}

// Image is a row-major grid of colours
type Image struct {
	Resolution Resolution
	Pixels     []Colour
}

// NewImage creates a black image with the given resolution
func NewImage(resolution Resolution) *Image {
	return &Image{
		Resolution: resolution,
		Pixels:     make([]Colour, resolution.Pixels()),
	}
}

// At returns the colour at row, column
func (img *Image) At(row, column int) Colour {
	return img.Pixels[row*img.Resolution.Width+column]
}

// Set stores the colour at row, column
func (img *Image) Set(row, column int, c Colour) {
	img.Pixels[row*img.Resolution.Width+column] = c
}

// ToRGBA converts the image to a standard library RGBA image for encoding
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Resolution.Width, img.Resolution.Height))
	for row := 0; row < img.Resolution.Height; row++ {
		for column := 0; column < img.Resolution.Width; column++ {
			r, g, b := img.At(row, column).Quantize()
			out.SetRGBA(column, row, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}
