package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// WritePPM encodes img as a plain-text P3 pixmap: a header with width,
// height and max value 255, then one "r g b" triplet per pixel with one image
// row per line, top row first.
func WritePPM(w io.Writer, img *core.Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Resolution.Width, img.Resolution.Height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}
	for row := 0; row < img.Resolution.Height; row++ {
		for column := 0; column < img.Resolution.Width; column++ {
			r, g, b := img.At(row, column).Quantize()
			sep := " "
			if column == img.Resolution.Width-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(bw, "%d %d %d%s", r, g, b, sep); err != nil {
				return fmt.Errorf("write ppm row %d: %w", row, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush ppm: %w", err)
	}
	return nil
}
