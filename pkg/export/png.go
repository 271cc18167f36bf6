package export

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Format selects the output encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// ParseFormat accepts "ppm" or "png", case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPPM, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want ppm or png)", s)
	}
}

// WritePNG encodes img as an 8-bit PNG, clamping and quantizing like WritePPM
func WritePNG(w io.Writer, img *core.Image) error {
	if err := png.Encode(w, img.ToRGBA()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Write encodes img in the given format
func Write(w io.Writer, img *core.Image, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPNG:
		return WritePNG(w, img)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// SaveImage writes img to path, creating parent directories as needed
func SaveImage(path string, img *core.Image, format Format) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	return Write(file, img, format)
}
