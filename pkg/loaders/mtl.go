package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// mtlEntry accumulates the statements of one newmtl block
type mtlEntry struct {
	ambient, diffuse, specular core.Colour
	hasAmbient, hasSpecular    bool
	shininess                  float64
	textureFile                string
}

// LoadMTL loads a Wavefront material library. Texture maps are resolved
// relative to the library's directory.
func LoadMTL(filename string) (map[string]*material.Material, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open MTL file: %w", err)
	}
	defer file.Close()

	materials, err := ParseMTL(file, filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return materials, nil
}

// ParseMTL reads newmtl, Ka, Kd, Ks, Ns and map_Kd statements. The three
// reflectance colours are reduced to their luminance and rescaled to sum to 1,
// so every parsed material satisfies the energy constraint. Kd becomes the
// base colour; map_Kd, when present, replaces it with an image texture.
func ParseMTL(reader io.Reader, baseDir string) (map[string]*material.Material, error) {
	entries := make(map[string]*mtlEntry)
	var order []string
	var current *mtlEntry

	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(stripComment(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: newmtl without a name", lineNumber)
			}
			name := strings.Join(fields[1:], " ")
			current = &mtlEntry{diffuse: core.White, shininess: 1}
			if _, exists := entries[name]; !exists {
				order = append(order, name)
			}
			entries[name] = current
			continue
		}
		if current == nil {
			continue // statements before the first newmtl have nothing to apply to
		}

		var err error
		switch fields[0] {
		case "Ka":
			current.ambient, err = parseColour(fields[1:])
			current.hasAmbient = true
		case "Kd":
			current.diffuse, err = parseColour(fields[1:])
		case "Ks":
			current.specular, err = parseColour(fields[1:])
			current.hasSpecular = true
		case "Ns":
			current.shininess, err = parseFloat(fields[1:])
		case "map_Kd":
			if len(fields) < 2 {
				err = fmt.Errorf("map_Kd without a filename")
			} else {
				current.textureFile = fields[len(fields)-1]
			}
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNumber, fields[0], err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading MTL: %w", err)
	}

	materials := make(map[string]*material.Material, len(entries))
	for _, name := range order {
		m, err := entries[name].build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}
	return materials, nil
}

func (e *mtlEntry) build(baseDir string) (*material.Material, error) {
	ambient := 0.0
	if e.hasAmbient {
		ambient = e.ambient.Luminance()
	}
	diffuse := e.diffuse.Luminance()
	specular := 0.0
	if e.hasSpecular {
		specular = e.specular.Luminance()
	}

	total := ambient + diffuse + specular
	if total <= 0 {
		// All-black reflectances carry no balance information
		ambient, diffuse, specular = 1, 0, 0
	} else {
		ambient, diffuse, specular = ambient/total, diffuse/total, specular/total
	}
	// Absorb rounding so the coefficients sum to 1 exactly
	specular = 1 - ambient - diffuse
	if specular < 0 {
		specular = 0
	}

	if e.textureFile == "" {
		return material.New(ambient, diffuse, specular, e.shininess, e.diffuse)
	}

	path := e.textureFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	texture, err := LoadTexture(path)
	if err != nil {
		return nil, err
	}
	return material.NewTextured(ambient, diffuse, specular, e.shininess, texture)
}

func parseColour(fields []string) (core.Colour, error) {
	if len(fields) == 1 {
		// A single value sets all three channels
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return core.Colour{}, err
		}
		return core.NewColour(v, v, v), nil
	}
	if len(fields) < 3 {
		return core.Colour{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var rgb [3]float64
	for i := range rgb {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Colour{}, err
		}
		rgb[i] = v
	}
	return core.NewColour(rgb[0], rgb[1], rgb[2]), nil
}

func parseFloat(fields []string) (float64, error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.ParseFloat(fields[0], 64)
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}
