package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// EnergyTolerance bounds how far ambient+diffuse+specular may stray from 1
const EnergyTolerance = 1e-9

// ErrEnergyNotConserved is returned when the reflectance coefficients do not sum to 1
var ErrEnergyNotConserved = errors.New("ambient + diffuse + specular must equal 1")

// Material holds Phong reflectance coefficients and a base colour
type Material struct {
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
	Colour    core.Colour
	Texture   ColourSource // Optional; overrides Colour when set
}

// New creates a material, rejecting coefficients that are out of [0,1] or
// that do not sum to 1
func New(ambient, diffuse, specular, shininess float64, colour core.Colour) (*Material, error) {
	coefficients := []struct {
		name  string
		value float64
	}{{"ambient", ambient}, {"diffuse", diffuse}, {"specular", specular}}
	for _, k := range coefficients {
		if k.value < 0 || k.value > 1 || math.IsNaN(k.value) {
			return nil, fmt.Errorf("%s coefficient %g outside [0,1]", k.name, k.value)
		}
	}
	total := ambient + diffuse + specular
	if math.Abs(total-1) > EnergyTolerance {
		return nil, fmt.Errorf("coefficients sum to %g: %w", total, ErrEnergyNotConserved)
	}
	return &Material{
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
		Colour:    colour,
	}, nil
}

// MustNew is New for literal presets; it panics on invalid coefficients
func MustNew(ambient, diffuse, specular, shininess float64, colour core.Colour) *Material {
	m, err := New(ambient, diffuse, specular, shininess, colour)
	if err != nil {
		panic(err)
	}
	return m
}

// NewTextured creates a material whose colour is looked up from texture
func NewTextured(ambient, diffuse, specular, shininess float64, texture ColourSource) (*Material, error) {
	m, err := New(ambient, diffuse, specular, shininess, core.White)
	if err != nil {
		return nil, err
	}
	m.Texture = texture
	return m, nil
}

// Default returns the material used when nothing along the object graph supplies one
func Default() *Material {
	return &Material{
		Ambient:   1.0 / 3.0,
		Diffuse:   1.0 / 3.0,
		Specular:  1.0 / 3.0,
		Shininess: 4,
		Colour:    core.White,
	}
}

// ColourAt returns the base colour at the given texture coordinates
func (m *Material) ColourAt(uv core.Vec2) core.Colour {
	if m.Texture == nil {
		return m.Colour
	}
	return m.Texture.Evaluate(uv)
}
