package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/transform"
)

// Config is the JSON description of a scene
type Config struct {
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Width       int         `json:"width,omitempty"`
	Height      int         `json:"height,omitempty"`
	MaxDepth    int         `json:"depth,omitempty"`
	Camera      CameraCfg   `json:"camera"`
	Background  *[3]float64 `json:"background,omitempty"` // defaults to black
	Lights      []LightCfg  `json:"lights"`
	Objects     []ObjectCfg `json:"objects"`
}

type CameraCfg struct {
	Position    [3]float64 `json:"position"`
	FocalLength float64    `json:"focalLength,omitempty"` // defaults 1
}

type LightCfg struct {
	Position [3]float64  `json:"position"`
	Colour   *[3]float64 `json:"colour,omitempty"` // defaults white
}

// Rotation in degrees for JSON (friendlier than radians).
type RotationDeg struct {
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Radians converts to the orientation used by transforms
func (r RotationDeg) Radians() transform.Orientation {
	return transform.Orientation{Y: r.Y * math.Pi / 180, Z: r.Z * math.Pi / 180}
}

type TransformCfg struct {
	Scale       *[3]float64 `json:"scale,omitempty"` // defaults 1 on each axis
	Position    [3]float64  `json:"position"`
	RotationDeg RotationDeg `json:"rotationDeg"`
}

type MaterialCfg struct {
	Ambient   float64     `json:"ambient"`
	Diffuse   float64     `json:"diffuse"`
	Specular  float64     `json:"specular"`
	Shininess float64     `json:"shininess"`
	Colour    *[3]float64 `json:"colour,omitempty"`  // defaults white
	Texture   string      `json:"texture,omitempty"` // image file, relative to the config
	Checker   *CheckerCfg `json:"checker,omitempty"`
}

type CheckerCfg struct {
	Size    int        `json:"size"` // texels per square on a 256x128 map
	Colour1 [3]float64 `json:"colour1"`
	Colour2 [3]float64 `json:"colour2"`
}

// ObjectCfg describes one top-level object. Shape is one of sphere,
// triangle, mesh, obj or ply.
type ObjectCfg struct {
	Shape     string        `json:"shape"`
	Vertices  [][3]float64  `json:"vertices,omitempty"` // triangle and mesh
	Faces     []int         `json:"faces,omitempty"`    // mesh
	File      string        `json:"file,omitempty"`     // obj and ply
	Transform *TransformCfg `json:"transform,omitempty"`
	Material  *MaterialCfg  `json:"material,omitempty"` // defaults to material.Default()
}

// LoadConfig reads a JSON scene file and builds the scene. Relative paths
// inside the file are resolved against the file's directory.
func LoadConfig(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s, err := cfg.Build(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseConfig decodes a JSON scene description, rejecting unknown fields
func ParseConfig(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return &cfg, nil
}

// Build validates the configuration and assembles the scene
func (c *Config) Build(baseDir string) (*Scene, error) {
	s := New(nil, nil)

	if c.Width < 0 || c.Height < 0 {
		return nil, fmt.Errorf("resolution must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Width > 0 {
		s.Settings.Resolution.Width = c.Width
	}
	if c.Height > 0 {
		s.Settings.Resolution.Height = c.Height
	}
	if c.MaxDepth < 0 {
		return nil, fmt.Errorf("depth must be >= 0, got %d", c.MaxDepth)
	}
	s.Settings.MaxDepth = c.MaxDepth

	s.Settings.CameraPosition = vector(c.Camera.Position)
	if c.Camera.FocalLength < 0 {
		return nil, fmt.Errorf("camera focalLength must be > 0, got %g", c.Camera.FocalLength)
	}
	if c.Camera.FocalLength > 0 {
		s.Settings.FocalLength = c.Camera.FocalLength
	}
	if c.Background != nil {
		s.Background = colour(*c.Background)
	}

	for _, lc := range c.Lights {
		s.AddLight(lc.Build())
	}

	for i, oc := range c.Objects {
		obj, err := oc.Build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("objects[%d] (%s): %w", i, oc.Shape, err)
		}
		s.AddObject(obj)
	}
	return s, nil
}

// Build creates the point light
func (lc LightCfg) Build() lights.Light {
	if lc.Colour == nil {
		return lights.NewPointLight(vector(lc.Position))
	}
	return lights.NewColouredPointLight(vector(lc.Position), colour(*lc.Colour))
}

// Build converts the JSON transform, defaulting scale to 1 on each axis
func (tc *TransformCfg) Build() transform.AffineTransformation {
	if tc == nil {
		return transform.Identity()
	}
	t := transform.Identity()
	if tc.Scale != nil {
		t.Scale = *tc.Scale
	}
	t.Position = tc.Position
	t.Orientation = tc.RotationDeg.Radians()
	return t
}

// Build creates the material, loading any texture relative to baseDir
func (mc *MaterialCfg) Build(baseDir string) (*material.Material, error) {
	if mc == nil {
		return material.Default(), nil
	}

	var texture material.ColourSource
	switch {
	case mc.Texture != "" && mc.Checker != nil:
		return nil, fmt.Errorf("material: texture and checker are mutually exclusive")
	case mc.Texture != "":
		path := mc.Texture
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		tex, err := loaders.LoadTexture(path)
		if err != nil {
			return nil, err
		}
		texture = tex
	case mc.Checker != nil:
		if mc.Checker.Size <= 0 {
			return nil, fmt.Errorf("material: checker size must be > 0")
		}
		texture = material.NewCheckerboardTexture(256, 128, mc.Checker.Size,
			colour(mc.Checker.Colour1), colour(mc.Checker.Colour2))
	}

	base := core.White
	if mc.Colour != nil {
		base = colour(*mc.Colour)
	}
	m, err := material.New(mc.Ambient, mc.Diffuse, mc.Specular, mc.Shininess, base)
	if err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}
	m.Texture = texture
	return m, nil
}

// Build creates the shape and wraps it in a transformed object
func (oc ObjectCfg) Build(baseDir string) (*geometry.Object, error) {
	shape, err := oc.buildShape(baseDir)
	if err != nil {
		return nil, err
	}
	m, err := oc.Material.Build(baseDir)
	if err != nil {
		return nil, err
	}
	return geometry.NewObject(shape, oc.Transform.Build(), m)
}

func (oc ObjectCfg) buildShape(baseDir string) (geometry.Shape, error) {
	resolve := func() (string, error) {
		if oc.File == "" {
			return "", fmt.Errorf("missing file")
		}
		if filepath.IsAbs(oc.File) {
			return oc.File, nil
		}
		return filepath.Join(baseDir, oc.File), nil
	}

	switch oc.Shape {
	case "sphere":
		return geometry.NewSphere(), nil
	case "triangle":
		if len(oc.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(oc.Vertices))
		}
		return geometry.NewTriangle(vector(oc.Vertices[0]), vector(oc.Vertices[1]), vector(oc.Vertices[2])), nil
	case "mesh":
		vertices := make([]core.HVector, len(oc.Vertices))
		for i, v := range oc.Vertices {
			vertices[i] = vector(v)
		}
		return geometry.NewMeshFromIndices(vertices, oc.Faces)
	case "obj":
		path, err := resolve()
		if err != nil {
			return nil, err
		}
		data, err := loaders.LoadOBJ(path)
		if err != nil {
			return nil, err
		}
		return data.Shape()
	case "ply":
		path, err := resolve()
		if err != nil {
			return nil, err
		}
		data, err := loaders.LoadPLY(path)
		if err != nil {
			return nil, err
		}
		return data.Shape()
	default:
		return nil, fmt.Errorf("unknown shape %q", oc.Shape)
	}
}

func vector(v [3]float64) core.HVector {
	return core.NewHVector(v[0], v[1], v[2])
}

func colour(c [3]float64) core.Colour {
	return core.NewColour(c[0], c[1], c[2])
}
