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
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// FaceVertex indexes into the vertex, texture-coordinate and normal lists.
// Indices are zero-based; TexCoord and Normal are -1 when the face omits them.
type FaceVertex struct {
	Vertex   int
	TexCoord int
	Normal   int
}

// Face is one polygon with the material and group active when it was declared
type Face struct {
	Vertices []FaceVertex
	Material string
	Group    string
}

// OBJData contains the geometry parsed from a Wavefront OBJ file
type OBJData struct {
	Vertices  []core.HVector
	TexCoords []core.Vec2
	Normals   []core.HVector
	Faces     []Face
	Groups    []string
	Materials map[string]*material.Material // Merged from every mtllib statement
}

// MaterialLibraryLoader resolves an mtllib name to its materials
type MaterialLibraryLoader func(name string) (map[string]*material.Material, error)

// LoadOBJ loads an OBJ file, resolving mtllib statements relative to its directory
func LoadOBJ(filename string) (*OBJData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	baseDir := filepath.Dir(filename)
	data, err := ParseOBJ(file, func(name string) (map[string]*material.Material, error) {
		return LoadMTL(filepath.Join(baseDir, name))
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParseOBJ reads v, vt, vn, f, g, o, mtllib and usemtl statements. Other
// statements are ignored. libraries may be nil when mtllib should be skipped.
func ParseOBJ(reader io.Reader, libraries MaterialLibraryLoader) (*OBJData, error) {
	data := &OBJData{Materials: make(map[string]*material.Material)}
	currentMaterial := ""
	currentGroup := ""

	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(stripComment(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var xyz [3]float64
			xyz, err = parseVector(fields[1:])
			data.Vertices = append(data.Vertices, core.NewHVector(xyz[0], xyz[1], xyz[2]))
		case "vn":
			var xyz [3]float64
			xyz, err = parseVector(fields[1:])
			data.Normals = append(data.Normals, core.NewHVector(xyz[0], xyz[1], xyz[2]))
		case "vt":
			var uv core.Vec2
			uv, err = parseTexCoord(fields[1:])
			data.TexCoords = append(data.TexCoords, uv)
		case "f":
			var face Face
			face, err = data.parseFace(fields[1:])
			face.Material = currentMaterial
			face.Group = currentGroup
			data.Faces = append(data.Faces, face)
		case "g", "o":
			currentGroup = strings.Join(fields[1:], " ")
			data.Groups = append(data.Groups, currentGroup)
		case "usemtl":
			currentMaterial = strings.Join(fields[1:], " ")
		case "mtllib":
			if libraries == nil {
				continue
			}
			for _, name := range fields[1:] {
				var materials map[string]*material.Material
				if materials, err = libraries(name); err != nil {
					break
				}
				for k, m := range materials {
					data.Materials[k] = m
				}
			}
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNumber, fields[0], err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	return data, nil
}

// parseFace parses index triplets of the forms v, v/vt, v//vn and v/vt/vn.
// Negative indices count back from the most recently declared element.
func (d *OBJData) parseFace(fields []string) (Face, error) {
	if len(fields) < 3 {
		return Face{}, fmt.Errorf("face needs at least 3 vertices, got %d", len(fields))
	}
	face := Face{Vertices: make([]FaceVertex, len(fields))}
	for i, field := range fields {
		parts := strings.Split(field, "/")
		if len(parts) > 3 || parts[0] == "" {
			return Face{}, fmt.Errorf("malformed vertex reference %q", field)
		}

		fv := FaceVertex{TexCoord: -1, Normal: -1}
		var err error
		if fv.Vertex, err = resolveIndex(parts[0], len(d.Vertices)); err != nil {
			return Face{}, err
		}
		if len(parts) > 1 && parts[1] != "" {
			if fv.TexCoord, err = resolveIndex(parts[1], len(d.TexCoords)); err != nil {
				return Face{}, err
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if fv.Normal, err = resolveIndex(parts[2], len(d.Normals)); err != nil {
				return Face{}, err
			}
		}
		face.Vertices[i] = fv
	}
	return face, nil
}

// resolveIndex converts a one-based or negative OBJ index to a zero-based one
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	index := n - 1
	if n < 0 {
		index = count + n
	}
	if n == 0 || index < 0 || index >= count {
		return 0, fmt.Errorf("index %d out of range (%d defined)", n, count)
	}
	return index, nil
}

func parseVector(fields []string) ([3]float64, error) {
	var xyz [3]float64
	if len(fields) < 3 {
		return xyz, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := range xyz {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return xyz, err
		}
		xyz[i] = v
	}
	return xyz, nil
}

func parseTexCoord(fields []string) (core.Vec2, error) {
	if len(fields) == 0 {
		return core.Vec2{}, fmt.Errorf("missing texture coordinates")
	}
	u, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	v := 0.0
	if len(fields) > 1 {
		if v, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return core.Vec2{}, err
		}
	}
	return core.NewVec2(u, v), nil
}

// TriangleCount returns the number of triangles after fan triangulation
func (d *OBJData) TriangleCount() int {
	count := 0
	for _, face := range d.Faces {
		count += len(face.Vertices) - 2
	}
	return count
}

// Shape triangulates every face as a fan around its first vertex. When any
// face selected a material the result is a GroupedMesh carrying per-triangle
// materials; otherwise it is a Mesh whose triangles inherit the material of
// the enclosing object.
func (d *OBJData) Shape() (geometry.Shape, error) {
	var triangles []geometry.Shape
	var materials []*material.Material
	hasMaterials := false

	for i, face := range d.Faces {
		var m *material.Material
		if face.Material != "" {
			var ok bool
			if m, ok = d.Materials[face.Material]; !ok {
				return nil, fmt.Errorf("face %d: unknown material %q", i+1, face.Material)
			}
			hasMaterials = true
		}

		first := d.Vertices[face.Vertices[0].Vertex]
		for j := 1; j+1 < len(face.Vertices); j++ {
			triangles = append(triangles, geometry.NewTriangle(
				first,
				d.Vertices[face.Vertices[j].Vertex],
				d.Vertices[face.Vertices[j+1].Vertex],
			))
			materials = append(materials, m)
		}
	}

	if hasMaterials {
		return geometry.NewGroupedMesh(triangles, materials)
	}
	return geometry.NewMesh(triangles), nil
}
