package loaders

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
)

// createTestPLY creates a binary little-endian square made of two triangles
func createTestPLY(t *testing.T, filename string, includeNormals bool) {
	var buf bytes.Buffer

	buf.WriteString("ply\n")
	buf.WriteString("format binary_little_endian 1.0\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	if includeNormals {
		buf.WriteString("property float nx\n")
		buf.WriteString("property float ny\n")
		buf.WriteString("property float nz\n")
	}
	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	vertices := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for _, v := range vertices {
		binary.Write(&buf, binary.LittleEndian, v)
		if includeNormals {
			binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 1})
		}
	}

	faces := [][3]int32{{0, 1, 2}, {0, 2, 3}}
	for _, f := range faces {
		binary.Write(&buf, binary.LittleEndian, uint8(3))
		binary.Write(&buf, binary.LittleEndian, f)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to create test PLY file: %v", err)
	}
}

func assertSquare(t *testing.T, data *PLYData) {
	t.Helper()
	expectedVertices := []core.HVector{
		core.NewHVector(0, 0, 0),
		core.NewHVector(1, 0, 0),
		core.NewHVector(1, 1, 0),
		core.NewHVector(0, 1, 0),
	}
	if len(data.Vertices) != len(expectedVertices) {
		t.Fatalf("Expected %d vertices, got %d", len(expectedVertices), len(data.Vertices))
	}
	for i, expected := range expectedVertices {
		if data.Vertices[i] != expected {
			t.Errorf("Vertex %d: expected %v, got %v", i, expected, data.Vertices[i])
		}
	}

	expectedFaces := []int{0, 1, 2, 0, 2, 3}
	if len(data.Faces) != len(expectedFaces) {
		t.Fatalf("Expected %d face indices, got %d", len(expectedFaces), len(data.Faces))
	}
	for i, expected := range expectedFaces {
		if data.Faces[i] != expected {
			t.Errorf("Face index %d: expected %d, got %d", i, expected, data.Faces[i])
		}
	}
}

func TestLoadPLY_Basic(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test_basic.ply")
	createTestPLY(t, testFile, false)

	data, err := LoadPLY(testFile)
	if err != nil {
		t.Fatalf("Failed to load PLY: %v", err)
	}
	assertSquare(t, data)
}

func TestLoadPLY_SkipsExtraProperties(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test_normals.ply")
	createTestPLY(t, testFile, true)

	data, err := LoadPLY(testFile)
	if err != nil {
		t.Fatalf("Failed to load PLY: %v", err)
	}
	assertSquare(t, data)
}

func TestParsePLY_ASCIIQuad(t *testing.T) {
	content := `ply
format ascii 1.0
comment a single quad
element vertex 4
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`
	data, err := ParsePLY(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Failed to parse ASCII PLY: %v", err)
	}
	assertSquare(t, data)

	shape, err := data.Shape()
	if err != nil {
		t.Fatalf("Shape failed: %v", err)
	}
	mesh, ok := shape.(*geometry.Mesh)
	if !ok {
		t.Fatalf("Expected *geometry.Mesh, got %T", shape)
	}
	if mesh.GetTriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.GetTriangleCount())
	}

	ray := core.NewRay(core.NewHVector(0.75, 0.25, -1), core.NewHVector(0, 0, 1))
	if _, hit := mesh.Intersection(ray); !hit {
		t.Error("Expected ray through the quad to hit")
	}
}

func TestParsePLY_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing magic", "format ascii 1.0\nend_header\n"},
		{"no end_header", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"unknown format", "ply\nformat fancy 1.0\nend_header\n"},
		{"unknown type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n"},
		{"truncated body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n"},
		{"negative vertex count", "ply\nformat ascii 1.0\nelement vertex -1\nproperty float x\nend_header\n"},
		{"huge vertex count", "ply\nformat ascii 1.0\nelement vertex 4000000000000\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n"},
		{"negative face count", "ply\nformat ascii 1.0\nelement vertex 0\nelement face -3\nproperty list uchar int vertex_indices\nend_header\n"},
		{"fractional face index", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar float vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1.5 2\n"},
		{"negative face index", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 -1 2\n"},
		{"degenerate face", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n2 0 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePLY(strings.NewReader(tt.content)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadPLY_NonExistentFile(t *testing.T) {
	_, err := LoadPLY("nonexistent.ply")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestParsePLYHeader(t *testing.T) {
	headerContent := `ply
format binary_little_endian 1.0
comment Test PLY file
element vertex 100
property float x
property float y
property float z
property float nx
property float ny
property float nz
property uchar red
property uchar green
property uchar blue
element face 50
property list uchar int vertex_indices
end_header
`
	header, err := parsePLYHeader(bufio.NewReader(strings.NewReader(headerContent)))
	if err != nil {
		t.Fatalf("Failed to parse header: %v", err)
	}

	if header.Format != "binary_little_endian" {
		t.Errorf("Expected format 'binary_little_endian', got '%s'", header.Format)
	}
	if header.Version != "1.0" {
		t.Errorf("Expected version '1.0', got '%s'", header.Version)
	}
	if header.VertexCount != 100 {
		t.Errorf("Expected 100 vertices, got %d", header.VertexCount)
	}
	if header.FaceCount != 50 {
		t.Errorf("Expected 50 faces, got %d", header.FaceCount)
	}
	if len(header.VertexProps) != 9 {
		t.Errorf("Expected 9 vertex properties, got %d", len(header.VertexProps))
	}
	if len(header.FaceProps) != 1 || !header.FaceProps[0].IsList {
		t.Errorf("Expected 1 list face property, got %+v", header.FaceProps)
	}
}

func TestGetTypeSize(t *testing.T) {
	tests := []struct {
		dataType string
		expected int
	}{
		{"float", 4},
		{"float32", 4},
		{"int", 4},
		{"uint32", 4},
		{"double", 8},
		{"float64", 8},
		{"short", 2},
		{"ushort", 2},
		{"char", 1},
		{"uchar", 1},
		{"unknown", 0},
	}

	for _, test := range tests {
		result := getTypeSize(test.dataType)
		if result != test.expected {
			t.Errorf("getTypeSize(%s): expected %d, got %d", test.dataType, test.expected, result)
		}
	}
}
