package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
)

// maxPreallocatedElements bounds the slice capacity reserved from header counts
const maxPreallocatedElements = 1 << 20

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the vertex positions and triangle indices of a PLY mesh.
// Polygons with more than three vertices are fan triangulated.
type PLYData struct {
	Vertices []core.HVector
	Faces    []int // Triangle indices (3 per triangle)
}

// LoadPLY loads a PLY file and returns its vertex and face data
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParsePLY reads ASCII or binary PLY data. Only x, y, z and vertex_indices
// are kept; every other property is read and discarded.
func ParsePLY(reader io.Reader) (*PLYData, error) {
	buffered := bufio.NewReader(reader)
	header, err := parsePLYHeader(buffered)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var source plyValueReader
	switch header.Format {
	case "ascii":
		source = &asciiValueReader{scanner: newWordScanner(buffered)}
	case "binary_little_endian":
		source = &binaryValueReader{reader: buffered, order: binary.LittleEndian}
	case "binary_big_endian":
		source = &binaryValueReader{reader: buffered, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	// Header counts are untrusted, so the preallocation is capped
	data := &PLYData{
		Vertices: make([]core.HVector, 0, min(header.VertexCount, maxPreallocatedElements)),
		Faces:    make([]int, 0, 3*min(header.FaceCount, maxPreallocatedElements)),
	}

	for i := 0; i < header.VertexCount; i++ {
		var xyz [3]float64
		for _, prop := range header.VertexProps {
			values, err := readProperty(source, prop)
			if err != nil {
				return nil, fmt.Errorf("vertex %d, property %s: %w", i, prop.Name, err)
			}
			switch prop.Name {
			case "x":
				xyz[0] = values[0]
			case "y":
				xyz[1] = values[0]
			case "z":
				xyz[2] = values[0]
			}
		}
		data.Vertices = append(data.Vertices, core.NewHVector(xyz[0], xyz[1], xyz[2]))
	}

	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			values, err := readProperty(source, prop)
			if err != nil {
				return nil, fmt.Errorf("face %d, property %s: %w", i, prop.Name, err)
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				continue
			}
			if len(values) < 3 {
				return nil, fmt.Errorf("face %d has %d vertices", i, len(values))
			}
			indices := make([]int, len(values))
			for j, v := range values {
				if v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
					return nil, fmt.Errorf("face %d: invalid vertex index %v", i, v)
				}
				indices[j] = int(v)
			}
			for j := 1; j+1 < len(indices); j++ {
				data.Faces = append(data.Faces, indices[0], indices[j], indices[j+1])
			}
		}
	}

	return data, nil
}

// Shape builds a mesh from the loaded triangles
func (d *PLYData) Shape() (geometry.Shape, error) {
	return geometry.NewMeshFromIndices(d.Vertices, d.Faces)
}

// parsePLYHeader parses the PLY header, leaving reader at the first body byte
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var currentElement string

	for lineNumber := 1; ; lineNumber++ {
		raw, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended before end_header: %w", err)
		}
		line := strings.TrimSpace(raw)

		if lineNumber == 1 {
			if line != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
			}
			continue
		}
		if line == "end_header" {
			return header, nil
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element definition: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				if count > 0 {
					return nil, fmt.Errorf("unsupported element %q", currentElement)
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		return PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}, nil
	}
	if getTypeSize(parts[0]) == 0 {
		return PLYProperty{}, fmt.Errorf("unknown property type %q", parts[0])
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

// getTypeSize returns the size in bytes of a PLY scalar type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

// readProperty returns the scalar value, or the list elements, of one property
func readProperty(source plyValueReader, prop PLYProperty) ([]float64, error) {
	if !prop.IsList {
		v, err := source.read(prop.Type)
		return []float64{v}, err
	}
	count, err := source.read(prop.ListType)
	if err != nil {
		return nil, err
	}
	if count < 0 || count != math.Trunc(count) {
		return nil, fmt.Errorf("invalid list length %v", count)
	}
	values := make([]float64, int(count))
	for i := range values {
		if values[i], err = source.read(prop.DataType); err != nil {
			return nil, err
		}
	}
	return values, nil
}

type plyValueReader interface {
	read(dataType string) (float64, error)
}

type binaryValueReader struct {
	reader io.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (r *binaryValueReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	b := r.buf[:size]
	if _, err := io.ReadFull(r.reader, b); err != nil {
		return 0, err
	}
	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	case "double", "float64":
		return math.Float64frombits(r.order.Uint64(b)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(b)), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(b)), nil
	case "char", "int8":
		return float64(int8(b[0])), nil
	default: // uchar, uint8
		return float64(b[0]), nil
	}
}

type asciiValueReader struct {
	scanner *bufio.Scanner
}

func newWordScanner(reader io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanWords)
	return scanner
}

func (r *asciiValueReader) read(dataType string) (float64, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(r.scanner.Text(), 64)
}
