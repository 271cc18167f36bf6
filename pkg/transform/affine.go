package transform

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ErrDegenerateScale is returned when a scale factor makes the transform non-invertible
var ErrDegenerateScale = errors.New("scale factors must be non-zero and finite")

// Orientation holds rotation angles in radians, applied around Y then Z
type Orientation struct {
	Y, Z float64
}

// AffineTransformation holds the authoring parameters of an object's placement
type AffineTransformation struct {
	Scale       [3]float64
	Position    [3]float64
	Orientation Orientation
}

// Identity returns a transformation that leaves geometry unchanged
func Identity() AffineTransformation {
	return AffineTransformation{Scale: [3]float64{1, 1, 1}}
}

// Translate returns a unit-scale, unrotated transformation placed at x, y, z
func Translate(x, y, z float64) AffineTransformation {
	t := Identity()
	t.Position = [3]float64{x, y, z}
	return t
}

// AffineMatrix holds the object-to-world matrix, its world-to-object inverse
// and the inverse transpose used for normals. Immutable once built.
type AffineMatrix struct {
	actual           [4][4]float64
	inverse          [4][4]float64
	inverseTranspose [4][4]float64
}

// NewAffineMatrix builds actual = T*Rz*Ry*S and its analytic inverse
// S^-1 * Ry^-1 * Rz^-1 * T^-1.
func NewAffineMatrix(t AffineTransformation) (*AffineMatrix, error) {
	for axis, s := range t.Scale {
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("axis %d scale %g: %w", axis, s, ErrDegenerateScale)
		}
	}

	sx, sy, sz := t.Scale[0], t.Scale[1], t.Scale[2]
	px, py, pz := t.Position[0], t.Position[1], t.Position[2]
	ry, rz := t.Orientation.Y, t.Orientation.Z

	rotation := mat.NewDense(4, 4, nil)
	rotation.Mul(rotationZ(rz), rotationY(ry))
	actual := mat.NewDense(4, 4, nil)
	actual.Product(translation(px, py, pz), rotation, scaling(sx, sy, sz))

	inverseRotation := mat.NewDense(4, 4, nil)
	inverseRotation.Mul(rotationY(-ry), rotationZ(-rz))
	inverse := mat.NewDense(4, 4, nil)
	inverse.Product(scaling(1/sx, 1/sy, 1/sz), inverseRotation, translation(-px, -py, -pz))

	return &AffineMatrix{
		actual:           toArray(actual),
		inverse:          toArray(inverse),
		inverseTranspose: toArray(inverse.T()),
	}, nil
}

// MustAffineMatrix is NewAffineMatrix for literal transformations; it panics on error
func MustAffineMatrix(t AffineTransformation) *AffineMatrix {
	m, err := NewAffineMatrix(t)
	if err != nil {
		panic(err)
	}
	return m
}

// ShiftPoint moves a world-space point into object space
func (m *AffineMatrix) ShiftPoint(p core.HVector) core.HVector {
	return applyPoint(&m.inverse, p)
}

// ShiftVector moves a world-space direction into object space
func (m *AffineMatrix) ShiftVector(v core.HVector) core.HVector {
	return applyLinear(&m.inverse, v)
}

// Shift moves a world-space ray into object space, re-normalizing its direction
func (m *AffineMatrix) Shift(ray core.Ray) core.Ray {
	return core.Ray{
		Origin:    m.ShiftPoint(ray.Origin),
		Direction: m.ShiftVector(ray.Direction).Normalized(),
	}
}

// UnshiftPoint moves an object-space point into world space
func (m *AffineMatrix) UnshiftPoint(p core.HVector) core.HVector {
	return applyPoint(&m.actual, p)
}

// UnshiftVector moves an object-space normal into world space using the
// inverse transpose, so non-uniform scale does not skew it
func (m *AffineMatrix) UnshiftVector(v core.HVector) core.HVector {
	return applyLinear(&m.inverseTranspose, v)
}

// Unshift moves an object-space normal ray into world space
func (m *AffineMatrix) Unshift(ray core.Ray) core.Ray {
	return core.Ray{
		Origin:    m.UnshiftPoint(ray.Origin),
		Direction: m.UnshiftVector(ray.Direction).Normalized(),
	}
}

// Actual returns a copy of the object-to-world matrix
func (m *AffineMatrix) Actual() *mat.Dense {
	return fromArray(&m.actual)
}

// Inverse returns a copy of the world-to-object matrix
func (m *AffineMatrix) Inverse() *mat.Dense {
	return fromArray(&m.inverse)
}

func scaling(x, y, z float64) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	})
}

func translation(x, y, z float64) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	})
}

func rotationY(angle float64) *mat.Dense {
	sin, cos := math.Sincos(angle)
	return mat.NewDense(4, 4, []float64{
		cos, 0, sin, 0,
		0, 1, 0, 0,
		-sin, 0, cos, 0,
		0, 0, 0, 1,
	})
}

func rotationZ(angle float64) *mat.Dense {
	sin, cos := math.Sincos(angle)
	return mat.NewDense(4, 4, []float64{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

func toArray(m mat.Matrix) [4][4]float64 {
	var out [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

func fromArray(a *[4][4]float64) *mat.Dense {
	data := make([]float64, 0, 16)
	for i := 0; i < 4; i++ {
		data = append(data, a[i][:]...)
	}
	return mat.NewDense(4, 4, data)
}

// applyPoint multiplies the full 4x4 matrix with a point (w = 1)
func applyPoint(m *[4][4]float64, p core.HVector) core.HVector {
	return core.HVector{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
		W: 1,
	}
}

// applyLinear multiplies the upper 3x3 block with a direction, ignoring translation
func applyLinear(m *[4][4]float64, v core.HVector) core.HVector {
	return core.HVector{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
		W: 1,
	}
}
