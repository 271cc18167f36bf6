package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroVector is returned when a zero-length vector is normalized
var ErrZeroVector = errors.New("cannot normalize a zero-length vector")

// HVector is a homogeneous point or direction. W tags points (1); arithmetic
// that produces a new vector always restores W to 1, and W never takes part in
// dot or cross products.
type HVector struct {
	X, Y, Z, W float64
}

// NewHVector creates a new homogeneous point
func NewHVector(x, y, z float64) HVector {
	return HVector{X: x, Y: y, Z: z, W: 1}
}

// Add returns the sum of two vectors
func (v HVector) Add(other HVector) HVector {
	return HVector{v.X + other.X, v.Y + other.Y, v.Z + other.Z, 1}
}

// Subtract returns the difference of two vectors
func (v HVector) Subtract(other HVector) HVector {
	return HVector{v.X - other.X, v.Y - other.Y, v.Z - other.Z, 1}
}

// Scale returns the vector with x, y and z multiplied by factor
func (v HVector) Scale(factor float64) HVector {
	return HVector{v.X * factor, v.Y * factor, v.Z * factor, 1}
}

// Dot returns the dot product of the first three components
func (v HVector) Dot(other HVector) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the three-component cross product
func (v HVector) Cross(other HVector) HVector {
	return HVector{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
		W: 1,
	}
}

// MagnitudeSquared returns the squared magnitude of the vector
func (v HVector) MagnitudeSquared() float64 {
	return v.Dot(v)
}

// Magnitude returns the magnitude of the vector
func (v HVector) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSquared())
}

// TryNormalized returns a unit vector in the same direction, or ErrZeroVector
func (v HVector) TryNormalized() (HVector, error) {
	magnitude := v.Magnitude()
	if magnitude == 0 {
		return HVector{}, ErrZeroVector
	}
	return v.Scale(1 / magnitude), nil
}

// Normalized returns a unit vector in the same direction.
// It panics on a zero vector; callers must not pass degenerate directions.
func (v HVector) Normalized() HVector {
	n, err := v.TryNormalized()
	if err != nil {
		panic(fmt.Errorf("normalize %v: %w", v, err))
	}
	return n
}

// Reflect mirrors the vector about normal: v - normal*(2*(v.normal))
func (v HVector) Reflect(normal HVector) HVector {
	return v.Subtract(normal.Scale(2 * v.Dot(normal)))
}

// Reverse returns the vector pointing the opposite way
func (v HVector) Reverse() HVector {
	return v.Scale(-1)
}

// Array returns the x, y and z components
func (v HVector) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// String formats the vector for logs and test failures
func (v HVector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Vec2 holds texture coordinates
type Vec2 struct {
	U, V float64
}

// NewVec2 creates a new Vec2
func NewVec2(u, v float64) Vec2 {
	return Vec2{U: u, V: v}
}
