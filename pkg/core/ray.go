package core

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    HVector
	Direction HVector
}

// NewRay creates a new ray
func NewRay(origin, direction HVector) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter k along the ray
func (r Ray) At(k float64) HVector {
	return r.Origin.Add(r.Direction.Scale(k))
}
