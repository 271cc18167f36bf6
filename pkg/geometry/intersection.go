package geometry

import "github.com/df07/go-phong-raytracer/pkg/core"

// FindClosestIntersection returns the hit nearest the ray origin, by squared
// distance to the hit point. On an exact tie the first object wins. It serves
// both the top-level scene and composite shapes.
func FindClosestIntersection[T Intersectable](objects []T, ray core.Ray) (*Hit, bool) {
	var closest *Hit
	closestDistance := 0.0

	for _, object := range objects {
		hit, ok := object.Intersect(ray)
		if !ok {
			continue
		}
		distance := hit.Point().Subtract(ray.Origin).MagnitudeSquared()
		if closest == nil || distance < closestDistance {
			closest = hit
			closestDistance = distance
		}
	}

	return closest, closest != nil
}
