package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Shade computes the local Phong illumination at hit for a ray travelling
// along direction. Diffuse and specular terms are averaged over the lights,
// so a scene with no lights is lit by the ambient term alone. Nothing is
// clamped here.
//
// No secondary rays are spawned yet, so depth is passed through unused;
// any reflection or refraction term must stop recursing once depth reaches 0.
func (s *Scene) Shade(direction core.HVector, hit *geometry.Hit, depth int) core.Colour {
	m := hit.Material
	if m == nil {
		m = material.Default()
	}
	base := m.ColourAt(hit.UV)
	ambient := base.Scale(m.Ambient)

	normal, err := hit.Normal.Direction.TryNormalized()
	if err != nil || len(s.Lights) == 0 {
		return ambient
	}

	incidentReversed := direction.Reverse()
	contributions := core.Black
	for _, light := range s.Lights {
		sample := light.Sample(hit.Point())
		if sample.Distance == 0 {
			continue
		}

		diffuseFactor := sample.Direction.Dot(normal)
		if diffuseFactor < 0 {
			continue // surface faces away from this light
		}
		contributions = contributions.Add(base.Scale(m.Diffuse * diffuseFactor))

		reflected := sample.Direction.Reflect(normal)
		specularFactor := incidentReversed.Dot(reflected)
		if specularFactor < 0 {
			continue
		}
		contributions = contributions.Add(sample.Colour.Scale(m.Specular * specularFactor))
	}

	return ambient.Add(contributions.Scale(1.0 / float64(len(s.Lights))))
}
