package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit      bool                   `json:"hit"`
	Point    [3]float64             `json:"point"`
	Normal   [3]float64             `json:"normal"`
	Distance float64                `json:"distance"`
	UV       [2]float64             `json:"uv"`
	Colour   string                 `json:"colour"` // Shaded colour as a hex triplet
	Material map[string]interface{} `json:"material,omitempty"`
}

// handleInspect casts the primary ray through one pixel and reports what it hit
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}
	sceneObj, err := s.loadScene(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resolution := sceneObj.Settings.Resolution
	query := r.URL.Query()
	column, err := parseIntParam(query, "x", 0, 0, resolution.Width-1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	row, err := parseIntParam(query, "y", 0, 0, resolution.Height-1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, row, column, req.Depth))
}

// inspectPixel traces the ray through pixel (row, column) without the renderer
func inspectPixel(sceneObj *scene.Scene, row, column, depth int) InspectResponse {
	ray := newCamera(sceneObj).GeneratePixelRay(row, column)
	response := InspectResponse{Colour: hexColour(sceneObj.Trace(ray, depth))}

	hit, ok := geometry.FindClosestIntersection(sceneObj.Objects, ray)
	if !ok {
		return response
	}

	response.Hit = true
	response.Point = hit.Point().Array()
	response.Normal = hit.Normal.Direction.Array()
	response.Distance = hit.Point().Subtract(ray.Origin).Magnitude()
	response.UV = [2]float64{hit.UV.U, hit.UV.V}
	response.Material = materialInfo(hit.Material)
	return response
}

// materialInfo describes the coefficients a hit is shaded with
func materialInfo(m *material.Material) map[string]interface{} {
	properties := make(map[string]interface{})
	if m == nil {
		properties["inherited"] = "default"
		m = material.Default()
	}
	properties["ambient"] = m.Ambient
	properties["diffuse"] = m.Diffuse
	properties["specular"] = m.Specular
	properties["shininess"] = m.Shininess
	properties["colour"] = hexColour(m.Colour)
	properties["textured"] = m.Texture != nil
	return properties
}

func hexColour(c core.Colour) string {
	r, g, b := c.Quantize()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
