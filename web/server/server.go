package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/export"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

const (
	DefaultTileSize = 32
	maxDimension    = 4096
)

// Server handles web requests for the ray tracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server. JSON scenes are looked up in scenesDir.
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string        `json:"scene"`  // Scene ID (e.g., "pyramid") or JSON scene name
	Width  int           `json:"width"`  // Image width, 0 keeps the scene's own
	Height int           `json:"height"` // Image height, 0 keeps the scene's own
	Depth  int           `json:"depth"`  // Recursion budget
	Format export.Format `json:"format"` // Encoding for /api/image
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir, log.Printf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// parseRenderRequest parses and validates the query parameters shared by all
// render endpoints
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 0, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 0, maxDimension); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 0, 64); err != nil {
		return nil, err
	}

	req.Format = export.FormatPNG
	if value := query.Get("format"); value != "" {
		if req.Format, err = export.ParseFormat(value); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// loadScene resolves the requested scene and applies resolution overrides.
// Only built-in IDs and the base names of JSON files in scenesDir are served.
func (s *Server) loadScene(req *RenderRequest) (*scene.Scene, error) {
	if !s.isKnownScene(req.Scene) {
		return nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}
	sceneObj, err := scene.Load(req.Scene, s.scenesDir)
	if err != nil {
		return nil, err
	}
	if req.Width > 0 {
		sceneObj.Settings.Resolution.Width = req.Width
	}
	if req.Height > 0 {
		sceneObj.Settings.Resolution.Height = req.Height
	}
	if r := sceneObj.Settings.Resolution; r.Width > maxDimension || r.Height > maxDimension {
		return nil, fmt.Errorf("scene resolution %dx%d exceeds %d", r.Width, r.Height, maxDimension)
	}
	return sceneObj, nil
}

// isKnownScene reports whether name is a built-in ID or a scene listed in scenesDir
func (s *Server) isKnownScene(name string) bool {
	for _, info := range scene.BuiltinScenes() {
		if info.ID == name {
			return true
		}
	}
	if name == "" || filepath.Base(name) != name || filepath.Ext(name) != "" {
		return false
	}
	configScenes, err := scene.ListConfigScenes(s.scenesDir, log.Printf)
	if err != nil {
		return false
	}
	for _, info := range configScenes {
		if filepath.Base(info.FilePath) == name+".json" {
			return true
		}
	}
	return false
}

// newCamera builds the camera a scene recommends
func newCamera(sceneObj *scene.Scene) *renderer.Camera {
	settings := sceneObj.Settings
	return renderer.NewCamera(settings.CameraPosition, settings.Resolution, settings.FocalLength)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
