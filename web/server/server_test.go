package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// writeTestScenes creates root/scenes holding ball.json and huge.json, and
// root/outside.json next to the scenes directory. It returns root.
func writeTestScenes(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "scenes")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	outside := `{"width": 8, "height": 8, "objects": [{"shape": "sphere"}]}`
	if err := os.WriteFile(filepath.Join(root, "outside.json"), []byte(outside), 0644); err != nil {
		t.Fatal(err)
	}
	config := `{"name": "Ball", "width": 8, "height": 8, "camera": {"position": [0, 0, -3]},
	            "lights": [{"position": [0, 5, -5]}], "objects": [{"shape": "sphere"}]}`
	if err := os.WriteFile(filepath.Join(dir, "ball.json"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}
	huge := `{"name": "Huge", "width": 100000, "height": 8, "objects": [{"shape": "sphere"}]}`
	if err := os.WriteFile(filepath.Join(dir, "huge.json"), []byte(huge), 0644); err != nil {
		t.Fatal(err)
	}
	return root
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	root := writeTestScenes(t)
	ts := httptest.NewServer(NewServer(0, filepath.Join(root, "scenes")).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, buf.Bytes()
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/api/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"ok"`) {
		t.Errorf("Unexpected health body: %s", body)
	}
}

func TestScenes(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts.URL+"/api/scenes")

	var scenes []scene.SceneInfo
	if err := json.Unmarshal(body, &scenes); err != nil {
		t.Fatalf("Decode scenes: %v", err)
	}
	builtins := len(scene.BuiltinScenes())
	if len(scenes) != builtins+2 {
		t.Fatalf("Expected builtins plus two config scenes, got %d", len(scenes))
	}
	if first := scenes[builtins]; first.Name != "Ball" || first.Type != "config" {
		t.Errorf("Unexpected config scene %+v", first)
	}
}

func TestImage(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name        string
		query       string
		status      int
		contentType string
	}{
		{"png builtin", "?scene=sphere&width=16&height=12", http.StatusOK, "image/png"},
		{"ppm config", "?scene=ball&format=ppm", http.StatusOK, "image/x-portable-pixmap"},
		{"unknown scene", "?scene=nonexistent", http.StatusBadRequest, ""},
		{"bad width", "?scene=sphere&width=abc", http.StatusBadRequest, ""},
		{"negative depth", "?scene=sphere&depth=-1", http.StatusBadRequest, ""},
		{"bad format", "?scene=sphere&format=gif", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/api/image"+tt.query)
			if resp.StatusCode != tt.status {
				t.Fatalf("Expected status %d, got %d (%s)", tt.status, resp.StatusCode, body)
			}
			if tt.contentType == "" {
				return
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Expected content type %q, got %q", tt.contentType, got)
			}
		})
	}

	_, body := get(t, ts.URL+"/api/image?scene=sphere&width=16&height=12")
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Errorf("Expected 16x12 image, got %dx%d", b.Dx(), b.Dy())
	}

	_, body = get(t, ts.URL+"/api/image?scene=ball&format=ppm")
	if !strings.HasPrefix(string(body), "P3\n8 8\n255\n") {
		t.Errorf("Unexpected PPM header: %q", body[:min(len(body), 16)])
	}
}

func TestRenderStream(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/api/render?scene=ball")

	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Expected event stream, got %q", got)
	}
	stream := string(body)
	for _, event := range []string{"event: tile\n", "event: image\n", "event: complete\n", "event: console\n"} {
		if !strings.Contains(stream, event) {
			t.Errorf("Expected %q in stream:\n%s", event, stream)
		}
	}
	if strings.Index(stream, "event: image\n") > strings.Index(stream, "event: complete\n") {
		t.Error("Expected image event before complete")
	}
}

func TestRenderStreamError(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts.URL+"/api/render?scene=nonexistent")

	stream := string(body)
	if !strings.Contains(stream, "event: error\n") {
		t.Errorf("Expected error event, got:\n%s", stream)
	}
	if strings.Contains(stream, "event: complete\n") {
		t.Error("Did not expect completion after an error")
	}
}

func TestInspect(t *testing.T) {
	ts := newTestServer(t)

	// Pixel (3,3) of the 8x8 ball scene looks almost straight at the sphere
	_, body := get(t, ts.URL+"/api/inspect?scene=ball&x=3&y=3")
	var hit InspectResponse
	if err := json.Unmarshal(body, &hit); err != nil {
		t.Fatalf("Decode inspect: %v (%s)", err, body)
	}
	if !hit.Hit {
		t.Fatalf("Expected a hit, got %+v", hit)
	}
	if hit.Distance <= 0 {
		t.Errorf("Expected positive distance, got %g", hit.Distance)
	}
	if hit.Material["ambient"] != material.Default().Ambient || hit.Material["textured"] != false {
		t.Errorf("Expected the default material, got %v", hit.Material)
	}

	_, body = get(t, ts.URL+"/api/inspect?scene=ball&x=0&y=0")
	var miss InspectResponse
	if err := json.Unmarshal(body, &miss); err != nil {
		t.Fatalf("Decode inspect: %v", err)
	}
	if miss.Hit || miss.Colour != "#000000" {
		t.Errorf("Expected a black miss at the corner, got %+v", miss)
	}

	resp, _ := get(t, ts.URL+"/api/inspect?scene=ball&x=8&y=0")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for out of range pixel, got %d", resp.StatusCode)
	}
}

func TestImageRejectsScenesOutsideScenesDir(t *testing.T) {
	root := writeTestScenes(t)
	ts := httptest.NewServer(NewServer(0, filepath.Join(root, "scenes")).Handler())
	defer ts.Close()

	tests := []struct {
		name  string
		scene string
	}{
		{"absolute json path", filepath.Join(root, "outside.json")},
		{"relative traversal", "../outside"},
		{"json extension", "ball.json"},
		{"resolution above limit", "huge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/api/image?format=ppm&scene="+url.QueryEscape(tt.scene))
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected 400 for scene %q, got %d (%.16q)", tt.scene, resp.StatusCode, body)
			}
		})
	}
}
