package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/export"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "image", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// TileUpdate reports a finished tile
type TileUpdate struct {
	TileID     int `json:"tileId"`
	X          int `json:"x"`
	Y          int `json:"y"`
	Width      int `json:"width"`
	Height     int `json:"height"`
	TileNumber int `json:"tileNumber"` // Tiles finished so far (1-based)
	TotalTiles int `json:"totalTiles"`
}

// ImageUpdate carries the finished render
type ImageUpdate struct {
	ImageData        string  `json:"imageData"` // Base64 encoded PNG
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	ElapsedMs        int64   `json:"elapsedMs"`
	PrimaryRays      int     `json:"primaryRays"`
	PrimitiveCount   int     `json:"primitiveCount"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// handleRender renders a scene and streams progress, console output and the
// final PNG via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	sseEventChan := make(chan SSEEvent, 100)
	consoleChan := make(chan ConsoleMessage, 50)
	done := make(chan struct{})
	go s.writeSSEEvents(ctx, w, sseEventChan, consoleChan, done)
	defer func() {
		close(sseEventChan)
		<-done
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	webLogger := NewWebLogger(fmt.Sprintf("render-%d", time.Now().UnixNano()), consoleChan)
	sceneObj, err := s.loadScene(req)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}

	config := renderer.DefaultRenderConfig()
	config.TileSize = DefaultTileSize
	config.MaxDepth = req.Depth
	rt, err := renderer.NewRenderer(newCamera(sceneObj), sceneObj, config, webLogger)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}

	img, stats, err := rt.Render(ctx, func(tile renderer.TileCompletionResult) {
		s.sendJSONEvent(ctx, sseEventChan, "tile", TileUpdate{
			TileID:     tile.TileID,
			X:          tile.Bounds.Min.X,
			Y:          tile.Bounds.Min.Y,
			Width:      tile.Bounds.Dx(),
			Height:     tile.Bounds.Dy(),
			TileNumber: tile.TileNumber,
			TotalTiles: tile.TotalTiles,
		})
	})
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	s.handleImageComplete(ctx, sseEventChan, img, stats, sceneObj)
	s.sendEvent(ctx, sseEventChan, "complete", "Rendering completed")
}

// handleImageComplete encodes the finished image and sends it with the render statistics
func (s *Server) handleImageComplete(ctx context.Context, sseEventChan chan<- SSEEvent, img *core.Image, stats renderer.RenderStats, sceneObj *scene.Scene) {
	imageData, err := imageToBase64PNG(img)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Failed to encode image: %v", err))
		return
	}
	s.sendJSONEvent(ctx, sseEventChan, "image", ImageUpdate{
		ImageData:        imageData,
		Width:            img.Resolution.Width,
		Height:           img.Resolution.Height,
		ElapsedMs:        stats.Elapsed.Milliseconds(),
		PrimaryRays:      stats.PrimaryRays,
		PrimitiveCount:   sceneObj.GetPrimitiveCount(),
		AverageLuminance: renderer.CalculateAverageLuminance(img),
	})
}

// handleImage renders a scene and responds with the encoded image
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
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

	config := renderer.DefaultRenderConfig()
	config.TileSize = DefaultTileSize
	config.MaxDepth = req.Depth
	rt, err := renderer.NewRenderer(newCamera(sceneObj), sceneObj, config, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	img, _, err := rt.Render(r.Context(), nil)
	if err != nil {
		http.Error(w, fmt.Sprintf("Rendering failed: %v", err), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, img, req.Format); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType(req.Format))
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing image response: %v", err)
	}
}

func contentType(format export.Format) string {
	if format == export.FormatPPM {
		return "image/x-portable-pixmap"
	}
	return "image/png"
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents is the only goroutine that writes to w. Pending console
// messages are flushed ahead of each event so output keeps its order.
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, events <-chan SSEEvent, console <-chan ConsoleMessage, done chan<- struct{}) {
	defer close(done)

	drainConsole := func() {
		for {
			select {
			case msg := <-console:
				writeConsoleEvent(w, msg)
			default:
				return
			}
		}
	}

	for {
		select {
		case msg := <-console:
			writeConsoleEvent(w, msg)
		case event, ok := <-events:
			drainConsole()
			if !ok {
				return
			}
			writeSSEEvent(w, event)
		case <-ctx.Done():
			return
		}
	}
}

func writeConsoleEvent(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return
	}
	writeSSEEvent(w, SSEEvent{Type: "console", Data: string(data)})
}

func writeSSEEvent(w http.ResponseWriter, event SSEEvent) {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// sendEvent queues an event unless the client has gone away
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType, data string) {
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}

func (s *Server) sendJSONEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}
	s.sendEvent(ctx, sseEventChan, eventType, string(data))
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img *core.Image) (string, error) {
	var buf bytes.Buffer
	if err := export.WritePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
