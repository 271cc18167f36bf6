package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains configuration for parallel rendering
type RenderConfig struct {
	TileSize   int // Edge length of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
	MaxDepth   int // Recursion budget passed to every trace
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
		MaxDepth:   0,
	}
}

// Validate rejects configurations that cannot render
func (c RenderConfig) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be > 0, got %d", c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count must be >= 0, got %d", c.NumWorkers)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("depth must be >= 0, got %d", c.MaxDepth)
	}
	return nil
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds; X is the column, Y the row
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// TileCompletionResult reports progress after each finished tile
type TileCompletionResult struct {
	TileID     int
	Bounds     image.Rectangle
	TileNumber int // Tiles finished so far (1-based)
	TotalTiles int
}

// Renderer traces a camera's image in parallel tiles. The tracer is shared
// by all workers and must be safe for concurrent reads.
type Renderer struct {
	camera *Camera
	tracer Tracer
	config RenderConfig
	logger core.Logger
}

// NewRenderer validates config and creates a renderer. A nil logger discards output.
func NewRenderer(camera *Camera, tracer Tracer, config RenderConfig, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	return &Renderer{
		camera: camera,
		tracer: tracer,
		config: config,
		logger: core.LoggerOrNop(logger),
	}, nil
}

// Render traces every pixel and returns the finished image. The result is
// identical to Camera.GenerateImage for the same camera, tracer and depth.
// onTile, when non-nil, is called from the calling goroutine after each tile.
func (r *Renderer) Render(ctx context.Context, onTile func(TileCompletionResult)) (*core.Image, RenderStats, error) {
	resolution := r.camera.Resolution()
	img := core.NewImage(resolution)
	tiles := NewTileGrid(resolution.Width, resolution.Height, r.config.TileSize)

	pool := NewWorkerPool(ctx, r.camera, r.tracer, r.config.NumWorkers, len(tiles))
	stats := RenderStats{NumWorkers: pool.GetNumWorkers()}

	r.logger.Printf("Rendering %dx%d in %d tiles using %d workers...\n",
		resolution.Width, resolution.Height, len(tiles), pool.GetNumWorkers())

	startTime := time.Now()
	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Image: img, Depth: r.config.MaxDepth})
	}

	var errs []error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			errs = append(errs, fmt.Errorf("worker pool closed unexpectedly"))
			break
		}
		if result.Error != nil {
			errs = append(errs, result.Error)
			continue
		}
		stats.Add(result.Stats)

		if onTile != nil {
			tile := tiles[result.TaskID]
			onTile(TileCompletionResult{
				TileID:     tile.ID,
				Bounds:     tile.Bounds,
				TileNumber: stats.TotalTiles,
				TotalTiles: len(tiles),
			})
		}
	}
	pool.Stop()
	stats.Elapsed = time.Since(startTime)

	if err := ctx.Err(); err != nil {
		r.logger.Printf("Rendering cancelled after %d of %d tiles\n", stats.TotalTiles, len(tiles))
		return nil, stats, err
	}
	if len(errs) > 0 {
		return nil, stats, errors.Join(errs...)
	}

	r.logger.Printf("Render completed in %v (%.0f rays/s)\n", stats.Elapsed, stats.RaysPerSecond())
	return img, stats, nil
}
