package renderer

import (
	"context"
	"image"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func TestRenderTileBounds(t *testing.T) {
	resolution := core.Resolution{Width: 6, Height: 4}
	camera := NewCamera(core.NewHVector(0, 0, 0), resolution, 1)
	white := core.NewColour(1, 1, 1)
	tr := NewTileRenderer(camera, constantTracer{colour: white})

	img := core.NewImage(resolution)
	bounds := image.Rect(2, 1, 5, 3)
	stats := tr.RenderTileBounds(bounds, img, 0)

	if stats.TotalPixels != 6 || stats.PrimaryRays != 6 || stats.TotalTiles != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	for row := 0; row < resolution.Height; row++ {
		for column := 0; column < resolution.Width; column++ {
			inside := image.Pt(column, row).In(bounds)
			got := img.At(row, column)
			if inside && got != white {
				t.Errorf("Pixel (%d,%d) inside tile should be white, got %v", row, column, got)
			}
			if !inside && got != core.Black {
				t.Errorf("Pixel (%d,%d) outside tile should be untouched, got %v", row, column, got)
			}
		}
	}
}

func TestWorkerPoolProcessesEveryTask(t *testing.T) {
	resolution := core.Resolution{Width: 10, Height: 7}
	camera := NewCamera(core.NewHVector(0, 0, 0), resolution, 1)
	tiles := NewTileGrid(resolution.Width, resolution.Height, 3)
	img := core.NewImage(resolution)

	pool := NewWorkerPool(context.Background(), camera, constantTracer{colour: core.White}, 3, len(tiles))
	if pool.GetNumWorkers() != 3 {
		t.Fatalf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}
	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Image: img})
	}

	seen := make(map[int]bool)
	var total RenderStats
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatal("Result channel closed early")
		}
		if result.Error != nil {
			t.Fatalf("Task %d failed: %v", result.TaskID, result.Error)
		}
		seen[result.TaskID] = true
		total.Add(result.Stats)
	}
	pool.Stop()

	if len(seen) != len(tiles) {
		t.Errorf("Expected %d distinct results, got %d", len(tiles), len(seen))
	}
	if total.TotalPixels != resolution.Pixels() {
		t.Errorf("Expected %d pixels, got %d", resolution.Pixels(), total.TotalPixels)
	}
	for i, c := range img.Pixels {
		if c != core.White {
			t.Fatalf("Pixel %d not rendered", i)
		}
	}
}
