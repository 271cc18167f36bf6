package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/export"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
	"github.com/df07/go-phong-raytracer/pkg/transform"
)

const scenesDir = "scenes"

// Config holds all the configuration for a render
type Config struct {
	SceneName  string
	ObjFile    string
	Width      int
	Height     int
	Depth      int
	NumWorkers int
	TileSize   int
	Format     export.Format
	Output     string
}

func main() {
	config, help := parseFlags()
	if help {
		showHelp()
		return
	}

	if err := run(config, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags and returns configuration
func parseFlags() (Config, bool) {
	config := Config{}
	var format string

	flag.StringVar(&config.SceneName, "scene", "default", "Built-in scene ID, JSON scene name, or path to a .json scene")
	flag.StringVar(&config.ObjFile, "obj", "", "Render a Wavefront OBJ file in front of the camera instead of a scene")
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&config.Height, "height", 0, "Image height in pixels (0 = scene default)")
	flag.IntVar(&config.Depth, "depth", -1, "Recursion budget for secondary rays (-1 = scene default)")
	flag.IntVar(&config.NumWorkers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.IntVar(&config.TileSize, "tile", 32, "Tile edge length in pixels")
	flag.StringVar(&format, "format", "ppm", "Output format: 'ppm' or 'png'")
	flag.StringVar(&config.Output, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	parsed, err := export.ParseFormat(format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	config.Format = parsed
	return config, *help
}

// showHelp displays help information
func showHelp() {
	fmt.Println("Phong Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()

	scenes, err := scene.ListAllScenes(scenesDir, func(format string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, format, args...)
	})
	if err != nil {
		fmt.Printf("Error listing scenes: %v\n", err)
		return
	}

	fmt.Println("Available scenes:")
	for _, s := range scenes {
		description := s.Description
		if description == "" {
			description = s.Name
		}
		fmt.Printf("  %-24s %s\n", s.ID, description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

// run loads the scene, renders it and writes the image. Ctrl-C cancels the render.
func run(config Config, logger core.Logger) error {
	selectedScene, label, err := loadScene(config, logger)
	if err != nil {
		return err
	}
	applyOverrides(selectedScene, config)

	settings := selectedScene.Settings
	camera := renderer.NewCamera(settings.CameraPosition, settings.Resolution, settings.FocalLength)
	renderConfig := renderer.RenderConfig{
		TileSize:   config.TileSize,
		NumWorkers: config.NumWorkers,
		MaxDepth:   settings.MaxDepth,
	}

	rt, err := renderer.NewRenderer(camera, selectedScene, renderConfig, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Printf("Scene %s: %d objects, %d primitives, %d lights\n",
		label, len(selectedScene.Objects), selectedScene.GetPrimitiveCount(), len(selectedScene.Lights))

	img, stats, err := rt.Render(ctx, nil)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Traced %d primary rays, average luminance %.3f\n",
		stats.PrimaryRays, renderer.CalculateAverageLuminance(img))

	output := config.Output
	if output == "" {
		output = defaultOutputPath(label, config.Format, time.Now())
	}
	if err := export.SaveImage(output, img, config.Format); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", output)
	return nil
}

// loadScene returns the requested scene and a label used for the output directory
func loadScene(config Config, logger core.Logger) (*scene.Scene, string, error) {
	if config.ObjFile != "" {
		s, err := createOBJScene(config.ObjFile, logger)
		if err != nil {
			return nil, "", err
		}
		return s, sceneLabel(config.ObjFile), nil
	}

	s, err := createScene(config.SceneName)
	if err != nil {
		return nil, "", err
	}
	return s, sceneLabel(config.SceneName), nil
}

// createScene resolves a built-in scene ID or a JSON scene
func createScene(sceneName string) (*scene.Scene, error) {
	return scene.Load(sceneName, scenesDir)
}

// createOBJScene places a model five units in front of a camera at the origin,
// lit from above and behind the camera
func createOBJScene(path string, logger core.Logger) (*scene.Scene, error) {
	data, err := loaders.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	shape, err := data.Shape()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	model, err := geometry.NewObject(shape, transform.Translate(0, 0, 5), material.Default())
	if err != nil {
		return nil, err
	}

	s := scene.New([]*geometry.Object{model}, []lights.Light{
		lights.NewPointLight(core.NewHVector(-3, 20, -1)),
	})
	logger.Printf("Loaded %s: %d triangles\n", path, data.TriangleCount())
	return s, nil
}

// applyOverrides replaces scene settings given on the command line
func applyOverrides(s *scene.Scene, config Config) {
	if config.Width > 0 {
		s.Settings.Resolution.Width = config.Width
	}
	if config.Height > 0 {
		s.Settings.Resolution.Height = config.Height
	}
	if config.Depth >= 0 {
		s.Settings.MaxDepth = config.Depth
	}
}

// sceneLabel turns a scene ID or file path into a directory name
func sceneLabel(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func defaultOutputPath(label string, format export.Format, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", label, fmt.Sprintf("render_%s.%s", timestamp, format))
}
