package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by -scene
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "config"
	FilePath    string `json:"filePath"`    // Path to JSON file (config type only)
}

// BuiltinScenes lists the scenes constructed in code
func BuiltinScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Stretched sphere lit from above",
			Type:        "builtin",
		},
		{
			ID:          "sphere",
			Name:        "Single Sphere",
			Description: "Unit sphere in the centre of the frame",
			Type:        "builtin",
		},
		{
			ID:          "pyramid",
			Name:        "Pyramid",
			Description: "Per-face coloured pyramid and a checkerboard sphere under two lights",
			Type:        "builtin",
		},
	}
}

// ListConfigScenes scans dir for JSON scene files. A missing directory yields
// an empty list; unreadable files are reported through warn and skipped.
func ListConfigScenes(dir string, warn func(format string, args ...interface{})) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		info, err := ParseConfigMetadata(filePath)
		if err != nil {
			if warn != nil {
				warn("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			}
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseConfigMetadata reads the name and description of a JSON scene file,
// falling back to a name derived from the filename
func ParseConfigMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     "config",
		FilePath: filePath,
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}
	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return info, err
	}
	if header.Name != "" {
		info.Name = header.Name
	}
	info.Description = header.Description
	return info, nil
}

// ListAllScenes returns the built-in scenes followed by those found in dir
func ListAllScenes(dir string, warn func(format string, args ...interface{})) ([]SceneInfo, error) {
	configScenes, err := ListConfigScenes(dir, warn)
	if err != nil {
		return nil, fmt.Errorf("failed to list config scenes: %w", err)
	}
	return append(BuiltinScenes(), configScenes...), nil
}

// Load resolves name to a scene. name is a built-in ID, a path to a JSON
// scene file, or the base name of a JSON file in dir.
func Load(name, dir string) (*Scene, error) {
	switch name {
	case "":
		return nil, fmt.Errorf("scene name is empty")
	case "default":
		return NewDefaultScene()
	case "sphere":
		return NewSphereScene()
	case "pyramid":
		return NewPyramidScene()
	}

	if strings.EqualFold(filepath.Ext(name), ".json") {
		return LoadConfig(name)
	}

	path := filepath.Join(dir, name+".json")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	return LoadConfig(path)
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
