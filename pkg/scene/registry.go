package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Optional description
}

// builder creates a scene for an image of the given size
type builder func(width, height int) *Scene

// sceneInfos is kept apart from builders, which read it
var sceneInfos = map[string]SceneInfo{
	"default": {ID: "default", Name: "Default Scene", Description: "CSG lens, carved cube and glass sphere on a checkerboard"},
	"csg":     {ID: "csg", Name: "CSG Showcase", Description: "Union, intersection and difference of spheres, cubes and cylinders"},
	"cornell": {ID: "cornell", Name: "Cornell Box", Description: "Colored room with mirror and glass spheres in light fog"},
}

var builders = map[string]builder{
	"default": NewDefaultScene,
	"csg":     NewCSGScene,
	"cornell": NewCornellScene,
}

// Names returns the registered scene IDs in order
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns every registered scene, ordered by ID
func List() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range Names() {
		scenes = append(scenes, sceneInfos[name])
	}
	return scenes
}

// New builds the named scene for an image of width x height pixels
func New(name string, width, height int) (*Scene, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	return build(width, height), nil
}
