package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type builtinScene struct {
	description string
	create      func() *Scene
}

var builtinScenes = map[string]builtinScene{
	"default": {
		description: "Diffuse, metal and glass spheres on a ground sphere under a sky gradient",
		create:      NewDefaultScene,
	},
	"enclosed": {
		description: "Camera and light sealed inside a diffuse shell",
		create:      NewEnclosedScene,
	},
	"spheregrid": {
		description: "Grid of metal spheres on a ground plane lit by a distant sun",
		create:      NewSphereGridScene,
	},
}

// ListBuiltinScenes returns the built-in scenes sorted by name
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for name, builtin := range builtinScenes {
		scenes = append(scenes, SceneInfo{Name: name, Description: builtin.description})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes
}

// NewByName creates the built-in scene registered under name
func NewByName(name string) (*Scene, error) {
	builtin, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return builtin.create(), nil
}
