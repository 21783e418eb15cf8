package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrUnknownScene is returned when no built-in scene has the requested ID
var ErrUnknownScene = errors.New("unknown scene")

// BuildFunc constructs a scene, drawing any randomness from sampler
type BuildFunc func(sampler core.Sampler, opts Options) (*Scene, error)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	Group       string `json:"group"` // Grouping category
}

type entry struct {
	info  SceneInfo
	build BuildFunc
}

// registry lists built-in scenes in presentation order
var registry = []entry{
	{SceneInfo{ID: "two-spheres", Description: "Small diffuse sphere resting on a large ground sphere", Group: "Basics"}, NewTwoSpheresScene},
	{SceneInfo{ID: "materials", Description: "Diffuse, metal, glass and hollow glass spheres side by side", Group: "Basics"}, NewMaterialsScene},
	{SceneInfo{ID: "bouncing-spheres", Description: "Field of random small spheres with motion blur and three large spheres", Group: "Spheres"}, NewBouncingSpheresScene},
	{SceneInfo{ID: "checkered-spheres", Description: "Two large spheres with a 3D checker texture", Group: "Textures"}, NewCheckeredSpheresScene},
	{SceneInfo{ID: "earth", Description: "Globe with an image texture loaded from the texture directory", Group: "Textures"}, NewEarthScene},
	{SceneInfo{ID: "perlin-spheres", Description: "Marble Perlin noise on a sphere and the ground", Group: "Textures"}, NewPerlinSpheresScene},
	{SceneInfo{ID: "quads", Description: "Five colored quads facing the camera", Group: "Quads"}, NewQuadsScene},
	{SceneInfo{ID: "simple-light", Description: "Perlin spheres lit by an area light and a glowing sphere", Group: "Lights"}, NewSimpleLightScene},
	{SceneInfo{ID: "cornell-box", Description: "Cornell box with two rotated boxes", Group: "Cornell"}, NewCornellBoxScene},
	{SceneInfo{ID: "cornell-smoke", Description: "Cornell box with boxes of black and white smoke", Group: "Cornell"}, NewCornellSmokeScene},
	{SceneInfo{ID: "final", Description: "Every feature at once: boxes, motion blur, glass, fog, noise and image textures", Group: "Showcase"}, NewFinalScene},
}

func init() {
	for i := range registry {
		registry[i].info.DisplayName = titleCase(registry[i].info.ID)
	}
}

// ListScenes returns the built-in scenes in presentation order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(registry))
	for i, e := range registry {
		scenes[i] = e.info
	}
	return scenes
}

// Build constructs the built-in scene with the given ID
func Build(id string, sampler core.Sampler, opts Options) (*Scene, error) {
	for _, e := range registry {
		if e.info.ID == id {
			return e.build(sampler, opts)
		}
	}
	return nil, fmt.Errorf("%q: %w", id, ErrUnknownScene)
}

// titleCase converts an ID-style string to title case
// e.g., "cornell-box" -> "Cornell Box"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
