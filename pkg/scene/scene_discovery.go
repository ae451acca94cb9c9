package scene

import (
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          int    `json:"id"`          // Numeric mode, starting at 1
	Name        string `json:"name"`        // Mode name accepted by Build
	Description string `json:"description"` // One line summary

	build func(b *builder) (*Scene, error)
}

// registry lists the built-in scenes in id order
var registry = []SceneInfo{
	{Name: "random-spheres", Description: "Checkered ground covered in small random spheres, some of them moving", build: buildRandomSpheres},
	{Name: "two-spheres", Description: "Two large checkered spheres", build: buildTwoSpheres},
	{Name: "two-perlin-spheres", Description: "Marble ground and sphere using Perlin turbulence", build: buildTwoPerlinSpheres},
	{Name: "earth", Description: "Image textured globe", build: buildEarth},
	{Name: "simple-light", Description: "Perlin spheres lit by a rectangular area light", build: buildSimpleLight},
	{Name: "cornell-box", Description: "Classic Cornell box with two rotated blocks", build: buildCornellBox},
	{Name: "cornell-smoke", Description: "Cornell box with blocks of black and white smoke", build: buildCornellSmoke},
	{Name: "final", Description: "Dense scene exercising every primitive, material and medium", build: buildFinal},
	{Name: "motion-blur", Description: "A single sphere moving along x during the exposure", build: buildMotionBlur},
	{Name: "metal-mirror", Description: "Two perfect mirror spheres facing each other under the sky", build: buildMetalMirror},
}

func init() {
	for i := range registry {
		registry[i].ID = i + 1
	}
}

// ListScenes returns the built-in scenes in id order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(registry))
	copy(scenes, registry)
	return scenes
}

// Lookup resolves a scene name or numeric id
func Lookup(mode string) (SceneInfo, error) {
	mode = strings.TrimSpace(mode)
	if id, err := strconv.Atoi(mode); err == nil {
		if id < 1 || id > len(registry) {
			return SceneInfo{}, core.InvalidConfigf("scene id %d out of range 1..%d", id, len(registry))
		}
		return registry[id-1], nil
	}

	for _, info := range registry {
		if strings.EqualFold(info.Name, mode) {
			return info, nil
		}
	}
	return SceneInfo{}, core.InvalidConfigf("unknown scene %q (available: %s)", mode, strings.Join(SceneNames(), ", "))
}

// SceneNames returns the names of the built-in scenes in id order
func SceneNames() []string {
	names := make([]string, len(registry))
	for i, info := range registry {
		names[i] = info.Name
	}
	return names
}
