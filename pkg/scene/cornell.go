package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

func cornellScene() *Scene {
	return &Scene{
		Background:     integrator.NewSolidBackground(core.Vec3{}), // Light only comes from the ceiling
		Width:          600,
		Height:         600,
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50},
	}
}

func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          40,
		FocusDistance: 10,
	}
}

// cornellWalls returns the five walls with the open side facing -z
func cornellWalls(white core.Material) []core.Hittable {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	return []core.Hittable{
		geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green), // Left wall as seen from the camera
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white),       // Floor
		geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white), // Ceiling
		geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white), // Back wall
	}
}

// cornellBlocks returns the tall and the short block, rotated and placed on the floor
func cornellBlocks(white core.Material) (tall, short core.Hittable) {
	tall = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	tall = geometry.NewRotateY(tall, 15)
	tall = geometry.NewTranslate(tall, core.NewVec3(265, 0, 295))

	short = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	short = geometry.NewRotateY(short, -18)
	short = geometry.NewTranslate(short, core.NewVec3(130, 0, 65))
	return tall, short
}

func buildCornellBox(b *builder) (*Scene, error) {
	s := cornellScene()
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	objects := cornellWalls(white)
	objects = append(objects, geometry.NewXZRect(213, 343, 227, 332, boxSize-1, material.NewDiffuseLight(core.NewVec3(15, 15, 15))))

	tall, short := cornellBlocks(white)
	objects = append(objects, tall, short)

	return finish(s, objects, cornellCamera())
}

// buildCornellSmoke replaces the blocks with black and white smoke under a larger, dimmer light
func buildCornellSmoke(b *builder) (*Scene, error) {
	s := cornellScene()
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	objects := cornellWalls(white)
	objects = append(objects, geometry.NewXZRect(113, 443, 127, 432, boxSize-1, material.NewDiffuseLight(core.NewVec3(7, 7, 7))))

	tall, short := cornellBlocks(white)
	objects = append(objects,
		geometry.NewConstantMediumColor(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMediumColor(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	return finish(s, objects, cornellCamera())
}
