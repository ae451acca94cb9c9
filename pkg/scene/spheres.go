package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// outdoorCamera is the camera shared by the sphere scenes
func outdoorCamera(aperture float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          20,
		Aperture:      aperture,
		FocusDistance: 10,
	}
}

func outdoorScene() *Scene {
	return &Scene{
		Background:     integrator.NewSkyBackground(),
		Width:          400,
		Height:         225,
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	}
}

func groundChecker() *material.CheckerTexture {
	return material.NewCheckerColors(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
}

// buildRandomSpheres scatters small diffuse, metal and glass spheres around three large ones.
// Diffuse spheres bounce upward during the exposure.
func buildRandomSpheres(b *builder) (*Scene, error) {
	s := outdoorScene()
	rnd := b.sampler

	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(groundChecker())),
	}

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for bb := -11; bb < 11; bb++ {
			chooseMat := rnd.Get1D()
			center := core.NewVec3(float64(a)+0.9*rnd.Get1D(), 0.2, float64(bb)+0.9*rnd.Get1D())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(rnd, 0, 1).MultiplyVec(core.RandomVec3(rnd, 0, 1))
				center1 := center.Add(core.NewVec3(0, rnd.Range(0, 0.5), 0))
				objects = append(objects, geometry.NewMovingSphere(center, center1, 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(rnd, 0.5, 1)
				fuzz := rnd.Range(0, 0.5)
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)

	return finish(s, objects, outdoorCamera(0.1))
}

func buildTwoSpheres(b *builder) (*Scene, error) {
	s := outdoorScene()
	checker := material.NewTexturedLambertian(groundChecker())

	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	}
	return finish(s, objects, outdoorCamera(0))
}

// perlinSpheres returns a marble ground and a marble sphere sharing one noise table
func perlinSpheres(b *builder) []core.Hittable {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(b.sampler, 4))
	return []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	}
}

func buildTwoPerlinSpheres(b *builder) (*Scene, error) {
	return finish(outdoorScene(), perlinSpheres(b), outdoorCamera(0))
}

func buildEarth(b *builder) (*Scene, error) {
	earth := material.NewTexturedLambertian(b.imageTexture(EarthTexture))
	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 2, earth),
	}
	return finish(outdoorScene(), objects, outdoorCamera(0))
}

// buildSimpleLight lights the Perlin spheres with a single rectangle against a black sky
func buildSimpleLight(b *builder) (*Scene, error) {
	s := outdoorScene()
	s.Background = integrator.NewSolidBackground(core.Vec3{})
	s.SamplingConfig.SamplesPerPixel = 400

	objects := perlinSpheres(b)
	objects = append(objects, geometry.NewXYRect(3, 5, 1, 3, -2, material.NewDiffuseLight(core.NewVec3(4, 4, 4))))

	config := outdoorCamera(0)
	config.LookFrom = core.NewVec3(26, 3, 6)
	config.LookAt = core.NewVec3(0, 2, 0)
	return finish(s, objects, config)
}

// buildMotionBlur moves one sphere from the origin to (1, 0, 0) while the shutter is open
func buildMotionBlur(b *builder) (*Scene, error) {
	s := outdoorScene()
	s.Width, s.Height = 400, 200

	objects := []core.Hittable{
		geometry.NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), 0, 1, 0.2,
			material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
	}

	config := renderer.CameraConfig{
		LookFrom:      core.NewVec3(0.5, 0, 4),
		LookAt:        core.NewVec3(0.5, 0, 0),
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          30,
		FocusDistance: 4,
	}
	return finish(s, objects, config)
}

// buildMetalMirror places two perfect mirrors side by side with a gap on the view axis
func buildMetalMirror(b *builder) (*Scene, error) {
	s := outdoorScene()
	mirror := material.NewMetal(core.NewVec3(1, 1, 1), 0)

	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(-1.1, 0, 0), 1, mirror),
		geometry.NewSphere(core.NewVec3(1.1, 0, 0), 1, mirror),
	}

	config := renderer.CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 6),
		LookAt:        core.NewVec3(0, 0, 0),
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          30,
		FocusDistance: 6,
	}
	return finish(s, objects, config)
}
