package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// buildFinal combines every primitive, material and medium in one scene
func buildFinal(b *builder) (*Scene, error) {
	s := &Scene{
		Background:     integrator.NewSolidBackground(core.Vec3{}),
		Width:          800,
		Height:         800,
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 500, MaxDepth: 50},
	}
	rnd := b.sampler

	// Floor of boxes with random heights
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	floor := make([]core.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000 + float64(i)*w
			z0 := -1000 + float64(j)*w
			y1 := rnd.Range(1, 101)
			floor = append(floor, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	floorBVH, err := geometry.NewBVH(floor, 0, 1)
	if err != nil {
		return nil, err
	}

	objects := []core.Hittable{
		floorBVH,
		geometry.NewXZRect(123, 423, 147, 412, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7))),
	}

	center0 := core.NewVec3(400, 400, 200)
	center1 := center0.Add(core.NewVec3(30, 0, 0))
	objects = append(objects,
		geometry.NewMovingSphere(center0, center1, 0, 1, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))),
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass ball filled with blue fog, and a thin mist over everything
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	objects = append(objects,
		boundary,
		geometry.NewConstantMediumColor(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)),
	)
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	objects = append(objects, geometry.NewConstantMediumColor(mist, 0.0001, core.NewVec3(1, 1, 1)))

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(b.imageTexture(EarthTexture))),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(material.NewNoiseTexture(rnd, 0.1))),
	)

	// Cluster of small spheres, rotated and moved as one object
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	const clusterSize = 1000
	cluster := make([]core.Hittable, 0, clusterSize)
	for i := 0; i < clusterSize; i++ {
		cluster = append(cluster, geometry.NewSphere(core.RandomVec3(rnd, 0, 165), 10, white))
	}
	clusterBVH, err := geometry.NewBVH(cluster, 0, 1)
	if err != nil {
		return nil, err
	}
	objects = append(objects, geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)))

	config := renderer.CameraConfig{
		LookFrom:      core.NewVec3(478, 278, -600),
		LookAt:        core.NewVec3(278, 278, 0),
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          40,
		FocusDistance: 10,
	}
	return finish(s, objects, config)
}
