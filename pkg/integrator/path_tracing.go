package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// MinHitDistance is the minimum ray parameter accepted as a hit, so a scattered ray
// does not immediately re-hit the surface it left
const MinHitDistance = 1e-3

// PathTracingIntegrator implements unidirectional path tracing with a fixed bounce limit
type PathTracingIntegrator struct {
	MaxDepth int // Maximum number of ray segments per path
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the radiance for a single ray.
//
// It evaluates L(ray, depth) = emitted + attenuation ⊙ L(scattered, depth-1),
// with L = 0 once depth reaches zero and L = background on a miss. The recursion
// is unrolled by carrying the product of attenuations in throughput.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Hittable, background Background, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	var hit core.HitRecord
	for depth := pt.MaxDepth; depth > 0; depth-- {
		if !world.Hit(ray, MinHitDistance, math.Inf(1), &hit, sampler) {
			return radiance.Add(throughput.MultiplyVec(background.Color(ray)))
		}

		// Start with emitted light from the hit material
		emitted := hit.Material.Emitted(hit.U, hit.V, hit.Point)
		radiance = radiance.Add(throughput.MultiplyVec(emitted))

		scatter, didScatter := hit.Material.Scatter(ray, &hit, sampler)
		if !didScatter {
			// Material absorbed the ray, only emitted light remains
			return radiance
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce limit reached, no more light is gathered
	return radiance
}
