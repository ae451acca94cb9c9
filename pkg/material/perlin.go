package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

const (
	perlinPointCount = 256
	// DefaultTurbulenceDepth is the number of octaves summed by Turb
	DefaultTurbulenceDepth = 7
)

// Perlin is a gradient noise generator over a 256-entry lattice
type Perlin struct {
	gradients [perlinPointCount]core.Vec3
	permX     [perlinPointCount]int
	permY     [perlinPointCount]int
	permZ     [perlinPointCount]int
}

// NewPerlin builds the gradient and permutation tables from sampler.
// The same sampler state always produces the same noise field.
func NewPerlin(sampler core.Sampler) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = core.RandomVec3(sampler, -1, 1).Normalize()
	}
	generatePerm(&p.permX, sampler)
	generatePerm(&p.permY, sampler)
	generatePerm(&p.permZ, sampler)
	return p
}

// generatePerm fills perm with 0..n-1 and shuffles it with Fisher-Yates
func generatePerm(perm *[perlinPointCount]int, sampler core.Sampler) {
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		target := sampler.IntRange(0, i)
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns smoothed gradient noise at p, in roughly [-1, 1]
func (p *Perlin) Noise(point core.Vec3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fx, point.Y-fy, point.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.gradients[p.permX[(i+di)&255]^p.permY[(j+dj)&255]^p.permZ[(k+dk)&255]]
			}
		}
	}
	return perlinInterp(&c, u, v, w)
}

// perlinInterp blends the eight lattice gradients with Hermite-smoothed trilinear weights
func perlinInterp(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}

// Turb sums |noise| over depth octaves, halving the weight and doubling the frequency each time
func (p *Perlin) Turb(point core.Vec3, depth int) float64 {
	accum := 0.0
	temp := point
	weight := 1.0

	for i := 0; i < depth; i++ {
		accum += weight * math.Abs(p.Noise(temp))
		weight *= 0.5
		temp = temp.Multiply(2)
	}
	return accum
}

// NoiseTexture renders Perlin turbulence as a marble-like pattern
type NoiseTexture struct {
	Noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a marble texture with the given frequency
func NewNoiseTexture(sampler core.Sampler, scale float64) *NoiseTexture {
	return &NoiseTexture{Noise: NewPerlin(sampler), Scale: scale}
}

// Value returns a grey level phase-shifted along z by turbulence
func (t *NoiseTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	level := 0.5 * (1 + math.Sin(t.Scale*p.Z+10*t.Noise.Turb(p, DefaultTurbulenceDepth)))
	return core.NewVec3(1, 1, 1).Multiply(level)
}
