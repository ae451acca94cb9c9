package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// sequenceSampler replays a fixed list of values, cycling when exhausted
type sequenceSampler struct {
	values []float64
	next   int
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *sequenceSampler) Range(min, max float64) float64 { return min + (max-min)*s.Get1D() }
func (s *sequenceSampler) IntRange(min, max int) int      { return min }

func TestLambertian_AlwaysScattersAboveSurface(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(42)

	normal := core.NewVec3(0, 0, 1)
	hit := &core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: normal,
	}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), 0.5)

	sumCos := 0.0
	const n = 20000
	for i := 0; i < n; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Origin != hit.Point || scatter.Scattered.Time != 0.5 {
			t.Fatalf("Scattered ray should start at the hit point at the incoming time, got %+v", scatter.Scattered)
		}
		cosTheta := scatter.Scattered.Direction.Normalize().Dot(normal)
		if cosTheta < 0 {
			t.Fatalf("Scattered below surface: %v", scatter.Scattered.Direction)
		}
		sumCos += cosTheta
	}

	// A cosine-weighted hemisphere has mean cos θ of 2/3
	if mean := sumCos / n; math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("Expected mean cos of 2/3, got %f", mean)
	}
}

func TestLambertian_DegenerateDirectionUsesNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(1, 1, 1))
	normal := core.NewVec3(0, 0, 1)
	hit := &core.HitRecord{Normal: normal}

	// Draws (0.5, 0.5, 0.25) map to the point (0, 0, -0.5), i.e. the unit vector -normal
	sampler := &sequenceSampler{values: []float64{0.5, 0.5, 0.25}}

	scatter, ok := lambertian.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0), hit, sampler)
	if !ok {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != normal {
		t.Errorf("Expected fallback to the normal, got %v", scatter.Scattered.Direction)
	}
}

func TestLambertian_Textured(t *testing.T) {
	checker := NewCheckerColors(core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	lambertian := NewTexturedLambertian(checker)

	hit := &core.HitRecord{Point: core.NewVec3(-0.1, 0.1, 0.1), Normal: core.NewVec3(0, 1, 0)}
	scatter, _ := lambertian.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0), 0), hit, core.NewRandomSampler(3))
	if scatter.Attenuation != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected odd checker color, got %v", scatter.Attenuation)
	}
}

func TestDiffuseLight(t *testing.T) {
	emission := core.NewVec3(4, 4, 4)
	light := NewDiffuseLight(emission)
	hit := &core.HitRecord{Normal: core.NewVec3(0, 1, 0)}

	if _, ok := light.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0), 0), hit, &sequenceSampler{values: []float64{0.3}}); ok {
		t.Errorf("DiffuseLight should never scatter")
	}
	if got := light.Emitted(0.2, 0.8, core.NewVec3(1, 2, 3)); got != emission {
		t.Errorf("Expected emission %v, got %v", emission, got)
	}

	textured := NewTexturedDiffuseLight(NewCheckerColors(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0)))
	if got := textured.Emitted(0, 0, core.NewVec3(-0.1, 0.1, 0.1)); got != (core.Vec3{}) {
		t.Errorf("Expected textured emission to follow the checker, got %v", got)
	}
}

func TestIsotropic(t *testing.T) {
	albedo := core.NewVec3(0.3, 0.6, 0.9)
	iso := NewIsotropic(NewSolidColor(albedo))
	sampler := core.NewRandomSampler(77)
	hit := &core.HitRecord{Point: core.NewVec3(1, 2, 3), Normal: core.NewVec3(1, 0, 0), FrontFace: true}

	var mean core.Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		scatter, ok := iso.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0), 0), hit, sampler)
		if !ok {
			t.Fatal("Isotropic should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if math.Abs(scatter.Scattered.Direction.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got %v", scatter.Scattered.Direction)
		}
		mean = mean.Add(scatter.Scattered.Direction)
	}

	// Uniform directions on the sphere average to zero
	mean = mean.Divide(n)
	if mean.Length() > 0.03 {
		t.Errorf("Expected isotropic directions, mean direction %v", mean)
	}
	if iso.Emitted(0, 0, core.Vec3{}) != (core.Vec3{}) {
		t.Errorf("Isotropic should not emit")
	}
}
