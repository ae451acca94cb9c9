package core

// Hittable is anything a ray can intersect: primitives, wrappers, lists and BVH nodes.
// Implementations are immutable after construction and safe to share between workers.
type Hittable interface {
	// Hit reports whether the ray hits the object with t in [tMin, tMax].
	// On a hit rec is filled in; on a miss rec is left untouched.
	// sampler is only consumed by stochastic objects such as participating media.
	Hit(ray Ray, tMin, tMax float64, rec *HitRecord, sampler Sampler) bool
	// BoundingBox returns the box enclosing the object over the time interval [t0, t1].
	// The second result is false for objects that cannot be bounded (for example an empty list).
	BoundingBox(t0, t1 float64) (AABB, bool)
}

// Material decides how light interacts with a surface
type Material interface {
	// Scatter returns the scattered ray and its attenuation, or false when the ray is absorbed
	Scatter(rayIn Ray, rec *HitRecord, sampler Sampler) (ScatterResult, bool)
	// Emitted returns light produced by the surface itself
	Emitted(u, v float64, p Vec3) Vec3
}

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns color at given UV coordinates and 3D point.
	// UV is used for image textures, point for procedural textures
	Value(u, v float64, p Vec3) Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Unit surface normal, always facing against the incoming ray
	Material  Material // Material of the hit object
	T         float64  // Parameter t along the ray
	U, V      float64  // Surface coordinates for texture lookup
	FrontFace bool     // Whether ray hit the front face
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// NoEmission can be embedded by materials that never emit light
type NoEmission struct{}

// Emitted always returns black
func (NoEmission) Emitted(u, v float64, p Vec3) Vec3 {
	return Vec3{}
}
