package core

// Ray represents a ray with an origin, direction and the time it was emitted
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Time      float64 // Point in the exposure interval, used for motion blur
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3, time float64) Ray {
	return Ray{Origin: origin, Direction: direction, Time: time}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
