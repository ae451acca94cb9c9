package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	VUp           core.Vec3 // Up direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 gives a pinhole camera
	FocusDistance float64   // Distance to the plane in perfect focus
	Time0, Time1  float64   // Shutter open and close times
}

// Camera is a thin-lens camera with defocus blur and an exposure interval
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
	time0, time1    float64
	config          CameraConfig
}

// NewCamera validates config and derives the viewport from it
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.VUp.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(config.FocusDistance * viewportWidth)
	vertical := v.Multiply(config.FocusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(config.FocusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		time0:           config.Time0,
		time1:           config.Time1,
		config:          config,
	}, nil
}

// Validate reports configurations that cannot produce a camera basis or viewport
func (c CameraConfig) Validate() error {
	switch {
	case !(c.VFov > 0 && c.VFov < 180):
		return core.InvalidConfigf("camera vfov %v must be in (0, 180)", c.VFov)
	case !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0):
		return core.InvalidConfigf("camera aspect ratio %v must be positive", c.AspectRatio)
	case c.Aperture < 0 || math.IsNaN(c.Aperture):
		return core.InvalidConfigf("camera aperture %v must not be negative", c.Aperture)
	case !(c.FocusDistance > 0):
		return core.InvalidConfigf("camera focus distance %v must be positive", c.FocusDistance)
	case c.Time1 < c.Time0:
		return core.InvalidConfigf("camera shutter closes at %v before it opens at %v", c.Time1, c.Time0)
	}

	view := c.LookFrom.Subtract(c.LookAt)
	if view.NearZero() {
		return core.InvalidConfigf("camera lookfrom %v and lookat %v coincide", c.LookFrom, c.LookAt)
	}
	if c.VUp.Cross(view).NearZero() {
		return core.InvalidConfigf("camera up vector %v is parallel to the view direction", c.VUp)
	}
	return nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay generates a ray through viewport coordinates (s, t) where 0 <= s,t <= 1.
// The origin is jittered over the lens and the time over the shutter interval.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	time := c.time0 + (c.time1-c.time0)*sampler.Get1D()
	return core.NewRay(c.origin.Add(offset), direction, time)
}
