package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// bytesPerPixel is the stride of packed RGB8 data
const bytesPerPixel = 3

// ImageTexture provides color from a packed 8-bit RGB image
type ImageTexture struct {
	Width  int
	Height int
	Data   []byte // Row-major from the top: Data[(y*Width+x)*3 : +3]
}

// NewImageTexture creates a new image texture from packed RGB8 data.
// A texture with no data, or data shorter than width·height pixels, renders black.
func NewImageTexture(width, height int, data []byte) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Data:   data,
	}
}

// Value samples the nearest texel using nearest-neighbor filtering
func (t *ImageTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Data) < t.Width*t.Height*bytesPerPixel {
		return core.Vec3{}
	}

	// Clamp UV coordinates to [0, 1]
	u = core.Clamp(u, 0, 1)
	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	v = 1 - core.Clamp(v, 0, 1)

	// Convert to pixel coordinates and clamp to image bounds
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	const colorScale = 1.0 / 255.0
	i := (y*t.Width + x) * bytesPerPixel
	return core.NewVec3(
		float64(t.Data[i])*colorScale,
		float64(t.Data[i+1])*colorScale,
		float64(t.Data[i+2])*colorScale,
	)
}
