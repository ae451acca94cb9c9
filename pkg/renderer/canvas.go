package renderer

import (
	"bufio"
	"context"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultProgressInterval is how often Render reports progress
const DefaultProgressInterval = 100 * time.Millisecond

// PixelFunc returns the summed radiance of all samples for pixel (x, y).
// It is called concurrently from several goroutines and must only use sampler
// for randomness.
type PixelFunc func(x, y int, sampler core.Sampler) core.Vec3

// ProgressFunc receives the number of finished pixels out of total.
// Calls never overlap.
type ProgressFunc func(total, done int)

// Canvas holds summed radiance per pixel. Row 0 is the bottom scanline.
type Canvas struct {
	Width           int
	Height          int
	SamplesPerPixel int
	Pixels          []core.Vec3 // Row-major: Pixels[y*Width + x]

	Seed             uint64        // Master seed for the per-row samplers
	Workers          int           // Concurrent rows; 0 uses runtime.NumCPU()
	ProgressInterval time.Duration // 0 uses DefaultProgressInterval
}

// NewCanvas allocates a canvas after checking the dimensions
func NewCanvas(width, height, samplesPerPixel int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, core.InvalidConfigf("image size %dx%d must be positive", width, height)
	}
	if width > math.MaxInt/height {
		return nil, core.InvalidConfigf("image size %dx%d overflows the pixel count", width, height)
	}
	if samplesPerPixel <= 0 {
		return nil, core.InvalidConfigf("samples per pixel %d must be positive", samplesPerPixel)
	}

	return &Canvas{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		Pixels:          make([]core.Vec3, width*height),
	}, nil
}

// Render evaluates f for every pixel in parallel and stores the results.
// progress, if not nil, is called periodically from a separate goroutine and
// once more with done == total when every pixel is finished.
func (c *Canvas) Render(ctx context.Context, f PixelFunc, progress ProgressFunc) error {
	total := c.Width * c.Height
	var done atomic.Int64

	stopReporter := c.startProgressReporter(total, &done, progress)

	pool := NewWorkerPool(c.Workers, c.Seed)
	err := pool.Run(ctx, c.Height, func(y int, sampler core.Sampler) error {
		row := c.Pixels[y*c.Width : (y+1)*c.Width]
		for x := range row {
			row[x] = f(x, y, sampler)
		}
		done.Add(int64(c.Width))
		return nil
	})

	stopReporter()
	if err != nil {
		return errors.Wrap(err, "render canceled")
	}
	if progress != nil {
		progress(total, total)
	}
	return nil
}

// startProgressReporter polls the completed pixel counter on a ticker.
// The returned function stops the reporter and waits for it to exit.
func (c *Canvas) startProgressReporter(total int, done *atomic.Int64, progress ProgressFunc) func() {
	if progress == nil {
		return func() {}
	}

	interval := c.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	stop := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// Render reports completion itself, once
				if n := int(done.Load()); n < total {
					progress(total, n)
				}
			}
		}
	}()

	return func() {
		close(stop)
		<-exited
	}
}

// ColorBytes converts a summed pixel to 8-bit channels:
// average over the samples, gamma 2 via square root, clamp to [0, 0.999], scale by 256.
// NaN and negative values map to 0.
func (c *Canvas) ColorBytes(sum core.Vec3) (r, g, b uint8) {
	scale := 1.0 / float64(c.SamplesPerPixel)
	return channelByte(sum.X * scale), channelByte(sum.Y * scale), channelByte(sum.Z * scale)
}

func channelByte(value float64) uint8 {
	v := math.Sqrt(value)
	if !(v > 0) {
		return 0
	}
	return uint8(256 * math.Min(v, 0.999))
}

// WritePPM serialises the canvas as a plain (P3) PPM, top row first
func (c *Canvas) WritePPM(w io.Writer) error {
	buf := bufio.NewWriterSize(w, 1<<20) // use 1MB buffer

	line := make([]byte, 0, 16)
	line = append(line, "P3\n"...)
	line = strconv.AppendInt(line, int64(c.Width), 10)
	line = append(line, ' ')
	line = strconv.AppendInt(line, int64(c.Height), 10)
	line = append(line, "\n255\n"...)
	if _, err := buf.Write(line); err != nil {
		return errors.Wrap(err, "write ppm header")
	}

	for y := c.Height - 1; y >= 0; y-- {
		for x := 0; x < c.Width; x++ {
			r, g, b := c.ColorBytes(c.Pixels[y*c.Width+x])
			line = line[:0]
			line = strconv.AppendUint(line, uint64(r), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(g), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(b), 10)
			line = append(line, '\n')
			if _, err := buf.Write(line); err != nil {
				return errors.Wrapf(err, "write ppm row %d", y)
			}
		}
	}

	return errors.Wrap(buf.Flush(), "flush ppm")
}

// Image converts the canvas to an RGBA image with the top row at y = 0
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			r, g, b := c.ColorBytes(c.Pixels[y*c.Width+x])
			img.SetRGBA(x, c.Height-1-y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
