package renderer

import (
	"io"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/pkg/errors"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	RenderID         string  `json:"render_id,omitempty"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	TotalPixels      int     `json:"total_pixels"`      // Total number of pixels rendered
	SamplesPerPixel  int     `json:"samples_per_pixel"` // Camera rays per pixel
	TotalSamples     int     `json:"total_samples"`     // Total number of samples taken
	MaxDepth         int     `json:"max_depth"`
	Workers          int     `json:"workers"`
	Seed             uint64  `json:"seed"`
	Seconds          float64 `json:"seconds"`
	SamplesPerSecond float64 `json:"samples_per_second"`
}

func newRenderStats(canvas *Canvas, config SamplingConfig, workers int, elapsed time.Duration) RenderStats {
	stats := RenderStats{
		Width:           canvas.Width,
		Height:          canvas.Height,
		TotalPixels:     canvas.Width * canvas.Height,
		SamplesPerPixel: config.SamplesPerPixel,
		TotalSamples:    canvas.Width * canvas.Height * config.SamplesPerPixel,
		MaxDepth:        config.MaxDepth,
		Workers:         workers,
		Seed:            canvas.Seed,
		Seconds:         elapsed.Seconds(),
	}
	if stats.Seconds > 0 {
		stats.SamplesPerSecond = float64(stats.TotalSamples) / stats.Seconds
	}
	return stats
}

// Duration returns the wall-clock render time
func (s RenderStats) Duration() time.Duration {
	return time.Duration(s.Seconds * float64(time.Second))
}

// WriteJSON writes the statistics as an indented JSON report
func (s RenderStats) WriteJSON(w io.Writer) error {
	return errors.Wrap(json.MarshalWrite(w, s, jsontext.WithIndent("  ")), "write render stats")
}
