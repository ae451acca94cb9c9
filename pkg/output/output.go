// Package output writes rendered images to stdout or a gocloud blob bucket.
package output

import (
	"bufio"
	"context"
	"image/png"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Format of the encoded image
type Format int

const (
	PPM Format = iota // Plain P3 PPM
	PNG
)

func (f Format) String() string {
	if f == PNG {
		return "png"
	}
	return "ppm"
}

// Target names where an image is written
type Target struct {
	Bucket string // Bucket URL such as "file:///tmp/renders" or "gs://bucket"; empty means stdout
	Key    string // Blob key inside the bucket
}

// Stdout reports whether the target is standard output
func (t Target) Stdout() bool {
	return t.Bucket == "" || t.Bucket == "-"
}

// Format picks PNG for keys ending in .png and PPM otherwise
func (t Target) Format() Format {
	if !t.Stdout() && strings.HasSuffix(strings.ToLower(t.Key), ".png") {
		return PNG
	}
	return PPM
}

func (t Target) String() string {
	if t.Stdout() {
		return "stdout"
	}
	return strings.TrimSuffix(t.Bucket, "/") + "/" + t.Key
}

// Validate rejects bucket targets without a key
func (t Target) Validate() error {
	if !t.Stdout() && t.Key == "" {
		return core.InvalidConfigf("output bucket %q needs a key", t.Bucket)
	}
	return nil
}

// Encode writes canvas to w in the given format through a 1MB buffer
func Encode(w io.Writer, canvas *renderer.Canvas, format Format) error {
	if format == PPM {
		return canvas.WritePPM(w)
	}

	buf := bufio.NewWriterSize(w, 1<<20) // use 1MB buffer
	if err := png.Encode(buf, canvas.Image()); err != nil {
		return errors.Wrap(err, "unable to encode image to buffer")
	}
	return errors.Wrap(buf.Flush(), "unable to flush buffer")
}

// Write encodes canvas to the target. stdout receives the image when the target has no bucket.
func Write(ctx context.Context, target Target, stdout io.Writer, canvas *renderer.Canvas) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target.Stdout() {
		return Encode(stdout, canvas, PPM)
	}

	bucket, err := blob.OpenBucket(ctx, target.Bucket)
	if err != nil {
		return errors.Wrapf(err, "open output bucket %q", target.Bucket)
	}
	defer bucket.Close()

	return writeBlob(ctx, bucket, target.Key, func(w io.Writer) error {
		return Encode(w, canvas, target.Format())
	})
}

// writeBlob stores what encode writes under key. A failed encode leaves no blob behind.
func writeBlob(ctx context.Context, bucket *blob.Bucket, key string, encode func(io.Writer) error) error {
	// Canceling the writer's context before Close discards the partial blob
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fd, err := bucket.NewWriter(wctx, key, nil)
	if err != nil {
		return errors.Wrapf(err, "unable to create image file at %v", key)
	}
	if err := encode(fd); err != nil {
		cancel()
		fd.Close()
		return errors.Wrapf(err, "write %v", key)
	}
	if err := fd.Close(); err != nil {
		return errors.Wrapf(err, "close %v", key)
	}
	return nil
}
