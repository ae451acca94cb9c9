package loaders

import (
	"context"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageData is a decoded image as tightly packed 8-bit RGB, top row first
type ImageData struct {
	Width  int
	Height int
	Pixels []byte // len == 3 * Width * Height
}

// DecodeImage decodes a PNG or JPEG stream into RGB8 pixels.
// Alpha is dropped; colors are taken as stored.
func DecodeImage(r io.Reader) (*ImageData, error) {
	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]byte, 0, 3*width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels = append(pixels, uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// Source opens named image assets
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Load reads and decodes the named image from src.
// Any failure to find or decode it is reported as core.ErrMissingAsset.
func Load(ctx context.Context, src Source, name string) (*ImageData, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(core.ErrMissingAsset, "open %s: %v", name, err)
	}
	defer rc.Close()

	data, err := DecodeImage(rc)
	if err != nil {
		return nil, errors.Wrapf(core.ErrMissingAsset, "%s: %v", name, err)
	}
	return data, nil
}

// LoadImage loads a PNG or JPEG image from the local filesystem
func LoadImage(filename string) (*ImageData, error) {
	return Load(context.Background(), DirSource{}, filename)
}

// DirSource opens assets relative to a local directory.
// An empty Root resolves names against the working directory.
type DirSource struct {
	Root string
}

// Open opens the named file under Root
func (d DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	path := name
	if d.Root != "" && !filepath.IsAbs(name) {
		path = filepath.Join(d.Root, name)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image file")
	}
	return f, nil
}

// BucketSource opens assets from a gocloud blob bucket
type BucketSource struct {
	Bucket *blob.Bucket
}

// OpenBucketSource opens the bucket at url, for example "file:///tmp/assets",
// "mem://" or "gs://my-bucket"
func OpenBucketSource(ctx context.Context, url string) (*BucketSource, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "open asset bucket %q", url)
	}
	return &BucketSource{Bucket: bucket}, nil
}

// Open returns a reader for the blob stored under name
func (b *BucketSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := b.Bucket.NewReader(ctx, name, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, errors.Wrapf(os.ErrNotExist, "blob %q", name)
		}
		return nil, errors.Wrapf(err, "blob %q", name)
	}
	return r, nil
}

// Close releases the underlying bucket
func (b *BucketSource) Close() error {
	return b.Bucket.Close()
}

// NewSource picks a local directory or, when location has a URL scheme,
// a blob bucket
func NewSource(ctx context.Context, location string) (Source, error) {
	if strings.Contains(location, "://") {
		return OpenBucketSource(ctx, location)
	}
	return DirSource{Root: location}, nil
}
