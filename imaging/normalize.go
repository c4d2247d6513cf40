// Package imaging turns an uploaded photo into a bounded JPEG data URI that
// is safe to keep inside an item record.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"io"
	"math"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
)

const (
	DefaultMaxWidth = 800
	DefaultQuality  = 70

	// MaxInputBytes bounds how much of an upload is read.
	MaxInputBytes = 32 << 20
	// MaxPixels bounds the decoded raster. It is checked from the image
	// header before any pixel data is allocated.
	MaxPixels = 50_000_000

	dataURIPrefix = "data:image/jpeg;base64,"
)

var (
	// ErrDecode means the input could not be read as an image.
	ErrDecode = errors.New("imaging: cannot decode image")
	// ErrTooLarge means the input exceeded MaxInputBytes or MaxPixels.
	ErrTooLarge = errors.New("imaging: image too large")
)

// Normalizer re-encodes images to at most MaxWidth pixels wide.
type Normalizer struct {
	MaxWidth int
	Quality  int // JPEG quality 1-100
}

// New returns a Normalizer, substituting defaults for non-positive values.
func New(maxWidth, quality int) *Normalizer {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Normalizer{MaxWidth: maxWidth, Quality: quality}
}

// TargetSize returns the output dimensions for a w×h input. Images no wider
// than maxWidth keep their size; wider ones are scaled to maxWidth with the
// height scaled by the same factor.
func TargetSize(w, h, maxWidth int) (int, int) {
	if w <= maxWidth {
		return w, h
	}
	nh := int(math.Round(float64(h) * float64(maxWidth) / float64(w)))
	if nh < 1 {
		nh = 1
	}
	return maxWidth, nh
}

// Normalize decodes r, downsizes it if needed and returns a JPEG data URI.
func (n *Normalizer) Normalize(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("imaging: read: %w", err)
	}
	if len(data) > MaxInputBytes {
		return "", ErrTooLarge
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if tooManyPixels(cfg.Width, cfg.Height) {
		return "", fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	b := src.Bounds()
	w, h := TargetSize(b.Dx(), b.Dy(), n.MaxWidth)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG has no alpha; flatten onto white.
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: n.Quality}); err != nil {
		return "", fmt.Errorf("imaging: encode: %w", err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(out.Bytes()), nil
}

// DecodeDataURI returns the bytes embedded in a base64 image data URI.
func DecodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:image/") {
		return nil, fmt.Errorf("%w: not an image data URI", ErrDecode)
	}
	meta, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: not base64 encoded", ErrDecode)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return data, nil
}

// Dimensions reports the pixel size of the image in a data URI.
func Dimensions(uri string) (int, int, error) {
	data, err := DecodeDataURI(uri)
	if err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return cfg.Width, cfg.Height, nil
}

func tooManyPixels(w, h int) bool {
	return w <= 0 || h <= 0 || int64(w)*int64(h) > MaxPixels
}

// CheckStored verifies that uri is a decodable image no wider than
// maxWidth, i.e. something Normalize could have produced.
func CheckStored(uri string, maxWidth int) error {
	w, h, err := Dimensions(uri)
	if err != nil {
		return err
	}
	if w > maxWidth || tooManyPixels(w, h) {
		return fmt.Errorf("%w: %dx%d exceeds %d px width", ErrTooLarge, w, h, maxWidth)
	}
	return nil
}
