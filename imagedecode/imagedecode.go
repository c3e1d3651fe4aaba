// Package imagedecode turns an image file of any supported format into the
// BMP byte stream the transcoder works on.
//
// Opaque images become 24-bit BMPs, images with any transparency 32-bit ones.
package imagedecode

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/nfnt/resize"
	gobmp "github.com/sergeymakinen/go-bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Options controls the decode step. A zero Width or Height keeps the aspect
// ratio for that dimension; both zero disables resizing.
type Options struct {
	Width  uint
	Height uint
}

func (o Options) resizes() bool {
	return o.Width != 0 || o.Height != 0
}

// DecodeError reports an input that could not be decoded as an image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeFile decodes the image at path and returns it encoded as a BMP.
func DecodeFile(path string, opts Options) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	data, format, err := Decode(f, opts)
	if err != nil {
		return nil, format, &DecodeError{Path: path, Err: err}
	}
	return data, format, nil
}

// Decode reads an image from r and returns it encoded as a BMP together with
// the name of the input format.
func Decode(r io.Reader, opts Options) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	if opts.resizes() {
		img = resize.Resize(opts.Width, opts.Height, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := gobmp.Encode(&buf, toNRGBA(img)); err != nil {
		return nil, format, fmt.Errorf("encoding %s image as bmp: %w", format, err)
	}
	return buf.Bytes(), format, nil
}

// toNRGBA flattens paletted and grey images so the encoder always picks 24 or 32 bits.
func toNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
