package bmp_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"ImageToBinary/bmp"
	"ImageToBinary/bmp/bmptest"
)

func TestReadHeader24(t *testing.T) {
	img := bmptest.Image{Width: 2, Height: 3, BitsPerPixel: 24, Pixels: bmptest.Fill(2, 3, []byte{1, 2, 3})}
	r := bytes.NewReader(img.Bytes())

	h, err := bmp.ReadHeader(r)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.PixelArrayOffset != 54 {
		t.Errorf("PixelArrayOffset = %d, want 54", h.PixelArrayOffset)
	}
	if h.BitsPerPixel != 24 || h.HasAlpha() || h.BytesPerPixel() != 3 {
		t.Errorf("unexpected pixel layout: bpp=%d alpha=%v bytes=%d", h.BitsPerPixel, h.HasAlpha(), h.BytesPerPixel())
	}
	if h.Signature() != "BM" {
		t.Errorf("Signature = %q, want BM", h.Signature())
	}
	if h.Width() != 2 || h.Height() != 3 || h.Planes() != 1 || h.DIBHeaderSize() != 40 {
		t.Errorf("DIB fields = %dx%d planes=%d size=%d", h.Width(), h.Height(), h.Planes(), h.DIBHeaderSize())
	}
	if int(h.FileSize()) != len(img.Bytes()) {
		t.Errorf("FileSize = %d, want %d", h.FileSize(), len(img.Bytes()))
	}
	if len(h.Remainder) != 54-bmp.HeaderFixedLen {
		t.Errorf("len(Remainder) = %d, want %d", len(h.Remainder), 54-bmp.HeaderFixedLen)
	}

	// The reader must be left on the first pixel.
	rest, _ := io.ReadAll(r)
	if !bytes.Equal(rest, img.Pixels) {
		t.Errorf("bytes after header = %v, want pixel array %v", rest, img.Pixels)
	}
}

func TestReadHeaderKeepsExtraHeaderBytes(t *testing.T) {
	extra := []byte{0xde, 0xad, 0xbe, 0xef}
	img := bmptest.Image{Width: 1, Height: 1, BitsPerPixel: 32, Extra: extra, Pixels: []byte{1, 2, 3, 4}}

	h, err := bmp.ReadHeader(bytes.NewReader(img.Bytes()))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if !bytes.HasSuffix(h.Remainder, extra) {
		t.Errorf("Remainder %v does not end with the extra bytes %v", h.Remainder, extra)
	}
}

func TestReadHeaderRejectsOtherBitDepths(t *testing.T) {
	for _, bpp := range []uint16{1, 4, 8, 16} {
		img := bmptest.Image{Width: 1, Height: 1, BitsPerPixel: bpp, Pixels: []byte{0, 0, 0, 0}}
		_, err := bmp.ReadHeader(bytes.NewReader(img.Bytes()))
		var fe *bmp.FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("bpp %d: got %v, want *FormatError", bpp, err)
		}
		if fe.BitsPerPixel != bpp {
			t.Errorf("FormatError.BitsPerPixel = %d, want %d", fe.BitsPerPixel, bpp)
		}
	}
}

func TestReadHeaderRejectsOffsetInsideHeader(t *testing.T) {
	data := bmptest.Image{Width: 1, Height: 1, BitsPerPixel: 24}.Bytes()
	data[10] = 20 // pixel array offset
	_, err := bmp.ReadHeader(bytes.NewReader(data))
	var fe *bmp.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *FormatError", err)
	}
}

func TestReadHeaderTruncated(t *testing.T) {
	data := bmptest.Image{Width: 1, Height: 1, BitsPerPixel: 24}.Bytes()
	for _, n := range []int{0, 5, 12, 20, 29, 40} {
		_, err := bmp.ReadHeader(bytes.NewReader(data[:n]))
		var ioe *bmp.IOError
		if !errors.As(err, &ioe) {
			t.Fatalf("truncated at %d: got %v, want *IOError", n, err)
		}
		if ioe.Op != "read" {
			t.Errorf("truncated at %d: Op = %q, want read", n, ioe.Op)
		}
	}
}

func TestWriteTailSkipsPrefix(t *testing.T) {
	img := bmptest.Image{Width: 2, Height: 2, BitsPerPixel: 24, Extra: []byte{9, 9}}
	data := img.Bytes()
	h, err := bmp.ReadHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}

	var tail bytes.Buffer
	if err := h.WriteTail(&tail); err != nil {
		t.Fatalf("WriteTail failed: %v", err)
	}
	if !bytes.Equal(tail.Bytes(), data[bmp.PrefixLen:img.HeaderLen()]) {
		t.Errorf("WriteTail = %v, want %v", tail.Bytes(), data[bmp.PrefixLen:img.HeaderLen()])
	}

	var full bytes.Buffer
	if err := h.Write(&full); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.Equal(full.Bytes(), data[:img.HeaderLen()]) {
		t.Errorf("Write = %v, want %v", full.Bytes(), data[:img.HeaderLen()])
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteTailReportsIOError(t *testing.T) {
	h, err := bmp.ReadHeader(bytes.NewReader(bmptest.Image{Width: 1, Height: 1, BitsPerPixel: 24}.Bytes()))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	err = h.WriteTail(failingWriter{})
	var ioe *bmp.IOError
	if !errors.As(err, &ioe) || ioe.Op != "write" {
		t.Fatalf("got %v, want write *IOError", err)
	}
}
