// Package bmp reads the part of a BMP header the transcoder needs and echoes it back.
package bmp

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	PrefixLen   = 10 // "BM", file size, reserved words
	DIBBlockLen = 14 // DIB header size, width, height, planes

	// HeaderFixedLen is the number of bytes read before the header remainder.
	HeaderFixedLen = PrefixLen + 4 + DIBBlockLen + 2
)

type Header struct {
	Prefix           [PrefixLen]byte   // Signature, file size, reserved (never echoed by WriteTail)
	PixelArrayOffset uint32            // Offset from stream start to the first pixel
	DIBBlock         [DIBBlockLen]byte // DIB header size, width, height, planes
	BitsPerPixel     uint16            // 24 or 32
	Remainder        []byte            // Bytes between HeaderFixedLen and PixelArrayOffset
}

// ReadHeader reads a BMP header from r, leaving r positioned at the first pixel.
// Bit depths other than 24 and 32 are rejected with a *FormatError.
func ReadHeader(r io.Reader) (*Header, error) {
	h := &Header{}
	if err := h.Read(r); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Header) Read(r io.Reader) error {
	if _, err := io.ReadFull(r, h.Prefix[:]); err != nil {
		return &IOError{Op: "read", What: "file header", Err: err}
	}

	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return &IOError{Op: "read", What: "pixel array offset", Err: err}
	}
	h.PixelArrayOffset = binary.LittleEndian.Uint32(b[:])

	if _, err := io.ReadFull(r, h.DIBBlock[:]); err != nil {
		return &IOError{Op: "read", What: "DIB header", Err: err}
	}

	if _, err := io.ReadFull(r, b[:2]); err != nil {
		return &IOError{Op: "read", What: "bits per pixel", Err: err}
	}
	h.BitsPerPixel = binary.LittleEndian.Uint16(b[:2])

	if h.BitsPerPixel != 24 && h.BitsPerPixel != 32 {
		return &FormatError{BitsPerPixel: h.BitsPerPixel}
	}
	if h.PixelArrayOffset < HeaderFixedLen {
		return &FormatError{
			BitsPerPixel: h.BitsPerPixel,
			Reason:       fmt.Sprintf("pixel array offset %d is inside the fixed header", h.PixelArrayOffset),
		}
	}

	h.Remainder = make([]byte, h.PixelArrayOffset-HeaderFixedLen)
	if _, err := io.ReadFull(r, h.Remainder); err != nil {
		return &IOError{Op: "read", What: "header remainder", Err: err}
	}
	return nil
}

// WriteTail echoes everything after the 10-byte prefix in the order it was read.
func (h *Header) WriteTail(w io.Writer) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], h.PixelArrayOffset)
	if _, err := w.Write(b[:]); err != nil {
		return &IOError{Op: "write", What: "pixel array offset", Err: err}
	}
	if _, err := w.Write(h.DIBBlock[:]); err != nil {
		return &IOError{Op: "write", What: "DIB header", Err: err}
	}
	binary.LittleEndian.PutUint16(b[:2], h.BitsPerPixel)
	if _, err := w.Write(b[:2]); err != nil {
		return &IOError{Op: "write", What: "bits per pixel", Err: err}
	}
	if _, err := w.Write(h.Remainder); err != nil {
		return &IOError{Op: "write", What: "header remainder", Err: err}
	}
	return nil
}

// Write writes the complete header, prefix included.
func (h *Header) Write(w io.Writer) error {
	if _, err := w.Write(h.Prefix[:]); err != nil {
		return &IOError{Op: "write", What: "file header", Err: err}
	}
	return h.WriteTail(w)
}

func (h *Header) BytesPerPixel() int {
	return int(h.BitsPerPixel) / 8
}

func (h *Header) HasAlpha() bool {
	return h.BitsPerPixel == 32
}

// Signature returns the two magic bytes, normally "BM".
func (h *Header) Signature() string {
	return string(h.Prefix[:2])
}

// FileSize returns the file size recorded in the prefix.
func (h *Header) FileSize() uint32 {
	return binary.LittleEndian.Uint32(h.Prefix[2:6])
}

func (h *Header) DIBHeaderSize() uint32 {
	return binary.LittleEndian.Uint32(h.DIBBlock[0:4])
}

func (h *Header) Width() int32 {
	return int32(binary.LittleEndian.Uint32(h.DIBBlock[4:8]))
}

// Height is negative for top-down bitmaps.
func (h *Header) Height() int32 {
	return int32(binary.LittleEndian.Uint32(h.DIBBlock[8:12]))
}

func (h *Header) Planes() uint16 {
	return binary.LittleEndian.Uint16(h.DIBBlock[12:14])
}
