// Package bmptest assembles small BMP byte streams for tests.
package bmptest

import (
	"bytes"
	"encoding/binary"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
)

// Image describes a BMP to assemble. Pixels are written verbatim after the
// headers, so any row padding must already be present.
type Image struct {
	Width        int32
	Height       int32
	BitsPerPixel uint16
	Extra        []byte // Written between the info header and the pixel array
	Pixels       []byte
}

// Helper function to handle writing into the buffer
func writeBinary(buf *bytes.Buffer, data interface{}) {
	// bytes.Buffer writes never fail
	_ = binary.Write(buf, binary.LittleEndian, data)
}

// Bytes returns the complete BMP file for img.
func (img Image) Bytes() []byte {
	var buf bytes.Buffer
	dataOffset := uint32(fileHeaderSize + infoHeaderSize + len(img.Extra))
	fileSize := dataOffset + uint32(len(img.Pixels))

	// BMP File Header
	buf.WriteString("BM")
	writeBinary(&buf, fileSize)
	writeBinary(&buf, uint16(0)) // Reserved 1
	writeBinary(&buf, uint16(0)) // Reserved 2
	writeBinary(&buf, dataOffset)

	// DIB Header (BITMAPINFOHEADER)
	writeBinary(&buf, uint32(infoHeaderSize))
	writeBinary(&buf, img.Width)
	writeBinary(&buf, img.Height)
	writeBinary(&buf, uint16(1)) // Planes
	writeBinary(&buf, img.BitsPerPixel)
	writeBinary(&buf, uint32(0)) // Compression - BI_RGB
	writeBinary(&buf, uint32(len(img.Pixels)))
	writeBinary(&buf, int32(2835)) // X Pixels Per Meter
	writeBinary(&buf, int32(2835)) // Y Pixels Per Meter
	writeBinary(&buf, uint32(0))   // Colors Used
	writeBinary(&buf, uint32(0))   // Important Colors

	buf.Write(img.Extra)
	buf.Write(img.Pixels)
	return buf.Bytes()
}

// HeaderLen is the offset of the pixel array in Bytes().
func (img Image) HeaderLen() int {
	return fileHeaderSize + infoHeaderSize + len(img.Extra)
}

// Fill returns width*height copies of px with each row padded to 4 bytes.
func Fill(width, height int, px []byte) []byte {
	row := width * len(px)
	padding := (4 - row%4) % 4
	out := make([]byte, 0, height*(row+padding))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out = append(out, px...)
		}
		out = append(out, make([]byte, padding)...)
	}
	return out
}
