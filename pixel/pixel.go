// Package pixel holds the per-pixel colour transforms used by the transcoder.
package pixel

import "math"

// BlackWhiteThreshold is the highest luma value that still maps to black.
const BlackWhiteThreshold = 127

// Luma returns the ITU-R 601 luma of a pixel, rounded half to even.
func Luma(r, g, b uint8) uint8 {
	y := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	return uint8(math.RoundToEven(y))
}

// Threshold maps a grey value to pure black (0) or pure white (255).
func Threshold(grey uint8) uint8 {
	if grey > BlackWhiteThreshold {
		return 255
	}
	return 0
}

// Pack565 packs a pixel into 16 bits: 5 bits red, 6 bits green, 5 bits blue.
func Pack565(r, g, b uint8) uint16 {
	return uint16(b>>3) | uint16(g>>2)<<5 | uint16(r>>3)<<11
}

// Unpack565 is the inverse of Pack565. The low bits lost when packing come back as zero.
func Unpack565(v uint16) (r, g, b uint8) {
	r = uint8(v>>11) << 3
	g = uint8(v>>5&0x3f) << 2
	b = uint8(v&0x1f) << 3
	return r, g, b
}
