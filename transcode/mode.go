package transcode

import (
	"fmt"

	"ImageToBinary/structs"
)

// OutputMode fixes the output byte layout for one conversion.
type OutputMode int

const (
	RawNative OutputMode = iota
	RawGrey
	RawBw
	RawRgb565
	BmpNative
	BmpGrey
	BmpBw
)

var modeNames = [...]string{
	RawNative: "raw",
	RawGrey:   "raw greyscale",
	RawBw:     "raw black/white",
	RawRgb565: "raw RGB565",
	BmpNative: "bmp",
	BmpGrey:   "bmp greyscale",
	BmpBw:     "bmp black/white",
}

func (m OutputMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
	return modeNames[m]
}

// SelectMode maps options to an output mode. RGB565 is always raw.
func SelectMode(opts structs.ConversionOptions) OutputMode {
	switch opts.Format {
	case structs.FormatGreyscale:
		if opts.Raw {
			return RawGrey
		}
		return BmpGrey
	case structs.FormatBlackWhite:
		if opts.Raw {
			return RawBw
		}
		return BmpBw
	case structs.FormatRGB565:
		return RawRgb565
	}
	if opts.Raw {
		return RawNative
	}
	return BmpNative
}

// Raw reports whether the output is a headerless pixel stream.
func (m OutputMode) Raw() bool {
	return m <= RawRgb565
}

// EchoesHeader reports whether the header tail is written before the pixels.
func (m OutputMode) EchoesHeader() bool {
	return !m.Raw()
}

// Transforms reports whether pixel values are rewritten.
func (m OutputMode) Transforms() bool {
	return m != RawNative && m != BmpNative
}

// PixelWidth is the number of output bytes per input pixel.
func (m OutputMode) PixelWidth(bitsPerPixel uint16, noAlpha bool) int {
	if m == RawRgb565 {
		return 2
	}
	if bitsPerPixel == 32 && !noAlpha {
		return 4
	}
	return 3
}

func (m OutputMode) Extension() string {
	if m.Raw() {
		return ".raw"
	}
	return ".bmp"
}
