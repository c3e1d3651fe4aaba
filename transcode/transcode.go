// Package transcode rewrites the pixel array of a 24/32-bit BMP stream into
// one of the raw or container output layouts.
//
// The transcoder walks the pixel array as a flat byte stream: rows are never
// reordered and row padding is treated like pixel data. RGB565 values are
// written big-endian, the opposite byte order of the little-endian input.
package transcode

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"ImageToBinary/bmp"
	"ImageToBinary/pixel"
	"ImageToBinary/structs"
)

// Stats describes a finished conversion.
type Stats struct {
	Header        *bmp.Header
	Mode          OutputMode
	Pixels        int64 // Complete pixels converted
	TrailingBytes int   // Bytes of a final partial pixel that were dropped
	BytesWritten  int64
}

// PixelBytesRead is the size of the pixel array that was consumed.
func (s Stats) PixelBytesRead() int64 {
	if s.Header == nil {
		return 0
	}
	return s.Pixels*int64(s.Header.BytesPerPixel()) + int64(s.TrailingBytes)
}

// Transcode reads a BMP from r and writes the converted stream to w.
// Nothing is written if the header is rejected.
func Transcode(r io.Reader, w io.Writer, opts structs.ConversionOptions) (Stats, error) {
	br := bufio.NewReader(r)
	h, err := bmp.ReadHeader(br)
	if err != nil {
		return Stats{}, err
	}
	return TranscodeHeader(h, br, w, opts)
}

// TranscodeHeader is Transcode for a caller that has already read the header;
// r must be positioned at the first pixel.
func TranscodeHeader(h *bmp.Header, r io.Reader, w io.Writer, opts structs.ConversionOptions) (Stats, error) {
	mode := SelectMode(opts)
	stats := Stats{Header: h, Mode: mode}

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	if mode.EchoesHeader() {
		if err := h.WriteTail(bw); err != nil {
			return stats, err
		}
	}

	in := make([]byte, h.BytesPerPixel())
	out := make([]byte, 0, 4)
	for {
		n, err := io.ReadFull(r, in)
		if err == io.EOF {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			stats.TrailingBytes = n
			break
		}
		if err != nil {
			stats.BytesWritten = cw.n
			return stats, &bmp.IOError{Op: "read", What: "pixel array", Err: err}
		}

		out = encodePixel(out[:0], in, mode, opts.NoAlpha)
		if _, err := bw.Write(out); err != nil {
			stats.BytesWritten = cw.n
			return stats, &bmp.IOError{Op: "write", What: "pixel", Err: err}
		}
		stats.Pixels++
	}

	if err := bw.Flush(); err != nil {
		stats.BytesWritten = cw.n
		return stats, &bmp.IOError{Op: "write", What: "output", Err: err}
	}
	stats.BytesWritten = cw.n
	return stats, nil
}

// encodePixel appends the output encoding of one B,G,R[,A] pixel to dst.
func encodePixel(dst, px []byte, mode OutputMode, noAlpha bool) []byte {
	b, g, r := px[0], px[1], px[2]
	hasAlpha := len(px) == 4

	switch mode {
	case RawRgb565:
		return binary.BigEndian.AppendUint16(dst, pixel.Pack565(r, g, b))
	case RawGrey, BmpGrey:
		y := pixel.Luma(r, g, b)
		dst = append(dst, y, y, y)
	case RawBw, BmpBw:
		y := pixel.Threshold(pixel.Luma(r, g, b))
		dst = append(dst, y, y, y)
	default:
		dst = append(dst, b, g, r)
	}

	if hasAlpha && !noAlpha {
		dst = append(dst, px[3])
	}
	return dst
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
