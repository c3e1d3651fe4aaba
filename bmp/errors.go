package bmp

import "fmt"

// FormatError reports a BMP this tool cannot transcode: palette, compressed
// or otherwise not 24/32 bits per pixel.
type FormatError struct {
	BitsPerPixel uint16
	Reason       string
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return "bmp: unknown format: " + e.Reason
	}
	return fmt.Sprintf("bmp: unknown format: %d bits per pixel (only 24 and 32 are supported)", e.BitsPerPixel)
}

// IOError reports a failed read or write on one of the byte streams.
type IOError struct {
	Op   string // "read" or "write"
	What string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("bmp: %s %s: %v", e.Op, e.What, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
