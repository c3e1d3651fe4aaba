// Package convert runs the decode, transcode and write steps for each input
// file and reports one Result per file. A failing file never stops the batch.
//
// Output files that fail part way through are left on disk as written.
//
// For .bmp outputs ConvertFile ignores Options.NoAlpha: the echoed header
// still declares the input bit depth, so 32-bit pixels keep their alpha byte.
// Callers that need alpha dropped from greyscale or black/white pixels should
// use raw output or call transcode.Transcode directly.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"ImageToBinary/bmp"
	"ImageToBinary/imagedecode"
	"ImageToBinary/outfile"
	"ImageToBinary/structs"
	"ImageToBinary/transcode"
	"ImageToBinary/utils"

	"golang.org/x/sync/errgroup"
)

// Runner holds the settings shared by every file in a batch.
type Runner struct {
	Options   structs.ConversionOptions
	Decode    imagedecode.Options
	OutputDir string
	// PixelArraySize is a size expression checked against each pixel array;
	// empty disables the check.
	PixelArraySize string
	Workers        int
	Verbose        bool
}

// Result is the outcome of converting one input file.
type Result struct {
	Input       string
	InputFormat string
	Output      string // Empty if no output file was created
	Mode        transcode.OutputMode
	Stats       transcode.Stats
	Warnings    []string
	Err         error
}

// CreateError reports that no output file could be created.
type CreateError struct {
	Path string
	Err  error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("cannot create %s: %v", e.Path, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }

// Kind classifies r.Err as "format", "decode", "create" or "io"; "" on success.
func (r Result) Kind() string {
	var fe *bmp.FormatError
	var de *imagedecode.DecodeError
	var ce *CreateError
	switch {
	case r.Err == nil:
		return ""
	case errors.As(r.Err, &fe):
		return "format"
	case errors.As(r.Err, &de):
		return "decode"
	case errors.As(r.Err, &ce):
		return "create"
	}
	return "io"
}

// Run converts inputs and returns their results in input order.
func (r *Runner) Run(inputs []string) []Result {
	results := make([]Result, len(inputs))
	if r.Workers <= 1 || len(inputs) < 2 {
		for i, input := range inputs {
			results[i] = r.ConvertFile(input)
		}
		return results
	}

	// Failures live in each Result, so the group itself never returns an error.
	var g errgroup.Group
	g.SetLimit(r.Workers)
	for i, input := range inputs {
		g.Go(func() error {
			results[i] = r.ConvertFile(input)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// ConvertFile converts a single input file.
func (r *Runner) ConvertFile(input string) Result {
	opts := r.Options
	res := Result{Input: input, Mode: transcode.SelectMode(opts)}

	data, format, err := imagedecode.DecodeFile(input, r.Decode)
	res.InputFormat = format
	if err != nil {
		res.Err = err
		return res
	}

	// The header is checked before an output file exists, so a rejected
	// input leaves nothing behind.
	in := bytes.NewReader(data)
	h, err := bmp.ReadHeader(in)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", input, err)
		return res
	}
	res.Stats.Header = h
	if r.Verbose {
		log.Printf("Info: %s: %s, %dx%d, %d bpp, pixel array at %d.", input, format, h.Width(), h.Height(), h.BitsPerPixel, h.PixelArrayOffset)
	}

	base := outfile.Base(input, r.OutputDir)
	path, f, err := outfile.CreateExclusive(base, res.Mode.Extension())
	if err != nil {
		res.Err = &CreateError{Path: base + res.Mode.Extension(), Err: err}
		return res
	}
	res.Output = path

	var pixelBytes int64
	switch {
	case res.Mode == transcode.BmpNative:
		// The decoded container is saved as is.
		n, werr := f.Write(data)
		res.Stats.BytesWritten = int64(n)
		pixelBytes = int64(len(data)) - int64(h.PixelArrayOffset)
		if werr != nil {
			err = &bmp.IOError{Op: "write", What: "bitmap", Err: werr}
		}
	case res.Mode.EchoesHeader():
		// The transcoder leaves out the 10-byte prefix; put it back so the
		// output is a complete BMP. Alpha is kept because the echoed header
		// still declares the input bit depth.
		opts.NoAlpha = false
		if _, werr := f.Write(h.Prefix[:]); werr != nil {
			err = &bmp.IOError{Op: "write", What: "file header", Err: werr}
			break
		}
		res.Stats, err = transcode.TranscodeHeader(h, in, f, opts)
		res.Stats.BytesWritten += bmp.PrefixLen
		pixelBytes = res.Stats.PixelBytesRead()
	default:
		res.Stats, err = transcode.TranscodeHeader(h, in, f, opts)
		pixelBytes = res.Stats.PixelBytesRead()
	}
	res.Stats.Header = h
	res.Stats.Mode = res.Mode

	if cerr := f.Close(); cerr != nil && err == nil {
		err = &bmp.IOError{Op: "write", What: "close " + path, Err: cerr}
	}
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", input, err)
		return res
	}

	if r.PixelArraySize != "" {
		if w := checkPixelArraySize(r.PixelArraySize, h, pixelBytes); w != "" {
			res.Warnings = append(res.Warnings, w)
		}
	}
	return res
}

func checkPixelArraySize(expr string, h *bmp.Header, got int64) string {
	want, err := utils.ExpectedPixelArraySize(expr, h)
	if err != nil {
		return fmt.Sprintf("pixel array size check skipped: %v", err)
	}
	if got < want {
		return fmt.Sprintf("pixel array is %d bytes, header promises %d (truncated)", got, want)
	}
	if got > want {
		return fmt.Sprintf("pixel array is %d bytes, header promises %d (%d extra)", got, want, got-want)
	}
	return ""
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
