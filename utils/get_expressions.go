package utils

import (
	"fmt"
	"strings"

	"github.com/knetic/govaluate"

	"ImageToBinary/bmp"
)

// DefaultPixelArraySize is the layout of an uncompressed bottom-up or top-down
// BMP: every row padded to a multiple of 4 bytes.
const DefaultPixelArraySize = "CalculatePaddedSize(Width, Height, BitsPerPixel)"

// GetExpressionFunctions defines functions usable in pixel array size expressions.
func GetExpressionFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"CalculatePaddedSize": func(args ...interface{}) (interface{}, error) {
			if len(args) != 3 {
				return nil, fmt.Errorf("CalculatePaddedSize expects 3 arguments (width, height, bitsPerPixel)")
			}

			// govaluate hands numbers over as float64
			var width, height, bitsPerPixel float64
			var ok bool

			width, ok = args[0].(float64)
			if !ok {
				return nil, fmt.Errorf("arg 1 (width) must be numeric for CalculatePaddedSize")
			}
			height, ok = args[1].(float64)
			if !ok {
				return nil, fmt.Errorf("arg 2 (height) must be numeric for CalculatePaddedSize")
			}
			bitsPerPixel, ok = args[2].(float64)
			if !ok {
				return nil, fmt.Errorf("arg 3 (bitsPerPixel) must be numeric for CalculatePaddedSize")
			}

			bytesPerPixel := int(bitsPerPixel / 8)
			if bytesPerPixel <= 0 {
				return nil, fmt.Errorf("unsupported bitsPerPixel for simple calculation: %v", bitsPerPixel)
			}

			bytesPerRow := int(width) * bytesPerPixel
			paddingPerRow := (4 - (bytesPerRow % 4)) % 4
			paddedRowSize := bytesPerRow + paddingPerRow
			totalSize := int(height) * paddedRowSize

			return float64(totalSize), nil
		},
		"abs": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("abs expects 1 argument")
			}
			v, ok := args[0].(float64)
			if !ok {
				return nil, fmt.Errorf("abs argument must be numeric")
			}
			if v < 0 {
				return -v, nil
			}
			return v, nil
		},
	}
}

// IsValidExpression rejects empty and placeholder expressions.
func IsValidExpression(expr string) bool {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" || trimmed == "..." {
		return false
	}
	return true
}

// CompileExpression parses expr with the functions above available.
func CompileExpression(expr string) (*govaluate.EvaluableExpression, error) {
	if !IsValidExpression(expr) {
		return nil, fmt.Errorf("invalid expression %q", expr)
	}
	return govaluate.NewEvaluableExpressionWithFunctions(expr, GetExpressionFunctions())
}

// HeaderParameters exposes the header fields an expression may reference.
// Height is always positive; top-down bitmaps store it negated.
func HeaderParameters(h *bmp.Header) map[string]interface{} {
	height := float64(h.Height())
	if height < 0 {
		height = -height
	}
	return map[string]interface{}{
		"Width":            float64(h.Width()),
		"Height":           height,
		"BitsPerPixel":     float64(h.BitsPerPixel),
		"PixelArrayOffset": float64(h.PixelArrayOffset),
		"FileSize":         float64(h.FileSize()),
		"DIBHeaderSize":    float64(h.DIBHeaderSize()),
	}
}

// ExpectedPixelArraySize evaluates expr against h and returns the number of
// pixel array bytes the header promises.
func ExpectedPixelArraySize(expr string, h *bmp.Header) (int64, error) {
	compiled, err := CompileExpression(expr)
	if err != nil {
		return 0, err
	}
	result, err := compiled.Evaluate(HeaderParameters(h))
	if err != nil {
		return 0, fmt.Errorf("evaluating %q: %w", expr, err)
	}
	size, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("expression %q returned %T, want a number", expr, result)
	}
	if size < 0 {
		return 0, fmt.Errorf("expression %q returned negative size %v", expr, size)
	}
	return int64(size), nil
}
