// project/structs/structs.go
package structs

import (
	"fmt"
	"strings"
)

// Format is the pixel transform requested for a conversion.
type Format int

const (
	FormatNone Format = iota
	FormatRGB565
	FormatGreyscale
	FormatBlackWhite
)

var formatNames = map[Format]string{
	FormatNone:       "",
	FormatRGB565:     "rgb565",
	FormatGreyscale:  "greyscale",
	FormatBlackWhite: "bw",
}

// Accepted spellings for ParseFormat, including the canonical names.
var formatAliases = map[string]Format{
	"":           FormatNone,
	"none":       FormatNone,
	"rgb565":     FormatRGB565,
	"565":        FormatRGB565,
	"greyscale":  FormatGreyscale,
	"grayscale":  FormatGreyscale,
	"grey":       FormatGreyscale,
	"gray":       FormatGreyscale,
	"bw":         FormatBlackWhite,
	"blackwhite": FormatBlackWhite,
	"mono":       FormatBlackWhite,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		if name == "" {
			return "none"
		}
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Valid reports whether f is one of the declared formats.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// ParseFormat accepts the canonical names and common aliases, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return FormatNone, fmt.Errorf("unknown format %q (want rgb565, greyscale or bw)", s)
	}
	return f, nil
}

// MarshalYAML writes the canonical name.
func (f Format) MarshalYAML() (interface{}, error) {
	return formatNames[f], nil
}

// UnmarshalYAML accepts anything ParseFormat does.
func (f *Format) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ConversionOptions is built once per run and passed by value.
type ConversionOptions struct {
	NoAlpha bool   `yaml:"noAlpha" mapstructure:"noAlpha"`
	Raw     bool   `yaml:"raw" mapstructure:"raw"`
	Format  Format `yaml:"format" mapstructure:"format"`
}

// DefaultOptions matches the command line defaults: raw output without alpha.
func DefaultOptions() ConversionOptions {
	return ConversionOptions{NoAlpha: true, Raw: true}
}

// WithFormat returns o with f selected. The first format wins: if one is
// already set, o is returned unchanged together with an *OptionConflictError.
func (o ConversionOptions) WithFormat(f Format) (ConversionOptions, error) {
	if f == FormatNone {
		return o, nil
	}
	if o.Format != FormatNone && f != o.Format {
		return o, &OptionConflictError{Kept: o.Format, Ignored: f}
	}
	o.Format = f
	return o, nil
}

// OptionConflictError is a warning: a second format was requested and ignored.
type OptionConflictError struct {
	Kept    Format
	Ignored Format
}

func (e *OptionConflictError) Error() string {
	return fmt.Sprintf("format %s already selected, ignoring %s", e.Kept, e.Ignored)
}
