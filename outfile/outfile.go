// Package outfile picks collision-free output names and creates files without
// ever overwriting an existing one.
package outfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MaxSuffix bounds the _N suffixes tried before giving up.
const MaxSuffix = 10000

// ErrExist is returned (wrapped) when an exclusive create finds the file already there.
var ErrExist = fs.ErrExist

// Create opens path for writing and fails with an error matching ErrExist if
// it already exists.
func Create(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
}

// CreateExclusive creates base+ext, or the first free base_N+ext, and returns
// the chosen path with the open file.
func CreateExclusive(base, ext string) (string, *os.File, error) {
	path := base + ext
	f, err := Create(path)
	if err == nil {
		return path, f, nil
	}
	if !errors.Is(err, ErrExist) {
		return "", nil, err
	}

	for n := 0; n < MaxSuffix; n++ {
		path = fmt.Sprintf("%s_%d%s", base, n, ext)
		f, err = Create(path)
		if err == nil {
			return path, f, nil
		}
		if !errors.Is(err, ErrExist) {
			return "", nil, err
		}
	}
	return "", nil, fmt.Errorf("no free name for %s%s after %d attempts: %w", base, ext, MaxSuffix, ErrExist)
}

// Base strips the extension from input and, when outDir is set, moves it there.
func Base(input, outDir string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if outDir != "" {
		base = filepath.Join(outDir, filepath.Base(base))
	}
	return base
}
