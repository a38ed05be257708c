// Package serial allocates the sequential identifiers imported files are
// named after. The destination directory's contents are the only source of
// truth: the next identifier is always re-derived by scanning existing names,
// never read from a counter file.
package serial

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
)

// Width is the number of digits in the zero-padded counter. Names with a
// different digit count do not match the pattern.
const Width = 4

// Pattern compiles the identifier filename pattern for the given prefix and
// extension, e.g. ^LOP25-(\d{4})\.jpeg$. The prefix is matched
// case-sensitively.
func Pattern(prefix, ext string) (*regexp.Regexp, error) {
	if prefix == "" {
		return nil, errors.New("serial: empty prefix")
	}
	expr := fmt.Sprintf(`^%s-(\d{%d})%s$`, regexp.QuoteMeta(prefix), Width, regexp.QuoteMeta(ext))
	return regexp.Compile(expr)
}

// Highest scans dir for filenames matching the identifier pattern and returns
// the largest counter value found. A missing directory, an empty directory,
// and a directory with no matching names all yield 0. Non-matching entries
// and subdirectories are ignored. The scan is read-only.
func Highest(dir, prefix, ext string) (int, error) {
	pattern, err := Pattern(prefix, ext)
	if err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("scan destination: %w", err)
	}

	max := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := pattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		value, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if value > max {
			max = value
		}
	}
	return max, nil
}

// Filename renders the identifier filename for counter value n,
// e.g. Filename("LOP25", 7, ".jpeg") == "LOP25-0007.jpeg".
func Filename(prefix string, n int, ext string) string {
	return fmt.Sprintf("%s-%0*d%s", prefix, Width, n, ext)
}
