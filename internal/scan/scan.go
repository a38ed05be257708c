// Package scan enumerates candidate images in a source directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var acceptedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
}

// ListImages returns the paths of all regular JPEG files directly inside dir,
// sorted lexicographically by filename so repeated runs over an unchanged
// source enumerate in the same order. Extension matching is case-insensitive
// (.jpg, .JPG, .jpeg, .JPEG all qualify). An empty result is not an error.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := acceptedExtensions[ext]; !ok {
			continue
		}
		images = append(images, filepath.Join(dir, entry.Name()))
	}

	sort.Slice(images, func(i, j int) bool {
		return filepath.Base(images[i]) < filepath.Base(images[j])
	})
	return images, nil
}
