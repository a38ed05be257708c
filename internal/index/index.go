// Package index maintains the persistent TOML record of admitted files.
//
// The index document has a top-level entries array of tables, each holding a
// file key with one admitted filename. Unrelated top-level keys pass through
// a merge untouched, so the index can double as a site data file.
package index

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"photoimport/internal/fileutil"
)

// Result summarizes one merge.
type Result struct {
	// PriorEntries counts entries already present before the merge.
	PriorEntries int
	// Added counts entries appended by this merge.
	Added int
	// LoadWarning is set when an existing index file could not be parsed.
	// The merge proceeded from an empty document and the unreadable content
	// was overwritten; callers must surface this to the operator.
	LoadWarning error
}

// Merge loads the index at path (or starts empty when it does not exist or
// cannot be parsed), appends one entry per filename preserving order, and
// writes the document back atomically. A non-nil error means the write
// failed; the admitted files on disk are unaffected either way.
func Merge(path string, files []string) (Result, error) {
	var result Result

	document := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := toml.Unmarshal(data, &document); unmarshalErr != nil {
			result.LoadWarning = fmt.Errorf("parse existing index: %w", unmarshalErr)
			document = map[string]any{}
		}
	case errors.Is(err, fs.ErrNotExist):
		// First run against this index.
	default:
		result.LoadWarning = fmt.Errorf("read existing index: %w", err)
	}

	var entries []any
	switch existing := document["entries"].(type) {
	case []any:
		entries = existing
	case []map[string]any:
		entries = make([]any, len(existing))
		for i, entry := range existing {
			entries[i] = entry
		}
	default:
		entries = []any{}
	}
	result.PriorEntries = len(entries)

	for _, file := range files {
		entries = append(entries, map[string]any{"file": file})
	}
	result.Added = len(files)
	document["entries"] = entries

	encoded, err := toml.Marshal(document)
	if err != nil {
		return result, fmt.Errorf("encode index: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, encoded, 0o644); err != nil {
		return result, fmt.Errorf("write index: %w", err)
	}
	return result, nil
}

// Entries returns the admitted filenames currently recorded at path, in
// document order. A missing file yields an empty slice.
func Entries(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	var document struct {
		Entries []struct {
			File string `toml:"file"`
		} `toml:"entries"`
	}
	if err := toml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}

	files := make([]string, 0, len(document.Entries))
	for _, entry := range document.Entries {
		files = append(files, entry.File)
	}
	return files, nil
}
