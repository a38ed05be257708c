package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestMergeCreatesNewIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.toml")

	result, err := Merge(path, []string{"IMG-0001.jpeg", "IMG-0002.jpeg"})
	if err != nil {
		t.Fatal(err)
	}
	if result.LoadWarning != nil {
		t.Fatalf("unexpected load warning: %v", result.LoadWarning)
	}
	if result.PriorEntries != 0 || result.Added != 2 {
		t.Fatalf("unexpected counts: prior=%d added=%d", result.PriorEntries, result.Added)
	}

	files, err := Entries(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"IMG-0001.jpeg", "IMG-0002.jpeg"}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("entry %d: got %q, want %q", i, files[i], want[i])
		}
	}
}

func TestMergePreservesUnrelatedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.toml")
	existing := `
title = "Summer gallery"

[site]
theme = "dark"

[[entries]]
file = "IMG-0001.jpeg"
`
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := Merge(path, []string{"IMG-0002.jpeg", "IMG-0003.jpeg"})
	if err != nil {
		t.Fatal(err)
	}
	if result.LoadWarning != nil {
		t.Fatalf("unexpected load warning: %v", result.LoadWarning)
	}
	if result.PriorEntries != 1 {
		t.Fatalf("prior entries: got %d, want 1", result.PriorEntries)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var document map[string]any
	if err := toml.Unmarshal(data, &document); err != nil {
		t.Fatal(err)
	}
	if document["title"] != "Summer gallery" {
		t.Fatalf("unrelated top-level key lost: %v", document["title"])
	}
	site, ok := document["site"].(map[string]any)
	if !ok || site["theme"] != "dark" {
		t.Fatalf("unrelated table lost: %v", document["site"])
	}

	files, err := Entries(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"IMG-0001.jpeg", "IMG-0002.jpeg", "IMG-0003.jpeg"}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("entry %d: got %q, want %q", i, files[i], want[i])
		}
	}
}

func TestMergeRepeatedRunsAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.toml")

	if _, err := Merge(path, []string{"IMG-0001.jpeg", "IMG-0002.jpeg"}); err != nil {
		t.Fatal(err)
	}
	if _, err := Merge(path, []string{"IMG-0003.jpeg"}); err != nil {
		t.Fatal(err)
	}

	files, err := Entries(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 || files[2] != "IMG-0003.jpeg" {
		t.Fatalf("unexpected entries after second merge: %v", files)
	}
}

func TestMergeCorruptIndexWarnsAndStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.toml")
	if err := os.WriteFile(path, []byte("this is [not valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := Merge(path, []string{"IMG-0001.jpeg"})
	if err != nil {
		t.Fatal(err)
	}
	if result.LoadWarning == nil {
		t.Fatal("expected load warning for corrupt index")
	}
	if !strings.Contains(result.LoadWarning.Error(), "parse existing index") {
		t.Fatalf("unexpected warning: %v", result.LoadWarning)
	}

	files, err := Entries(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "IMG-0001.jpeg" {
		t.Fatalf("unexpected entries: %v", files)
	}
}

func TestMergeNoNewFilesStillWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.toml")
	result, err := Merge(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Added != 0 {
		t.Fatalf("unexpected added count: %d", result.Added)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("index not written: %v", err)
	}
}

func TestEntriesMissingFile(t *testing.T) {
	files, err := Entries(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no entries, got %v", files)
	}
}
