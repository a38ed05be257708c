package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func TestListImagesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.jpeg", "a.jpg", "c.JPG", "d.JPEG", "skip.png", "notes.txt", "noext")
	if err := os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ListImages(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a.jpg", "b.jpeg", "c.JPG", "d.JPEG"}
	names := baseNames(got)
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestListImagesDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "z.jpg", "m.jpeg", "a.jpg")

	first, err := ListImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ListImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order differs at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestListImagesEmpty(t *testing.T) {
	got, err := ListImages(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no images, got %v", got)
	}
}

func TestListImagesMissingDirectory(t *testing.T) {
	if _, err := ListImages(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
