package fileutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	content := []byte("hello world")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFilePreserve(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpeg")
	dst := filepath.Join(dir, "dst.jpeg")

	if err := os.WriteFile(src, []byte("jpeg bytes"), 0o640); err != nil {
		t.Fatal(err)
	}
	stamp := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	if err := CopyFilePreserve(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "jpeg bytes" {
		t.Fatalf("content mismatch: got %q", got)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("mode not preserved: got %o", info.Mode().Perm())
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("mtime not preserved: got %v, want %v", info.ModTime(), stamp)
	}
}

func TestCopyFilePreserveMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFilePreserve(filepath.Join(dir, "nope.jpeg"), filepath.Join(dir, "dst.jpeg"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.toml")

	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("content mismatch: got %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}
