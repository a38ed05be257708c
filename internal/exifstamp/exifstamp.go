// Package exifstamp reads and writes embedded image metadata.
//
// The write side rewrites a JPEG in place to set the IFD0 Artist tag,
// constructing a fresh EXIF block when the file has none. The read side
// extracts capture metadata for logging.
package exifstamp

import (
	"bytes"
	"fmt"
	"os"
	"time"

	exifv3 "github.com/dsoprea/go-exif/v3"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
	"github.com/rwcarlsen/goexif/exif"

	"photoimport/internal/fileutil"
)

// SetArtist rewrites the JPEG at path with its EXIF Artist tag set to artist
// (UTF-8). All pixel data and unrelated metadata fields are preserved. A
// file whose EXIF container is absent gets a fresh one. On any error the
// file on disk is left exactly as it was.
func SetArtist(path, artist string) (err error) {
	// The exif libraries panic on some malformed inputs; contain that here
	// so callers only ever see an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rewrite exif: %v", r)
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat image: %w", err)
	}

	parser := jpegstructure.NewJpegMediaParser()
	media, err := parser.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse jpeg: %w", err)
	}
	segments := media.(*jpegstructure.SegmentList)

	rootIb, err := segments.ConstructExifBuilder()
	if err != nil {
		return fmt.Errorf("read exif: %w", err)
	}

	ifd0Ib, err := exifv3.GetOrCreateIbFromRootIb(rootIb, "IFD0")
	if err != nil {
		return fmt.Errorf("open IFD0: %w", err)
	}
	if err := ifd0Ib.SetStandardWithName("Artist", artist); err != nil {
		return fmt.Errorf("set artist tag: %w", err)
	}
	if err := segments.SetExif(rootIb); err != nil {
		return fmt.Errorf("update exif segment: %w", err)
	}

	var buf bytes.Buffer
	if err := segments.Write(&buf); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), info.Mode().Perm())
}

// Artist returns the EXIF Artist tag of the JPEG at path, or an error when
// the file carries no readable tag.
func Artist(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode exif: %w", err)
	}
	tag, err := meta.Get(exif.Artist)
	if err != nil {
		return "", fmt.Errorf("artist tag: %w", err)
	}
	return tag.StringVal()
}

// CaptureTime returns the capture timestamp recorded in the image's EXIF
// data (DateTimeOriginal, falling back to DateTime). Images without usable
// EXIF yield an error; callers treat that as "unknown", not a failure.
func CaptureTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode exif: %w", err)
	}
	return meta.DateTime()
}
