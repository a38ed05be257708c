// Package importer runs the sequential admission pipeline: allocate the next
// free identifier from the destination, enumerate the source in a stable
// order, copy each image under its new name, apply best-effort metadata
// stamping and preview generation, and merge the admitted filenames into the
// persistent index.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"photoimport/internal/exifstamp"
	"photoimport/internal/fileutil"
	"photoimport/internal/index"
	"photoimport/internal/logging"
	"photoimport/internal/scan"
	"photoimport/internal/serial"
	"photoimport/internal/services"
	"photoimport/internal/thumbnail"
)

const (
	imagesSubdir = "images"
	thumbsSubdir = "thumbs"
	lockFileName = ".photoimport.lock"
)

// ImagesDir returns the full-size subdirectory of a destination collection.
func ImagesDir(destination string) string {
	return filepath.Join(destination, imagesSubdir)
}

// ThumbsDir returns the preview subdirectory of a destination collection.
func ThumbsDir(destination string) string {
	return filepath.Join(destination, thumbsSubdir)
}

// Options configures one pipeline run.
type Options struct {
	Source      string
	Destination string
	// Photographer is written into each imported file's EXIF Artist tag.
	// Stamping is skipped entirely when empty.
	Photographer string
	// IndexFile is the TOML index to merge admitted filenames into. The
	// merge stage is skipped entirely when empty.
	IndexFile  string
	Prefix     string
	Extension  string
	Thumbnails thumbnail.Options
}

// Item records one admitted image.
type Item struct {
	Serial     int
	SourcePath string
	FileName   string
	Stamped    bool
	Thumbnail  bool
	// TakenAt is the EXIF capture timestamp of the source image; zero when
	// the source carries none.
	TakenAt time.Time
}

// Result summarizes one pipeline run.
type Result struct {
	RunID       string
	StartedAt   time.Time
	FinishedAt  time.Time
	FirstSerial int
	Items       []Item
	Warnings    int
	// IndexUpdated reports whether the index merge ran and persisted.
	IndexUpdated bool
}

// Pipeline admits source images into a destination collection.
type Pipeline struct {
	opts   Options
	logger *slog.Logger
}

// New constructs a pipeline. A nil logger is replaced with a no-op logger.
func New(opts Options, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "importer"),
	}
}

// Run executes one import pass. Copy failures abort the run; stamping and
// preview failures are contained per item and counted as warnings. The run
// holds an exclusive advisory lock on the destination from allocation
// through the index merge, so two imports into the same collection cannot
// interleave on one host.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	logger := p.logger.With(logging.String(logging.FieldRunID, result.RunID))

	lock := flock.New(filepath.Join(p.opts.Destination, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "importing", "lock destination", "", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrValidation, "importing", "lock destination",
			fmt.Sprintf("another import into %s is already running", p.opts.Destination), nil)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			logger.Warn("failed to release destination lock", logging.Error(unlockErr))
		}
	}()

	imagesDir := ImagesDir(p.opts.Destination)
	thumbsDir := ThumbsDir(p.opts.Destination)

	highest, err := serial.Highest(imagesDir, p.opts.Prefix, p.opts.Extension)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "importing", "allocate identifier", "", err)
	}
	result.FirstSerial = highest + 1
	logger.Info("allocated starting identifier",
		logging.Int("highest_existing", highest),
		logging.String("first", serial.Filename(p.opts.Prefix, result.FirstSerial, p.opts.Extension)),
	)

	sources, err := scan.ListImages(p.opts.Source)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "importing", "enumerate source", "", err)
	}
	if len(sources) == 0 {
		logger.Info("no images found in source", logging.String("source", p.opts.Source))
		result.FinishedAt = time.Now()
		return result, nil
	}
	logger.Info("enumerated source images", logging.Int("count", len(sources)))

	admitted := make([]string, 0, len(sources))
	next := result.FirstSerial
	for _, source := range sources {
		item, err := p.admit(logger, source, next, imagesDir, thumbsDir, result)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, item)
		admitted = append(admitted, item.FileName)
		next++
	}

	if p.opts.IndexFile != "" {
		p.mergeIndex(logger, admitted, result)
	}

	result.FinishedAt = time.Now()
	logger.Info("import complete",
		logging.Int("imported", len(result.Items)),
		logging.Int("warnings", result.Warnings),
	)
	return result, nil
}

func (p *Pipeline) validate() error {
	info, err := os.Stat(p.opts.Source)
	if err != nil {
		return services.Wrap(services.ErrValidation, "importing", "validate inputs",
			fmt.Sprintf("source directory %s does not exist", p.opts.Source), nil)
	}
	if !info.IsDir() {
		return services.Wrap(services.ErrValidation, "importing", "validate inputs",
			fmt.Sprintf("source path %s is not a directory", p.opts.Source), nil)
	}
	if p.opts.Destination == "" {
		return services.Wrap(services.ErrConfiguration, "importing", "validate inputs",
			"destination directory is required", nil)
	}
	if p.opts.Prefix == "" || p.opts.Extension == "" {
		return services.Wrap(services.ErrConfiguration, "importing", "validate inputs",
			"identifier prefix and extension are required", nil)
	}
	return nil
}

// admit copies one source image under its allocated identifier and applies
// the per-item side effects. Only the copy itself is fatal.
func (p *Pipeline) admit(logger *slog.Logger, source string, serialNo int, imagesDir, thumbsDir string, result *Result) (Item, error) {
	name := serial.Filename(p.opts.Prefix, serialNo, p.opts.Extension)
	destPath := filepath.Join(imagesDir, name)

	if err := fileutil.CopyFilePreserve(source, destPath); err != nil {
		return Item{}, services.Wrap(services.ErrTransient, "importing", "copy image",
			fmt.Sprintf("copy %s to %s", filepath.Base(source), name), err)
	}

	item := Item{
		Serial:     serialNo,
		SourcePath: source,
		FileName:   name,
	}

	if takenAt, err := exifstamp.CaptureTime(source); err == nil {
		item.TakenAt = takenAt
	}

	if p.opts.Photographer != "" {
		if err := exifstamp.SetArtist(destPath, p.opts.Photographer); err != nil {
			result.Warnings++
			logger.Warn("could not update exif artist",
				logging.String("file", name),
				logging.Error(err),
			)
		} else {
			item.Stamped = true
		}
	}

	if err := thumbnail.Create(source, thumbsDir, name, p.opts.Thumbnails); err != nil {
		result.Warnings++
		logger.Warn("could not create thumbnail",
			logging.String("file", name),
			logging.Error(err),
		)
	} else {
		item.Thumbnail = true
	}

	attrs := []logging.Attr{
		logging.String("source", filepath.Base(source)),
		logging.String("file", name),
	}
	if !item.TakenAt.IsZero() {
		attrs = append(attrs, logging.Time("taken_at", item.TakenAt))
	}
	logger.Info("imported image", logging.Args(attrs...)...)

	return item, nil
}

// mergeIndex appends the admitted filenames to the persistent index. Index
// failures never roll back admitted files; they are reported and the run
// continues as successful.
func (p *Pipeline) mergeIndex(logger *slog.Logger, admitted []string, result *Result) {
	mergeResult, err := index.Merge(p.opts.IndexFile, admitted)
	if mergeResult.LoadWarning != nil {
		result.Warnings++
		logger.Error("existing index was unreadable; its prior entries are not carried over",
			logging.String("index", p.opts.IndexFile),
			logging.Error(mergeResult.LoadWarning),
		)
	}
	if err != nil {
		result.Warnings++
		logger.Error("index update failed; imported files are unaffected",
			logging.String("index", p.opts.IndexFile),
			logging.Error(err),
		)
		return
	}
	result.IndexUpdated = true
	logger.Info("updated index",
		logging.String("index", p.opts.IndexFile),
		logging.Int("prior_entries", mergeResult.PriorEntries),
		logging.Int("added", mergeResult.Added),
	)
}
