package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"photoimport/internal/config"
	"photoimport/internal/history"
	"photoimport/internal/importer"
	"photoimport/internal/logging"
	"photoimport/internal/thumbnail"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var photographerFlag string
	var indexFlag string
	var noIndex bool

	cmd := &cobra.Command{
		Use:   "import <source> [destination]",
		Short: "Import images from a source directory into the collection",
		Long: `Import copies every JPEG in the source directory into the destination
collection under the next free sequential identifiers, generates bounded
previews in the thumbs/ subdirectory, optionally stamps the EXIF Artist
tag, and appends the new filenames to the configured TOML index.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			source, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve source path: %w", err)
			}

			destination := cfg.Paths.LibraryDir
			if len(args) == 2 {
				destination, err = config.ExpandPath(args[1])
				if err != nil {
					return fmt.Errorf("resolve destination path: %w", err)
				}
			}
			if strings.TrimSpace(destination) == "" {
				return fmt.Errorf("no destination given and paths.library_dir is not configured")
			}

			photographer := cfg.Import.Photographer
			if cmd.Flags().Changed("photographer") {
				photographer = strings.TrimSpace(photographerFlag)
			}

			indexFile := cfg.Paths.IndexFile
			if cmd.Flags().Changed("index") {
				indexFile, err = config.ExpandPath(indexFlag)
				if err != nil {
					return fmt.Errorf("resolve index path: %w", err)
				}
			}
			if noIndex {
				indexFile = ""
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return err
			}

			for _, dir := range []string{destination, importer.ImagesDir(destination), importer.ThumbsDir(destination)} {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create destination directory %q: %w", dir, err)
				}
			}

			pipeline := importer.New(importer.Options{
				Source:       source,
				Destination:  destination,
				Photographer: photographer,
				IndexFile:    indexFile,
				Prefix:       cfg.Naming.Prefix,
				Extension:    cfg.Naming.Extension,
				Thumbnails: thumbnail.Options{
					MaxWidth:  cfg.Thumbnails.MaxWidth,
					MaxHeight: cfg.Thumbnails.MaxHeight,
					Quality:   cfg.Thumbnails.Quality,
				},
			}, logger)

			result, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}

			recordHistory(cmd, cfg, source, destination, photographer, result)

			out := cmd.OutOrStdout()
			if len(result.Items) == 0 {
				fmt.Fprintf(out, "No JPEG files found in %s\n", source)
				return nil
			}

			fmt.Fprintln(out, renderImportSummary(result))
			fmt.Fprintf(out, "Imported %d images", len(result.Items))
			if result.Warnings > 0 {
				fmt.Fprintf(out, " (%d warnings)", result.Warnings)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&photographerFlag, "photographer", "p", "", "Photographer name to stamp into the EXIF Artist tag")
	cmd.Flags().StringVar(&indexFlag, "index", "", "TOML index file to update with the imported filenames")
	cmd.Flags().BoolVar(&noIndex, "no-index", false, "Skip updating any index file")
	return cmd
}

func renderImportSummary(result *importer.Result) string {
	rows := make([][]string, 0, len(result.Items))
	for _, item := range result.Items {
		taken := ""
		if !item.TakenAt.IsZero() {
			taken = item.TakenAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.Serial),
			filepath.Base(item.SourcePath),
			item.FileName,
			taken,
			yesNo(item.Thumbnail),
			yesNo(item.Stamped),
		})
	}
	return renderTable(
		[]string{"#", "Source", "Imported As", "Taken", "Thumb", "Stamped"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// recordHistory stores the completed run in the history database when
// enabled. Failures are reported on stderr but never affect the import.
func recordHistory(cmd *cobra.Command, cfg *config.Config, source, destination, photographer string, result *importer.Result) {
	if !cfg.History.Enabled || cfg.History.Path == "" {
		return
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not open history database: %v\n", err)
		return
	}
	defer store.Close()

	run := history.Run{
		RunID:        result.RunID,
		StartedAt:    result.StartedAt,
		FinishedAt:   result.FinishedAt,
		SourceDir:    source,
		Destination:  destination,
		Photographer: photographer,
		FirstSerial:  result.FirstSerial,
		Imported:     len(result.Items),
		Warnings:     result.Warnings,
		IndexUpdated: result.IndexUpdated,
	}
	if err := store.Record(cmd.Context(), run); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not record run history: %v\n", err)
	}
}
