package config

const (
	defaultLibraryDir         = "~/photos/library"
	defaultPrefix             = "IMG"
	defaultExtension          = ".jpeg"
	defaultThumbnailMaxWidth  = 400
	defaultThumbnailMaxHeight = 300
	defaultThumbnailQuality   = 85
	defaultHistoryPath        = "~/.local/share/photoimport/history.db"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
		},
		Naming: Naming{
			Prefix:    defaultPrefix,
			Extension: defaultExtension,
		},
		Thumbnails: Thumbnails{
			MaxWidth:  defaultThumbnailMaxWidth,
			MaxHeight: defaultThumbnailMaxHeight,
			Quality:   defaultThumbnailQuality,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
