package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateThumbnails(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateNaming() error {
	if c.Naming.Prefix == "" {
		return errors.New("naming.prefix must be set")
	}
	if strings.ContainsAny(c.Naming.Prefix, "/\\ \t") {
		return fmt.Errorf("naming.prefix %q must not contain path separators or whitespace", c.Naming.Prefix)
	}
	switch strings.ToLower(c.Naming.Extension) {
	case ".jpeg", ".jpg":
	default:
		return fmt.Errorf("naming.extension %q is not a supported JPEG extension (.jpeg or .jpg)", c.Naming.Extension)
	}
	return nil
}

func (c *Config) validateThumbnails() error {
	if c.Thumbnails.MaxWidth < 1 {
		return errors.New("thumbnails.max_width must be at least 1")
	}
	if c.Thumbnails.MaxHeight < 1 {
		return errors.New("thumbnails.max_height must be at least 1")
	}
	if c.Thumbnails.Quality < 1 || c.Thumbnails.Quality > 100 {
		return errors.New("thumbnails.quality must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path must be set when history is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
