package config

import "strings"

// normalize expands user paths and canonicalizes string fields so downstream
// code never re-handles tildes or stray whitespace.
func (c *Config) normalize() error {
	c.Naming.Prefix = strings.TrimSpace(c.Naming.Prefix)
	c.Naming.Extension = strings.TrimSpace(c.Naming.Extension)
	c.Import.Photographer = strings.TrimSpace(c.Import.Photographer)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if strings.TrimSpace(c.Paths.LibraryDir) != "" {
		expanded, err := expandPath(c.Paths.LibraryDir)
		if err != nil {
			return err
		}
		c.Paths.LibraryDir = expanded
	} else {
		c.Paths.LibraryDir = ""
	}

	if strings.TrimSpace(c.Paths.IndexFile) != "" {
		expanded, err := expandPath(c.Paths.IndexFile)
		if err != nil {
			return err
		}
		c.Paths.IndexFile = expanded
	} else {
		c.Paths.IndexFile = ""
	}

	if strings.TrimSpace(c.History.Path) != "" {
		expanded, err := expandPath(c.History.Path)
		if err != nil {
			return err
		}
		c.History.Path = expanded
	} else {
		c.History.Path = ""
	}

	return nil
}
