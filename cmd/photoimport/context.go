package main

import (
	"photoimport/internal/config"
)

// commandContext lazily loads configuration once per invocation and shares
// it across subcommands.
type commandContext struct {
	configFlag *string

	cfg     *config.Config
	cfgPath string
	loaded  bool
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.loaded {
		return c.cfg, nil
	}

	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolvedPath, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	c.cfg = cfg
	c.cfgPath = resolvedPath
	c.loaded = true
	return cfg, nil
}
