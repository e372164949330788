package main

import (
	"fmt"
	"log/slog"

	"torquelab/internal/config"
	"torquelab/internal/logging"
)

// commandContext carries lazily loaded configuration and the logger built
// from it, shared across subcommands.
type commandContext struct {
	configFlag *string

	cfg    *config.Config
	result config.LoadResult
	logger *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads configuration once. A config file that exists but does
// not parse degrades to defaults with a warning; only invalid merged values
// are fatal.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, result, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	if result.LoadErr != nil {
		logger.Warn("config file unusable, continuing with defaults",
			logging.Args(logging.String("path", result.Path), logging.Error(result.LoadErr))...)
	}

	c.cfg = cfg
	c.result = result
	c.logger = logger
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if _, err := c.ensureConfig(); err != nil {
		return nil, err
	}
	return c.logger, nil
}
