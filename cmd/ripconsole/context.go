package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"ripconsole/internal/api"
	"ripconsole/internal/batchrename"
	"ripconsole/internal/config"
	"ripconsole/internal/jobs"
	"ripconsole/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	store *jobs.Store
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(c.requestedConfigPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config, c.configPath, c.configExists = cfg, path, exists
	})
	return c.config, c.configErr
}

// requestedConfigPath is the --config value, or "" to use the default search.
func (c *commandContext) requestedConfigPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// openStore returns the job store, opening it on first use.
func (c *commandContext) openStore() (*jobs.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := jobs.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open job store: %w", err)
	}
	c.store = store
	return store, nil
}

func (c *commandContext) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

// fileLogger logs to the configured log file only so command output stays clean.
func (c *commandContext) fileLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{cfg.LogPath()},
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func (c *commandContext) jobService() (*api.JobService, error) {
	store, err := c.openStore()
	if err != nil {
		return nil, err
	}
	return api.NewJobService(store, c.config.Rename.UseDiscLabelForTVSeries), nil
}

func (c *commandContext) renameService() (*api.RenameService, error) {
	store, err := c.openStore()
	if err != nil {
		return nil, err
	}
	logger, err := c.fileLogger()
	if err != nil {
		return nil, err
	}
	engine := batchrename.New(store,
		batchrename.WithLogger(logger),
		batchrename.WithAllowedRoots(c.config.Rename.AllowedRoots),
	)
	return api.NewRenameService(engine), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
