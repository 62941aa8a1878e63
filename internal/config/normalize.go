package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	if err := c.normalizeConsolidation(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(envDataDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}

	var err error
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	derived := []struct {
		key      string
		value    *string
		fallback string
	}{
		{key: "paths.log_dir", value: &c.Paths.LogDir, fallback: defaultLogSubdir},
		{key: "paths.database_path", value: &c.Paths.DatabasePath, fallback: defaultDatabaseName},
		{key: "paths.checkpoint_path", value: &c.Paths.CheckpointPath, fallback: defaultCheckpointName},
	}
	for _, entry := range derived {
		trimmed := strings.TrimSpace(*entry.value)
		if trimmed == "" {
			trimmed = filepath.Join(c.Paths.DataDir, entry.fallback)
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("%s: %w", entry.key, err)
		}
		*entry.value = expanded
	}
	return nil
}

func (c *Config) normalizeCatalog() error {
	if value, ok := os.LookupEnv(envCatalogURL); ok && strings.TrimSpace(value) != "" {
		c.Catalog.BaseURL = value
	}
	c.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.BaseURL), "/")
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = defaultCatalogBaseURL
	}
	c.Catalog.UserAgent = strings.TrimSpace(c.Catalog.UserAgent)
	if c.Catalog.UserAgent == "" {
		c.Catalog.UserAgent = defaultCatalogUserAgent
	}
	c.Catalog.PageSource = strings.ToLower(strings.TrimSpace(c.Catalog.PageSource))
	if c.Catalog.PageSource == "" {
		c.Catalog.PageSource = defaultPageSource
	}
	if c.Catalog.TimeoutSeconds == 0 {
		c.Catalog.TimeoutSeconds = defaultCatalogTimeout
	}
	return nil
}

func (c *Config) normalizeConsolidation() error {
	c.Consolidation.Decider = strings.ToLower(strings.TrimSpace(c.Consolidation.Decider))
	c.Consolidation.Decider = strings.ReplaceAll(c.Consolidation.Decider, "-", "_")
	if c.Consolidation.Decider == "" {
		c.Consolidation.Decider = defaultDecider
	}
	if c.Consolidation.TargetCount == 0 {
		c.Consolidation.TargetCount = defaultTargetCount
	}
	if script := strings.TrimSpace(c.Consolidation.ScriptPath); script != "" {
		expanded, err := expandPath(script)
		if err != nil {
			return fmt.Errorf("consolidation.script_path: %w", err)
		}
		c.Consolidation.ScriptPath = expanded
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// Normalize applies path expansion, environment overrides, and defaults. Load
// calls it automatically; tests and callers building a Config by hand use it
// directly.
func (c *Config) Normalize() error {
	return c.normalize()
}
