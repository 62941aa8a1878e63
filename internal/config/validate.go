package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateConsolidation(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.DatabasePath == c.Paths.CheckpointPath {
		return errors.New("paths.database_path and paths.checkpoint_path must differ")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	parsed, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("catalog.base_url must be an absolute http(s) URL, got %q", c.Catalog.BaseURL)
	}
	if c.Catalog.RequestDelayMS < minRequestDelayMS {
		return errors.New("catalog.request_delay_ms must be >= 0")
	}
	if c.Catalog.TimeoutSeconds <= 0 || c.Catalog.TimeoutSeconds > maxCatalogTimeoutSeconds {
		return fmt.Errorf("catalog.timeout_seconds must be between 1 and %d", maxCatalogTimeoutSeconds)
	}
	if c.Catalog.MaxRetries < 0 || c.Catalog.MaxRetries > maxCatalogRetries {
		return fmt.Errorf("catalog.max_retries must be between 0 and %d", maxCatalogRetries)
	}
	switch c.Catalog.PageSource {
	case PageSourceTop, PageSourceAll:
	default:
		return fmt.Errorf("catalog.page_source: unsupported value %q (want %q or %q)", c.Catalog.PageSource, PageSourceTop, PageSourceAll)
	}
	return nil
}

func (c *Config) validateConsolidation() error {
	if c.Consolidation.TargetCount < defaultTargetCountMinimum || c.Consolidation.TargetCount > maxConsolidationTarget {
		return fmt.Errorf("consolidation.target_count must be between %d and %d", defaultTargetCountMinimum, maxConsolidationTarget)
	}
	switch c.Consolidation.Decider {
	case DeciderConsole, DeciderCreateNew:
	case DeciderScripted:
		if strings.TrimSpace(c.Consolidation.ScriptPath) == "" {
			return errors.New("consolidation.script_path must be set when consolidation.decider is scripted")
		}
	default:
		return fmt.Errorf("consolidation.decider: unsupported value %q", c.Consolidation.Decider)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 || c.Logging.RetentionDays > maxLogRetentionDays {
		return fmt.Errorf("logging.retention_days must be between 0 and %d", maxLogRetentionDays)
	}
	return nil
}
