package config

import (
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateComicDB(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateComicDB() error {
	if c.ComicDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/longbox/config.toml"
		}
		return fmt.Errorf("comicdb.api_key is required. Edit %s (create with 'longbox config init')", defaultPath)
	}
	if c.ComicDB.BaseURL == "" {
		return fmt.Errorf("comicdb.base_url must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	for name, value := range map[string]float64{
		"matching.series_auto_threshold": c.Matching.SeriesAutoThreshold,
		"matching.issue_auto_threshold":  c.Matching.IssueAutoThreshold,
	} {
		if value > 100 {
			return fmt.Errorf("%s must be at most 100", name)
		}
	}
	if c.Matching.SeriesAutoMargin > 100 || c.Matching.IssueAutoMargin > 100 {
		return fmt.Errorf("matching margins must be at most 100")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
