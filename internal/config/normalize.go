package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeComicDB()
	c.normalizeMatching()
	c.normalizeCache()
	c.normalizeSession()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeComicDB() {
	c.ComicDB.APIKey = strings.TrimSpace(c.ComicDB.APIKey)
	c.ComicDB.BaseURL = strings.TrimSpace(c.ComicDB.BaseURL)
	if c.ComicDB.BaseURL == "" {
		c.ComicDB.BaseURL = defaultComicDBBaseURL
	}
	if c.ComicDB.RequestsPerSecond <= 0 {
		c.ComicDB.RequestsPerSecond = defaultRequestsPerSecond
	}
	if c.ComicDB.TimeoutSeconds <= 0 {
		c.ComicDB.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeMatching() {
	if c.Matching.SeriesAutoThreshold <= 0 {
		c.Matching.SeriesAutoThreshold = defaultSeriesAutoThreshold
	}
	if c.Matching.SeriesAutoMargin <= 0 {
		c.Matching.SeriesAutoMargin = defaultSeriesAutoMargin
	}
	if c.Matching.IssueAutoThreshold <= 0 {
		c.Matching.IssueAutoThreshold = defaultIssueAutoThreshold
	}
	if c.Matching.IssueAutoMargin <= 0 {
		c.Matching.IssueAutoMargin = defaultIssueAutoMargin
	}
}

func (c *Config) normalizeCache() {
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = defaultCacheMaxEntries
	}
}

func (c *Config) normalizeSession() {
	if c.Session.Workers <= 0 {
		c.Session.Workers = defaultSessionWorkers
	}
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
