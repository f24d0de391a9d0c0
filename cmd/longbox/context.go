package main

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"longbox/internal/comicdb"
	"longbox/internal/config"
	"longbox/internal/journal"
	"longbox/internal/logging"
	"longbox/internal/match"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the shared file-backed logger. All commands log to the
// configured log directory so terminal output stays reserved for results.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, "longbox.log")},
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// newMatcher wires the comic database client, caches, and tunables from the
// loaded configuration.
func (c *commandContext) newMatcher() (*match.Matcher, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	client, err := comicdb.NewClient(cfg.ComicDB.APIKey, cfg.ComicDB.BaseURL,
		comicdb.WithRateLimit(cfg.ComicDB.RequestsPerSecond),
		comicdb.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.ComicDB.TimeoutSeconds) * time.Second,
		}),
	)
	if err != nil {
		return nil, err
	}

	caches := match.NewCaches(cfg.Cache.MaxEntries)
	return match.NewMatcher(client, caches, match.Options{
		Tunables: match.Tunables{
			SeriesAutoThreshold: cfg.Matching.SeriesAutoThreshold,
			SeriesAutoMargin:    cfg.Matching.SeriesAutoMargin,
			IssueAutoThreshold:  cfg.Matching.IssueAutoThreshold,
			IssueAutoMargin:     cfg.Matching.IssueAutoMargin,
		},
		Logger: logger,
	}), nil
}

func (c *commandContext) openJournal() (*journal.Journal, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return journal.Open(cfg.JournalPath())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
