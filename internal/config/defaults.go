package config

const (
	defaultDataDir             = "~/.local/share/longbox"
	defaultLogDir              = "~/.local/share/longbox/logs"
	defaultComicDBBaseURL      = "https://comicvine.gamespot.com/api"
	defaultRequestsPerSecond   = 1.0
	defaultTimeoutSeconds      = 10
	defaultSeriesAutoThreshold = 80.0
	defaultSeriesAutoMargin    = 10.0
	defaultIssueAutoThreshold  = 75.0
	defaultIssueAutoMargin     = 8.0
	defaultCacheMaxEntries     = 512
	defaultSessionWorkers      = 4
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		ComicDB: ComicDB{
			BaseURL:           defaultComicDBBaseURL,
			RequestsPerSecond: defaultRequestsPerSecond,
			TimeoutSeconds:    defaultTimeoutSeconds,
		},
		Matching: Matching{
			SeriesAutoThreshold: defaultSeriesAutoThreshold,
			SeriesAutoMargin:    defaultSeriesAutoMargin,
			IssueAutoThreshold:  defaultIssueAutoThreshold,
			IssueAutoMargin:     defaultIssueAutoMargin,
		},
		Cache: Cache{
			MaxEntries: defaultCacheMaxEntries,
		},
		Session: Session{
			Workers: defaultSessionWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
