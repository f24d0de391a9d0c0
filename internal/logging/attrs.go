package logging

import (
	"log/slog"
	"time"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Float64(key string, value float64) Attr { return slog.Float64(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldBookPath is the standardized structured logging key for the book file being matched.
	FieldBookPath = "book_path"
	// FieldSeriesKey is the standardized structured logging key for remote series identifiers.
	FieldSeriesKey = "series_key"
	// FieldIssueKey is the standardized structured logging key for remote issue identifiers.
	FieldIssueKey = "issue_key"
	// FieldSessionID is the standardized structured logging key for scraping session identifiers.
	FieldSessionID = "session_id"
	// FieldEventType tags log records with a stable machine-readable event name.
	FieldEventType = "event_type"
)

// NewNop returns a logger that discards every record.
func NewNop() *slog.Logger {
	return slog.New(noopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}
