// Package logging constructs slog loggers and provides the typed attribute
// helpers and standardized field keys used across longbox.
package logging
