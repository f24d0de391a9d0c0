// Package journal persists match sessions and per-book decisions in SQLite.
//
// The Journal records what was resolved, how (automatic or user-driven), and
// with what confidence, so past sessions can be reviewed from the CLI. The
// database is an append-mostly audit log, not operational state: matching
// never reads it back to influence a decision.
//
// Schema changes bump the version in schema.go; users delete the database to
// adopt the new schema.
package journal
