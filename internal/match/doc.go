// Package match scores remote candidates against a book's known metadata and
// drives the two-stage automatic matching state machine.
//
// The scorer is a pure function producing bounded 0-100 confidence scores
// from independently normalized signals (name similarity, year proximity,
// publisher agreement, issue-count plausibility). The Matcher orchestrates
// filename parsing, cached gateway lookups, scoring, and the auto-accept
// decision policy, escalating ranked candidate lists through the Chooser
// boundary when confidence is insufficient. Cancellation is a first-class
// outcome threaded through every stage, never an error.
package match
