// Package filename extracts series, issue number, and year guesses from raw
// comic book filenames. Parsing is pure and deterministic: arbitrary junk
// (release-group tags, bracketed annotations, extensions) degrades to empty
// guesses, never to an error.
package filename
