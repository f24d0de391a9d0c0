// Package storyarc detects recurring story arc names across the issue titles
// of one series.
//
// Arc detection needs corpus-wide context: a single title cannot reveal that
// "Part 3" is an arc marker. An Extractor is therefore primed once with every
// issue title in a series, building an index of phrases that recur ahead of a
// part marker, and only then asked to extract the arc name from individual
// titles. Extracting before priming yields the empty string, never an error.
package storyarc
