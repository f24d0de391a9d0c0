// Package main hosts the longbox CLI entrypoint and command graph.
//
// The Cobra-based command tree covers single-file matching, concurrent batch
// sessions over a library directory, journal history, and configuration
// scaffolding. It centralizes configuration resolution, logger construction,
// and matcher wiring so subcommands can focus on user experience.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
