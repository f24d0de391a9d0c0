// Package textutil provides text processing utilities for tokenization,
// fingerprinting, and similarity scoring.
//
// The primary use cases are:
//   - Normalizing noisy series and issue titles for comparison
//   - Creating token-based fingerprints, optionally with per-token weights
//   - Computing cosine similarity between fingerprints
//
// Fingerprints use term frequency vectors with precomputed norms so repeated
// similarity comparisons against the same text are cheap. Tokenization
// lowercases text and splits on non-alphanumeric characters; single-letter
// tokens are kept because comic series names lean on them ("X-Men").
package textutil
