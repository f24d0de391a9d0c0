package textutil

import (
	"strings"
	"unicode"
)

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// NormalizeForComparison reduces text to its lowercase alphanumeric characters
// with common symbol substitutions applied, so punctuation and spacing
// differences do not defeat equality checks.
func NormalizeForComparison(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	normalized := strings.ToLower(input)
	normalized = strings.ReplaceAll(normalized, "&", "and")
	normalized = strings.ReplaceAll(normalized, "+", "and")

	var builder strings.Builder
	for _, r := range normalized {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// CollapseWhitespace trims the string and collapses interior whitespace runs
// to single spaces.
func CollapseWhitespace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
