package filename

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Guess holds the fields extracted from a filename. Any field may be empty
// when no confident token was found.
type Guess struct {
	Series      string
	IssueNumber string
	Year        string
}

var (
	extensionPattern  = regexp.MustCompile(`(?i)\.(cb[zrt7]|pdf|zip|rar|7z|epub)$`)
	bracketPattern    = regexp.MustCompile(`\[[^\]]*\]|\{[^}]*\}`)
	parenPattern      = regexp.MustCompile(`\([^)]*\)`)
	parenYearPattern  = regexp.MustCompile(`\((?:19|20)(\d{2})[^)]*\)`)
	yearTokenPattern  = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	issueTokenPattern = regexp.MustCompile(`^#?\d+(?:\.\d+)?[a-zA-Z]?$`)
	volumeTokenPat    = regexp.MustCompile(`(?i)^v(?:ol)?\.?\d+$`)
)

var titleCaser = cases.Title(language.Und)

// IsBookFile reports whether the filename carries a known comic archive
// extension.
func IsBookFile(name string) bool {
	return extensionPattern.MatchString(name)
}

// Parse extracts the most plausible series name, issue number, and year from
// a raw filename. Same input always yields the same output.
func Parse(name string) Guess {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." {
		return Guess{}
	}
	base = extensionPattern.ReplaceAllString(base, "")
	base = bracketPattern.ReplaceAllString(base, " ")

	var year string
	if m := parenYearPattern.FindStringSubmatch(base); m != nil {
		year = m[0][1:5]
	}
	base = parenPattern.ReplaceAllString(base, " ")

	tokens := strings.Fields(normalizeSeparators(base))
	tokens = dropVolumeTokens(tokens)
	if len(tokens) == 0 {
		return Guess{Year: year}
	}

	issueIdx := -1
	for idx := len(tokens) - 1; idx > 0; idx-- {
		token := tokens[idx]
		if yearTokenPattern.MatchString(token) {
			// A trailing bare year doubles as the year guess when the
			// parenthesized form was absent.
			if year == "" && idx == len(tokens)-1 && hasIssueCandidate(tokens[:idx]) {
				year = token
				tokens = tokens[:idx]
			}
			continue
		}
		if issueTokenPattern.MatchString(token) {
			issueIdx = idx
			break
		}
	}

	guess := Guess{Year: year}
	if issueIdx > 0 {
		guess.IssueNumber = normalizeIssueNumber(tokens[issueIdx])
		seriesTokens := tokens[:issueIdx]
		if guess.Year == "" && len(seriesTokens) > 1 && yearTokenPattern.MatchString(seriesTokens[len(seriesTokens)-1]) {
			guess.Year = seriesTokens[len(seriesTokens)-1]
			seriesTokens = seriesTokens[:len(seriesTokens)-1]
		}
		guess.Series = finishSeries(seriesTokens)
	} else {
		guess.Series = finishSeries(tokens)
	}
	return guess
}

// normalizeSeparators converts underscore, hyphen, and dot separators to
// spaces while preserving dots inside decimal issue numbers.
func normalizeSeparators(input string) string {
	runes := []rune(input)
	var b strings.Builder
	b.Grow(len(runes))
	for i, r := range runes {
		switch r {
		case '_', '-':
			b.WriteRune(' ')
		case '.':
			if i > 0 && i < len(runes)-1 && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
				b.WriteRune(r)
			} else {
				b.WriteRune(' ')
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func dropVolumeTokens(tokens []string) []string {
	kept := tokens[:0]
	for _, token := range tokens {
		if volumeTokenPat.MatchString(token) {
			continue
		}
		kept = append(kept, token)
	}
	return kept
}

func hasIssueCandidate(tokens []string) bool {
	for idx := len(tokens) - 1; idx > 0; idx-- {
		if issueTokenPattern.MatchString(tokens[idx]) && !yearTokenPattern.MatchString(tokens[idx]) {
			return true
		}
	}
	return false
}

func normalizeIssueNumber(token string) string {
	token = strings.TrimPrefix(token, "#")
	token = strings.ToLower(token)
	trimmed := strings.TrimLeft(token, "0")
	if trimmed == "" || !unicode.IsDigit(rune(trimmed[0])) {
		trimmed = "0" + trimmed
	}
	return trimmed
}

func finishSeries(tokens []string) string {
	series := strings.TrimSpace(strings.Join(tokens, " "))
	if series == "" {
		return ""
	}
	// Repair all-lowercase names; deliberate casing (including all-caps
	// titles like "2000 AD") passes through untouched.
	if series == strings.ToLower(series) {
		series = titleCaser.String(series)
	}
	return series
}
