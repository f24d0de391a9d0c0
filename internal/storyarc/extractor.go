package storyarc

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	"longbox/internal/textutil"
)

// partMarkerPatterns match the trailing multi-part markers that link issue
// titles back to a shared arc name. Ordered from most to least specific.
var partMarkerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(.*?)[\s,:;\-–]+part[\s.]*(?:\d+|[ivxlcdm]+|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)\b`),
	regexp.MustCompile(`(?i)^(.*?)[\s,:;\-–]+chapter[\s.]*\d+\b`),
	regexp.MustCompile(`(?i)^(.*?)[\s,:;\-–]+\(?\d+\s+of\s+\d+\)?`),
	regexp.MustCompile(`(?i)^(.*?[^\s\d])[\s,:;\-–]+\d{1,3}$`),
}

type arc struct {
	display string
	norm    string
}

// Extractor learns arc names from a series' issue titles and extracts them
// from individual titles. Safe for concurrent use; Prime replaces any
// previously learned index.
type Extractor struct {
	mu     sync.RWMutex
	primed bool
	// arcs grouped by the lowercased leading letter of the arc name,
	// longest arc first within each bucket.
	arcs map[rune][]arc
}

// NewExtractor returns an unprimed extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Prime builds the arc index from every issue title in one series. A phrase
// qualifies as an arc when it precedes a part marker in at least two titles.
func (e *Extractor) Prime(titles []string) {
	type candidate struct {
		display string
		count   int
	}
	counts := make(map[string]*candidate)
	for _, title := range titles {
		display, ok := splitArc(title)
		if !ok {
			continue
		}
		norm := normalizeTitle(display)
		if norm == "" {
			continue
		}
		if existing, found := counts[norm]; found {
			existing.count++
		} else {
			counts[norm] = &candidate{display: display, count: 1}
		}
	}

	index := make(map[rune][]arc)
	for norm, cand := range counts {
		if cand.count < 2 {
			continue
		}
		letter := leadingLetter(norm)
		if letter == 0 {
			continue
		}
		index[letter] = append(index[letter], arc{display: cand.display, norm: norm})
	}
	for letter := range index {
		bucket := index[letter]
		sort.Slice(bucket, func(i, j int) bool {
			if len(bucket[i].norm) != len(bucket[j].norm) {
				return len(bucket[i].norm) > len(bucket[j].norm)
			}
			return bucket[i].norm < bucket[j].norm
		})
	}

	e.mu.Lock()
	e.arcs = index
	e.primed = true
	e.mu.Unlock()
}

// Extract returns the longest primed arc name that prefixes the title at a
// token boundary, or the empty string when unprimed or unmatched.
func (e *Extractor) Extract(title string) string {
	norm := normalizeTitle(title)
	if norm == "" {
		return ""
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.primed {
		return ""
	}
	bucket, ok := e.arcs[leadingLetter(norm)]
	if !ok {
		return ""
	}
	for _, candidate := range bucket {
		if !strings.HasPrefix(norm, candidate.norm) {
			continue
		}
		if len(norm) == len(candidate.norm) || !isWordChar(rune(norm[len(candidate.norm)])) {
			return candidate.display
		}
	}
	return ""
}

// splitArc strips the trailing part marker from a title, returning the arc
// name candidate with trailing punctuation removed.
func splitArc(title string) (string, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", false
	}
	for _, pattern := range partMarkerPatterns {
		m := pattern.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		display := strings.TrimRight(m[1], " \t,:;-–.")
		if display == "" {
			continue
		}
		return display, true
	}
	return "", false
}

func normalizeTitle(title string) string {
	return textutil.CollapseWhitespace(strings.ToLower(title))
}

func leadingLetter(norm string) rune {
	for _, r := range norm {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
	}
	return 0
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
