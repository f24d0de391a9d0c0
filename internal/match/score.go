package match

import (
	"math"
	"strconv"
	"strings"

	"longbox/internal/comicdb"
	"longbox/internal/textutil"
)

// Sub-score weights for series-level scoring. They sum to 1; scores scale
// to the 0-100 range.
const (
	seriesNameWeight      = 0.55
	seriesYearWeight      = 0.20
	seriesPublisherWeight = 0.10
	seriesCountWeight     = 0.15
)

// Issue-level point allocation. The exact-number floor exceeds the combined
// maximum of the remaining signals, so a mismatched number can only win when
// no exact-number candidate exists.
const (
	issueNumberPoints = 60.0
	issueTitlePoints  = 30.0
	issueYearPoints   = 10.0
)

// articleWeight is the token weight given to leading articles, which carry
// a fifth of a normal token's signal rather than being dropped outright.
const articleWeight = 0.2

var leadingArticles = map[string]bool{"the": true, "a": true, "an": true}

// ScoreSeries computes a 0-100 confidence score for how well a candidate
// series matches the book's known fields. Pure function, no I/O.
func ScoreSeries(book Book, candidate comicdb.SeriesRef) float64 {
	score := seriesNameWeight*nameSimilarity(book.Series, candidate.SeriesName) +
		seriesYearWeight*yearProximity(book.Year, candidate.StartYear) +
		seriesPublisherWeight*publisherAgreement(book.Publisher, candidate.Publisher) +
		seriesCountWeight*issueCountPlausibility(book.IssueNumber, candidate.IssueCount)
	return clampScore(score * 100)
}

// ScoreIssue computes a 0-100 confidence score for a candidate issue.
// arcName, when non-empty, is the story arc extracted from the candidate's
// title and participates as an alternate title form.
func ScoreIssue(book Book, candidate comicdb.IssueRef, arcName string) float64 {
	score := 0.0
	if issueNumbersEqual(book.IssueNumber, candidate.IssueNumber) {
		score += issueNumberPoints
	}
	score += issueTitlePoints * issueTitleSimilarity(book.Title, candidate.Title, arcName)
	score += issueYearPoints * yearProximity(book.Year, candidate.CoverYear)
	return clampScore(score)
}

// nameSimilarity compares two names with case and punctuation folded away.
// Leading articles participate at reduced weight.
func nameSimilarity(bookName, candidateName string) float64 {
	bookName = strings.TrimSpace(bookName)
	candidateName = strings.TrimSpace(candidateName)
	if bookName == "" || candidateName == "" {
		return 0
	}
	if textutil.NormalizeForComparison(bookName) == textutil.NormalizeForComparison(candidateName) {
		return 1
	}
	return textutil.CosineSimilarity(nameFingerprint(bookName), nameFingerprint(candidateName))
}

func nameFingerprint(name string) *textutil.Fingerprint {
	tokens := textutil.Tokenize(name)
	if len(tokens) == 0 {
		return nil
	}
	weights := make(map[string]float64, len(tokens))
	for idx, token := range tokens {
		weight := 1.0
		if idx == 0 && leadingArticles[token] {
			weight = articleWeight
		}
		weights[token] += weight
	}
	return textutil.NewWeightedFingerprint(weights)
}

// yearProximity returns full score on exact match or when either year is
// unknown, decays linearly through three years of distance, and is
// near-zero beyond that.
func yearProximity(bookYear, candidateYear string) float64 {
	a, okA := parseYear(bookYear)
	b, okB := parseYear(candidateYear)
	if !okA || !okB {
		return 1
	}
	switch diff := absInt(a - b); {
	case diff == 0:
		return 1
	case diff <= 3:
		return 1 - 0.25*float64(diff)
	default:
		return 0.05
	}
}

// publisherAgreement gives full credit on a match, stays neutral when either
// side is unknown, and applies a soft penalty on disagreement since remote
// publisher data is noisy.
func publisherAgreement(bookPublisher, candidatePublisher string) float64 {
	a := textutil.NormalizeForComparison(bookPublisher)
	b := textutil.NormalizeForComparison(candidatePublisher)
	if a == "" || b == "" {
		return 1
	}
	if a == b {
		return 1
	}
	return 0.25
}

// issueCountPlausibility penalizes series whose issue count cannot contain
// the book's issue number; issue #45 cannot live in a 12-issue series.
func issueCountPlausibility(issueNumber string, issueCount int) float64 {
	num, ok := parseIssueNumber(issueNumber)
	if !ok || num <= 0 || issueCount <= 0 {
		return 1
	}
	if num <= float64(issueCount) {
		return 1
	}
	return math.Max(0.1, float64(issueCount)/num)
}

func issueTitleSimilarity(bookTitle, candidateTitle, arcName string) float64 {
	if strings.TrimSpace(bookTitle) == "" {
		return 1
	}
	sim := nameSimilarity(bookTitle, candidateTitle)
	if arcName != "" {
		if arcSim := nameSimilarity(bookTitle, arcName); arcSim > sim {
			sim = arcSim
		}
	}
	return sim
}

// issueNumbersEqual compares issue numbers with leading zeros, case, and a
// hash prefix normalized away, so "042" matches "#42" and "1A" matches "1a".
func issueNumbersEqual(a, b string) bool {
	na, nb := canonicalIssueNumber(a), canonicalIssueNumber(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb
}

func canonicalIssueNumber(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.TrimPrefix(value, "#")
	if value == "" {
		return ""
	}
	if num, err := strconv.ParseFloat(strings.TrimRight(value, "abcdefghijklmnopqrstuvwxyz"), 64); err == nil {
		suffix := value[len(strings.TrimRight(value, "abcdefghijklmnopqrstuvwxyz")):]
		return strconv.FormatFloat(num, 'f', -1, 64) + suffix
	}
	return value
}

func parseYear(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if len(value) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return year, true
}

func parseIssueNumber(value string) (float64, bool) {
	value = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(value)), "#")
	value = strings.TrimRight(value, "abcdefghijklmnopqrstuvwxyz")
	if value == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
