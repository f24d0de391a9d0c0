package comicdb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SeriesRef is a lightweight reference to one series in the remote database.
// Identity is the SeriesKey alone; the remaining fields are display data.
type SeriesRef struct {
	SeriesKey    string
	SeriesName   string
	StartYear    string
	Publisher    string
	IssueCount   int
	ThumbnailURL string
}

// NewSeriesRef builds a SeriesRef from raw remote fields. The key is
// required; a missing name falls back to a synthetic label, a non-numeric
// start year normalizes to empty, and a non-numeric issue count normalizes
// to zero.
func NewSeriesRef(key, name, startYear, publisher, issueCount, thumbnailURL string) (SeriesRef, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return SeriesRef{}, errors.New("series key cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Series %s", key)
	}
	return SeriesRef{
		SeriesKey:    key,
		SeriesName:   name,
		StartYear:    normalizeYear(startYear),
		Publisher:    strings.TrimSpace(publisher),
		IssueCount:   normalizeCount(issueCount),
		ThumbnailURL: strings.TrimSpace(thumbnailURL),
	}, nil
}

// SameSeries reports whether two refs identify the same remote series.
func (r SeriesRef) SameSeries(other SeriesRef) bool {
	return r.SeriesKey == other.SeriesKey
}

// CompareSeriesRefs orders refs lexically by series key.
func CompareSeriesRefs(a, b SeriesRef) int {
	return strings.Compare(a.SeriesKey, b.SeriesKey)
}

// IssueRef is a lightweight reference to one issue within a series.
// Identity is the IssueKey alone.
type IssueRef struct {
	IssueKey    string
	IssueNumber string
	Title       string
	CoverYear   string
}

// NewIssueRef builds an IssueRef from raw remote fields. The key is required;
// the issue number, title, and cover year are trimmed and may be empty.
func NewIssueRef(key, number, title, coverYear string) (IssueRef, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return IssueRef{}, errors.New("issue key cannot be empty")
	}
	return IssueRef{
		IssueKey:    key,
		IssueNumber: strings.TrimSpace(number),
		Title:       strings.TrimSpace(title),
		CoverYear:   normalizeYear(coverYear),
	}, nil
}

// SameIssue reports whether two refs identify the same remote issue.
func (r IssueRef) SameIssue(other IssueRef) bool {
	return r.IssueKey == other.IssueKey
}

// CompareIssueRefs orders refs lexically by issue key.
func CompareIssueRefs(a, b IssueRef) int {
	return strings.Compare(a.IssueKey, b.IssueKey)
}

// Issue is the full metadata record for a single resolved issue. Absent data
// is always the empty string, never a sentinel, so downstream formatting can
// treat every field uniformly.
type Issue struct {
	IssueKey        string
	IssueNumber     string
	Title           string
	SeriesName      string
	SeriesStartYear string
	Publisher       string
	Imprint         string
	AlternateSeries string
	Summary         string
	Month           string
	Year            string
	Characters      string
	Teams           string
	Locations       string
	Writer          string
	Penciller       string
	Inker           string
	Colorist        string
	Letterer        string
	CoverArtist     string
	Editor          string
	Webpage         string
	Rating          float64
	ImageURLs       []string
}

func normalizeYear(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if _, err := strconv.Atoi(value); err != nil {
		return ""
	}
	return value
}

func normalizeCount(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	count, err := strconv.Atoi(value)
	if err != nil || count < 0 {
		return 0
	}
	return count
}
