package match

import (
	"strings"

	"longbox/internal/filename"
)

// Book is a read-only snapshot of the host application's comic entry. Fields
// other than Path may be empty; the matcher fills gaps from the filename.
type Book struct {
	Path        string
	Series      string
	IssueNumber string
	Year        string
	Publisher   string
	Title       string
}

// effectiveFields merges the book's known metadata with filename guesses,
// preferring metadata the host already carries.
func (b Book) effectiveFields() Book {
	guess := filename.Parse(b.Path)
	merged := b
	if strings.TrimSpace(merged.Series) == "" {
		merged.Series = guess.Series
	}
	if strings.TrimSpace(merged.IssueNumber) == "" {
		merged.IssueNumber = guess.IssueNumber
	}
	if strings.TrimSpace(merged.Year) == "" {
		merged.Year = guess.Year
	}
	return merged
}
