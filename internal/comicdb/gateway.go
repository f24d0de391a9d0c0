package comicdb

import "context"

// Gateway defines the remote database operations the matching core consumes.
// Implementations return ErrConnection for transport failures and ErrNotFound
// when a key no longer exists remotely; they never return partial records.
type Gateway interface {
	// SearchSeries returns candidate series for free-text search terms,
	// in the remote service's native order. The slice may be empty.
	SearchSeries(ctx context.Context, terms string) ([]SeriesRef, error)

	// ListIssues returns every issue reference in the given series.
	ListIssues(ctx context.Context, seriesKey string) ([]IssueRef, error)

	// FetchIssue returns the full metadata record for one issue.
	FetchIssue(ctx context.Context, issueKey string) (*Issue, error)
}
