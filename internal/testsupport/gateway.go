// Package testsupport provides shared fakes and helpers for longbox tests.
package testsupport

import (
	"context"
	"sync"

	"longbox/internal/comicdb"
)

// FakeGateway is a scripted in-memory comicdb.Gateway. Zero value is usable:
// every lookup returns empty results. Safe for concurrent use.
type FakeGateway struct {
	mu sync.Mutex

	// SeriesByTerms maps exact search terms to results.
	SeriesByTerms map[string][]comicdb.SeriesRef
	// IssuesBySeries maps series keys to issue listings.
	IssuesBySeries map[string][]comicdb.IssueRef
	// IssueDetails maps issue keys to full records.
	IssueDetails map[string]*comicdb.Issue

	// SearchErr, ListErr, and FetchErr, when set, fail the corresponding
	// call before any lookup.
	SearchErr error
	ListErr   error
	FetchErr  error

	searchCalls int
	listCalls   int
	fetchCalls  int
}

var _ comicdb.Gateway = (*FakeGateway)(nil)

// SearchSeries implements comicdb.Gateway.
func (g *FakeGateway) SearchSeries(ctx context.Context, terms string) ([]comicdb.SeriesRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.searchCalls++
	if g.SearchErr != nil {
		return nil, g.SearchErr
	}
	return g.SeriesByTerms[terms], nil
}

// ListIssues implements comicdb.Gateway.
func (g *FakeGateway) ListIssues(ctx context.Context, seriesKey string) ([]comicdb.IssueRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	if g.ListErr != nil {
		return nil, g.ListErr
	}
	return g.IssuesBySeries[seriesKey], nil
}

// FetchIssue implements comicdb.Gateway.
func (g *FakeGateway) FetchIssue(ctx context.Context, issueKey string) (*comicdb.Issue, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetchCalls++
	if g.FetchErr != nil {
		return nil, g.FetchErr
	}
	issue, ok := g.IssueDetails[issueKey]
	if !ok {
		return nil, comicdb.ErrNotFound
	}
	return issue, nil
}

// SearchCalls returns how many times SearchSeries was invoked.
func (g *FakeGateway) SearchCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.searchCalls
}

// ListCalls returns how many times ListIssues was invoked.
func (g *FakeGateway) ListCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.listCalls
}

// FetchCalls returns how many times FetchIssue was invoked.
func (g *FakeGateway) FetchCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetchCalls
}

// MustSeriesRef builds a SeriesRef or panics; for test fixture literals.
func MustSeriesRef(key, name, startYear, publisher string, issueCount int) comicdb.SeriesRef {
	ref, err := comicdb.NewSeriesRef(key, name, startYear, publisher, "", "")
	if err != nil {
		panic(err)
	}
	ref.IssueCount = issueCount
	return ref
}

// MustIssueRef builds an IssueRef or panics; for test fixture literals.
func MustIssueRef(key, number, title, coverYear string) comicdb.IssueRef {
	ref, err := comicdb.NewIssueRef(key, number, title, coverYear)
	if err != nil {
		panic(err)
	}
	return ref
}
