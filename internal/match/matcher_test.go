package match

import (
	"context"
	"errors"
	"testing"

	"longbox/internal/comicdb"
	"longbox/internal/testsupport"
)

func TestResolveSeriesAutoMatchesSingleStrongCandidate(t *testing.T) {
	gateway := &testsupport.FakeGateway{
		SeriesByTerms: map[string][]comicdb.SeriesRef{
			"Amazing Spider Man": {
				testsupport.MustSeriesRef("2121", "Amazing Spider-Man", "2018", "Marvel", 93),
			},
		},
	}
	matcher := NewMatcher(gateway, nil, Options{})

	decision, err := matcher.ResolveSeries(context.Background(), Book{Path: "Amazing-Spider-Man_042_(2018).cbz"})
	if err != nil {
		t.Fatalf("ResolveSeries failed: %v", err)
	}
	if decision.Outcome != OutcomeAutoMatched {
		t.Fatalf("Outcome = %v, want auto matched", decision.Outcome)
	}
	if decision.Chosen.SeriesKey != "2121" {
		t.Errorf("Chosen = %+v", decision.Chosen)
	}
	if decision.Query != "Amazing Spider Man" {
		t.Errorf("Query = %q", decision.Query)
	}
}

func TestResolveSeriesNoCandidates(t *testing.T) {
	gateway := &testsupport.FakeGateway{}
	matcher := NewMatcher(gateway, nil, Options{})

	decision, err := matcher.ResolveSeries(context.Background(), Book{Path: "Obscure-Series_001.cbz"})
	if err != nil {
		t.Fatalf("ResolveSeries failed: %v", err)
	}
	if decision.Outcome != OutcomeNoCandidates {
		t.Errorf("Outcome = %v, want no candidates", decision.Outcome)
	}
}

func TestResolveSeriesCloseScoresEscalate(t *testing.T) {
	gateway := &testsupport.FakeGateway{
		SeriesByTerms: map[string][]comicdb.SeriesRef{
			"Saga": {
				testsupport.MustSeriesRef("20", "Saga", "2012", "", 0),
				testsupport.MustSeriesRef("10", "Saga", "2012", "", 0),
			},
		},
	}
	matcher := NewMatcher(gateway, nil, Options{})

	decision, err := matcher.ResolveSeries(context.Background(), Book{Path: "Saga 001 (2012).cbz"})
	if err != nil {
		t.Fatalf("ResolveSeries failed: %v", err)
	}
	if decision.Outcome != OutcomeNeedsUserInput {
		t.Fatalf("Outcome = %v, want needs user input", decision.Outcome)
	}
	if len(decision.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(decision.Candidates))
	}
	// Identical scores break ties by lexically smaller key.
	if decision.Candidates[0].Ref.SeriesKey != "10" || decision.Candidates[1].Ref.SeriesKey != "20" {
		t.Errorf("tie-break order wrong: %q then %q",
			decision.Candidates[0].Ref.SeriesKey, decision.Candidates[1].Ref.SeriesKey)
	}
	if decision.Candidates[0].Score < decision.Candidates[1].Score {
		t.Error("candidates must be ranked by descending score")
	}
}

func TestResolveSeriesUsesCache(t *testing.T) {
	gateway := &testsupport.FakeGateway{
		SeriesByTerms: map[string][]comicdb.SeriesRef{
			"Saga": {testsupport.MustSeriesRef("10", "Saga", "2012", "", 0)},
		},
	}
	caches := NewCaches(0)
	matcher := NewMatcher(gateway, caches, Options{})

	book := Book{Path: "Saga 001 (2012).cbz"}
	for i := 0; i < 3; i++ {
		if _, err := matcher.ResolveSeries(context.Background(), book); err != nil {
			t.Fatalf("ResolveSeries failed: %v", err)
		}
	}
	if calls := gateway.SearchCalls(); calls != 1 {
		t.Errorf("gateway searched %d times, want 1 (cache hit)", calls)
	}
}

func TestResolveSeriesConnectionErrorPropagates(t *testing.T) {
	gateway := &testsupport.FakeGateway{SearchErr: comicdb.ErrConnection}
	matcher := NewMatcher(gateway, nil, Options{})

	_, err := matcher.ResolveSeries(context.Background(), Book{Path: "Saga 001.cbz"})
	if !errors.Is(err, comicdb.ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}

	// The failure must not be cached: a retry hits the gateway again.
	gateway.SearchErr = nil
	gateway.SeriesByTerms = map[string][]comicdb.SeriesRef{
		"Saga": {testsupport.MustSeriesRef("10", "Saga", "", "", 0)},
	}
	decision, err := matcher.ResolveSeries(context.Background(), Book{Path: "Saga 001.cbz"})
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if decision.Outcome == OutcomeNoCandidates {
		t.Error("retry after transient failure should see fresh results")
	}
}

func TestResolveSeriesNotFoundIsNoCandidates(t *testing.T) {
	gateway := &testsupport.FakeGateway{SearchErr: comicdb.ErrNotFound}
	matcher := NewMatcher(gateway, nil, Options{})

	decision, err := matcher.ResolveSeries(context.Background(), Book{Path: "Saga 001.cbz"})
	if err != nil {
		t.Fatalf("ResolveSeries failed: %v", err)
	}
	if decision.Outcome != OutcomeNoCandidates {
		t.Errorf("Outcome = %v, want no candidates", decision.Outcome)
	}
}

func TestCancelledBeforePassSkipsGateway(t *testing.T) {
	gateway := &testsupport.FakeGateway{
		SeriesByTerms: map[string][]comicdb.SeriesRef{
			"Saga": {testsupport.MustSeriesRef("10", "Saga", "", "", 0)},
		},
	}
	cancel := NewCancelFlag()
	matcher := NewMatcher(gateway, nil, Options{Cancel: cancel})
	cancel.Cancel()

	decision, err := matcher.ResolveSeries(context.Background(), Book{Path: "Saga 001.cbz"})
	if err != nil {
		t.Fatalf("ResolveSeries failed: %v", err)
	}
	if decision.Outcome != OutcomeCancelled {
		t.Errorf("Outcome = %v, want cancelled", decision.Outcome)
	}
	if gateway.SearchCalls() != 0 {
		t.Error("cancelled pass must not invoke the gateway")
	}
}

func TestResolveIssueExactNumberAutoMatches(t *testing.T) {
	gateway := &testsupport.FakeGateway{
		IssuesBySeries: map[string][]comicdb.IssueRef{
			"2121": {
				testsupport.MustIssueRef("9001", "41", "Back to Basics, Part 4", "2018"),
				testsupport.MustIssueRef("9002", "42", "Back to Basics, Part 5", "2018"),
				testsupport.MustIssueRef("9003", "43", "Back to Basics, Part 6", "2018"),
			},
		},
	}
	matcher := NewMatcher(gateway, nil, Options{})
	series := testsupport.MustSeriesRef("2121", "Amazing Spider-Man", "2018", "Marvel", 93)

	decision, err := matcher.ResolveIssue(context.Background(),
		Book{Path: "Amazing-Spider-Man_042_(2018).cbz"}, series)
	if err != nil {
		t.Fatalf("ResolveIssue failed: %v", err)
	}
	if decision.Outcome != OutcomeAutoMatched {
		t.Fatalf("Outcome = %v, want auto matched; candidates %+v", decision.Outcome, decision.Candidates)
	}
	if decision.Chosen.IssueKey != "9002" {
		t.Errorf("Chosen = %+v, want issue 42", decision.Chosen)
	}
}

func TestResolveIssueDuplicateNumbersEscalate(t *testing.T) {
	gateway := &testsupport.FakeGateway{
		IssuesBySeries: map[string][]comicdb.IssueRef{
			"2121": {
				testsupport.MustIssueRef("9002", "42", "", ""),
				testsupport.MustIssueRef("9005", "42", "", ""),
			},
		},
	}
	matcher := NewMatcher(gateway, nil, Options{})
	series := testsupport.MustSeriesRef("2121", "Amazing Spider-Man", "", "", 0)

	decision, err := matcher.ResolveIssue(context.Background(),
		Book{Path: "Amazing-Spider-Man_042.cbz"}, series)
	if err != nil {
		t.Fatalf("ResolveIssue failed: %v", err)
	}
	if decision.Outcome != OutcomeNeedsUserInput {
		t.Errorf("Outcome = %v, want needs user input for duplicate numbers", decision.Outcome)
	}
}

func TestResolveIssueEmptySeriesList(t *testing.T) {
	gateway := &testsupport.FakeGateway{}
	matcher := NewMatcher(gateway, nil, Options{})
	series := testsupport.MustSeriesRef("2121", "Amazing Spider-Man", "", "", 0)

	decision, err := matcher.ResolveIssue(context.Background(), Book{Path: "x_001.cbz"}, series)
	if err != nil {
		t.Fatalf("ResolveIssue failed: %v", err)
	}
	if decision.Outcome != OutcomeNoCandidates {
		t.Errorf("Outcome = %v, want no candidates", decision.Outcome)
	}
}

func TestFetchIssueStaleKeyIsNoCandidates(t *testing.T) {
	gateway := &testsupport.FakeGateway{}
	matcher := NewMatcher(gateway, nil, Options{})

	issue, outcome, err := matcher.FetchIssue(context.Background(), "404404")
	if err != nil {
		t.Fatalf("FetchIssue failed: %v", err)
	}
	if issue != nil || outcome != OutcomeNoCandidates {
		t.Errorf("stale key should yield no candidates, got %v / %v", issue, outcome)
	}
}
