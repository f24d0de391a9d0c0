package match

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"longbox/internal/comicdb"
	"longbox/internal/logging"
	"longbox/internal/refcache"
	"longbox/internal/storyarc"
)

// errCancelled is an internal marker so a cancelled fetch is never cached;
// it is always converted back into OutcomeCancelled before returning.
var errCancelled = errors.New("matching cancelled")

// Caches holds the session-scoped reference caches shared by every book in
// a scraping session. Construct explicitly and pass by reference so tests
// and sessions control the lifetime.
type Caches struct {
	Series *refcache.Cache[[]comicdb.SeriesRef]
	Issues *refcache.Cache[[]comicdb.IssueRef]
}

// NewCaches creates both reference caches bounded to maxEntries each.
func NewCaches(maxEntries int) *Caches {
	return &Caches{
		Series: refcache.New[[]comicdb.SeriesRef](maxEntries),
		Issues: refcache.New[[]comicdb.IssueRef](maxEntries),
	}
}

// Options configures a Matcher beyond its required gateway and caches.
type Options struct {
	Tunables Tunables
	Cancel   *CancelFlag
	Logger   *slog.Logger
}

// Matcher drives the two-stage resolution state machine for one or more
// books. Safe for concurrent use across books.
type Matcher struct {
	gateway  comicdb.Gateway
	caches   *Caches
	tunables Tunables
	cancel   *CancelFlag
	logger   *slog.Logger
}

// NewMatcher creates a matcher. A nil caches builds a private pair; a nil
// cancel flag builds one that is never set.
func NewMatcher(gateway comicdb.Gateway, caches *Caches, opts Options) *Matcher {
	if caches == nil {
		caches = NewCaches(0)
	}
	cancel := opts.Cancel
	if cancel == nil {
		cancel = NewCancelFlag()
	}
	return &Matcher{
		gateway:  gateway,
		caches:   caches,
		tunables: opts.Tunables.normalized(),
		cancel:   cancel,
		logger:   logging.NewComponentLogger(opts.Logger, "matcher"),
	}
}

// CancelFlag exposes the matcher's cancellation flag so orchestrators can
// signal it.
func (m *Matcher) CancelFlag() *CancelFlag {
	return m.cancel
}

// ResolveSeries runs the series stage: parse, search (via cache), score,
// and apply the auto-accept policy. Only comicdb.ErrConnection surfaces as
// an error; everything else folds into the decision outcome.
func (m *Matcher) ResolveSeries(ctx context.Context, book Book) (SeriesDecision, error) {
	if m.cancel.Cancelled() {
		return SeriesDecision{Outcome: OutcomeCancelled}, nil
	}

	fields := book.effectiveFields()
	query := strings.TrimSpace(fields.Series)
	decision := SeriesDecision{Query: query}
	if query == "" {
		m.logger.Debug("no series guess from book",
			logging.String(logging.FieldBookPath, book.Path))
		decision.Outcome = OutcomeNoCandidates
		return decision, nil
	}

	refs, err := m.searchSeries(ctx, query)
	switch {
	case errors.Is(err, errCancelled):
		decision.Outcome = OutcomeCancelled
		return decision, nil
	case errors.Is(err, comicdb.ErrNotFound):
		decision.Outcome = OutcomeNoCandidates
		return decision, nil
	case err != nil:
		return SeriesDecision{}, err
	}

	candidates := make([]ScoredSeries, 0, len(refs))
	for _, ref := range refs {
		candidates = append(candidates, ScoredSeries{Ref: ref, Score: ScoreSeries(fields, ref)})
	}
	rankSeries(candidates)
	decision.Candidates = candidates

	switch outcome, top := m.applyPolicy(seriesScores(candidates), m.tunables.SeriesAutoThreshold, m.tunables.SeriesAutoMargin); outcome {
	case OutcomeAutoMatched:
		decision.Outcome = OutcomeAutoMatched
		decision.Chosen = candidates[0].Ref
		m.logger.Info("series auto-matched",
			logging.String(logging.FieldBookPath, book.Path),
			logging.String(logging.FieldSeriesKey, decision.Chosen.SeriesKey),
			logging.String("series_name", decision.Chosen.SeriesName),
			logging.Float64("score", top))
	default:
		decision.Outcome = outcome
		m.logger.Info("series stage complete",
			logging.String(logging.FieldBookPath, book.Path),
			logging.String("query", query),
			logging.Int("candidates", len(candidates)),
			logging.String("outcome", outcome.String()))
	}
	return decision, nil
}

// ResolveIssue runs the issue stage against an already resolved series.
func (m *Matcher) ResolveIssue(ctx context.Context, book Book, series comicdb.SeriesRef) (IssueDecision, error) {
	decision := IssueDecision{SeriesKey: series.SeriesKey}
	if m.cancel.Cancelled() {
		decision.Outcome = OutcomeCancelled
		return decision, nil
	}
	if strings.TrimSpace(series.SeriesKey) == "" {
		decision.Outcome = OutcomeNoCandidates
		return decision, nil
	}

	refs, err := m.listIssues(ctx, series.SeriesKey)
	switch {
	case errors.Is(err, errCancelled):
		decision.Outcome = OutcomeCancelled
		return decision, nil
	case errors.Is(err, comicdb.ErrNotFound):
		decision.Outcome = OutcomeNoCandidates
		return decision, nil
	case err != nil:
		return IssueDecision{}, err
	}

	fields := book.effectiveFields()
	extractor := storyarc.NewExtractor()
	titles := make([]string, 0, len(refs))
	for _, ref := range refs {
		titles = append(titles, ref.Title)
	}
	extractor.Prime(titles)

	candidates := make([]ScoredIssue, 0, len(refs))
	for _, ref := range refs {
		arc := extractor.Extract(ref.Title)
		candidates = append(candidates, ScoredIssue{Ref: ref, Score: ScoreIssue(fields, ref, arc)})
	}
	rankIssues(candidates)
	decision.Candidates = candidates

	switch outcome, top := m.applyPolicy(issueScores(candidates), m.tunables.IssueAutoThreshold, m.tunables.IssueAutoMargin); outcome {
	case OutcomeAutoMatched:
		decision.Outcome = OutcomeAutoMatched
		decision.Chosen = candidates[0].Ref
		m.logger.Info("issue auto-matched",
			logging.String(logging.FieldBookPath, book.Path),
			logging.String(logging.FieldSeriesKey, series.SeriesKey),
			logging.String(logging.FieldIssueKey, decision.Chosen.IssueKey),
			logging.String("issue_number", decision.Chosen.IssueNumber),
			logging.Float64("score", top))
	default:
		decision.Outcome = outcome
		m.logger.Info("issue stage complete",
			logging.String(logging.FieldBookPath, book.Path),
			logging.String(logging.FieldSeriesKey, series.SeriesKey),
			logging.Int("candidates", len(candidates)),
			logging.String("outcome", outcome.String()))
	}
	return decision, nil
}

// applyPolicy implements the shared threshold/margin decision rule. A lone
// candidate's margin is its full score.
func (m *Matcher) applyPolicy(scores []float64, threshold, margin float64) (Outcome, float64) {
	if len(scores) == 0 {
		return OutcomeNoCandidates, 0
	}
	top := scores[0]
	second := 0.0
	if len(scores) > 1 {
		second = scores[1]
	}
	if top >= threshold && top-second >= margin {
		return OutcomeAutoMatched, top
	}
	return OutcomeNeedsUserInput, top
}

func (m *Matcher) searchSeries(ctx context.Context, query string) ([]comicdb.SeriesRef, error) {
	key := refcache.NormalizeKey(query)
	return m.caches.Series.GetOrFetch(ctx, key, func(ctx context.Context) ([]comicdb.SeriesRef, error) {
		if m.cancel.Cancelled() {
			return nil, errCancelled
		}
		return m.gateway.SearchSeries(ctx, query)
	})
}

func (m *Matcher) listIssues(ctx context.Context, seriesKey string) ([]comicdb.IssueRef, error) {
	return m.caches.Issues.GetOrFetch(ctx, seriesKey, func(ctx context.Context) ([]comicdb.IssueRef, error) {
		if m.cancel.Cancelled() {
			return nil, errCancelled
		}
		return m.gateway.ListIssues(ctx, seriesKey)
	})
}

// FetchIssue retrieves the full metadata record for a chosen issue, honoring
// the cancellation flag at the network boundary. A stale key maps to a nil
// issue, not an error.
func (m *Matcher) FetchIssue(ctx context.Context, issueKey string) (*comicdb.Issue, Outcome, error) {
	if m.cancel.Cancelled() {
		return nil, OutcomeCancelled, nil
	}
	issue, err := m.gateway.FetchIssue(ctx, issueKey)
	switch {
	case errors.Is(err, comicdb.ErrNotFound):
		m.logger.Warn("issue key vanished remotely",
			logging.String(logging.FieldIssueKey, issueKey),
			logging.String(logging.FieldEventType, "issue_fetch_not_found"))
		return nil, OutcomeNoCandidates, nil
	case err != nil:
		return nil, OutcomeNoCandidates, err
	}
	return issue, OutcomeAutoMatched, nil
}

func seriesScores(candidates []ScoredSeries) []float64 {
	scores := make([]float64, len(candidates))
	for idx, cand := range candidates {
		scores[idx] = cand.Score
	}
	return scores
}

func issueScores(candidates []ScoredIssue) []float64 {
	scores := make([]float64, len(candidates))
	for idx, cand := range candidates {
		scores[idx] = cand.Score
	}
	return scores
}
