package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"longbox/internal/comicdb"
	"longbox/internal/journal"
	"longbox/internal/logging"
	"longbox/internal/match"
)

// DefaultWorkers bounds the matching worker pool when no override is given.
const DefaultWorkers = 4

// Options configures a Session beyond its required matcher.
type Options struct {
	Workers int
	Chooser match.Chooser
	Journal *journal.Journal
	Logger  *slog.Logger
}

// Session coordinates one batch run. Construct with New; a Session is good
// for a single Run.
type Session struct {
	id      string
	matcher *match.Matcher
	chooser match.Chooser
	journal *journal.Journal
	workers int
	logger  *slog.Logger
}

// Result is one book's outcome within the batch. Err is set only for
// failures the matcher could not fold into an outcome, such as repeated
// connection loss.
type Result struct {
	Match match.Result
	Err   error
}

// Summary aggregates a finished run.
type Summary struct {
	SessionID string
	Results   []Result
	Tally     journal.Tally
}

// New builds a session around an existing matcher. The matcher's caches and
// cancel flag are shared across all workers.
func New(matcher *match.Matcher, opts Options) *Session {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	chooser := opts.Chooser
	if chooser != nil {
		chooser = &serialChooser{inner: chooser}
	}
	return &Session{
		id:      uuid.NewString(),
		matcher: matcher,
		chooser: chooser,
		journal: opts.Journal,
		workers: workers,
		logger:  logging.NewComponentLogger(opts.Logger, "session"),
	}
}

// ID returns the session identifier used in logs and the journal.
func (s *Session) ID() string {
	return s.id
}

// Cancel signals the shared cancel flag. Safe from any goroutine.
func (s *Session) Cancel() {
	s.matcher.CancelFlag().Cancel()
}

// Run resolves every book and returns per-book results in input order. A
// book whose resolution errors does not stop the batch; the error lands in
// its Result and the book counts as unmatched in the tally.
func (s *Session) Run(ctx context.Context, root string, books []match.Book) (Summary, error) {
	summary := Summary{SessionID: s.id, Results: make([]Result, len(books))}

	if s.journal != nil {
		if err := s.journal.StartSession(ctx, s.id, root); err != nil {
			return summary, err
		}
	}
	s.logger.Info("session started",
		logging.String(logging.FieldSessionID, s.id),
		logging.String("root", root),
		logging.Int("books", len(books)),
		logging.Int("workers", s.workers))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for idx, book := range books {
		idx, book := idx, book
		group.Go(func() error {
			result, err := s.matcher.Resolve(groupCtx, book, s.chooser)
			summary.Results[idx] = Result{Match: result, Err: err}
			if err != nil {
				s.logger.Warn("book resolution failed",
					logging.String(logging.FieldSessionID, s.id),
					logging.String(logging.FieldBookPath, book.Path),
					logging.Error(err))
			}
			s.record(groupCtx, book, result, err)
			return nil
		})
	}
	_ = group.Wait()

	summary.Tally = tallyResults(summary.Results)
	if s.journal != nil {
		if err := s.journal.FinishSession(ctx, s.id, summary.Tally); err != nil {
			return summary, err
		}
	}
	s.logger.Info("session finished",
		logging.String(logging.FieldSessionID, s.id),
		logging.Int("auto_matched", summary.Tally.AutoMatched),
		logging.Int("user_resolved", summary.Tally.UserResolved),
		logging.Int("unmatched", summary.Tally.Unmatched),
		logging.Int("cancelled", summary.Tally.Cancelled))
	return summary, nil
}

func (s *Session) record(ctx context.Context, book match.Book, result match.Result, resolveErr error) {
	if s.journal == nil {
		return
	}
	decision := &journal.Decision{
		SessionID:    s.id,
		BookPath:     book.Path,
		Outcome:      result.Outcome.String(),
		UserResolved: result.UserResolved,
	}
	if resolveErr != nil {
		decision.Outcome = "error"
	}
	if key := result.Series.Chosen.SeriesKey; key != "" {
		decision.SeriesKey = key
		decision.SeriesName = result.Series.Chosen.SeriesName
	}
	if key := result.Issue.Chosen.IssueKey; key != "" {
		decision.IssueKey = key
		decision.IssueNumber = result.Issue.Chosen.IssueNumber
		decision.Score = chosenIssueScore(result.Issue)
	}
	if _, err := s.journal.RecordDecision(ctx, decision); err != nil {
		s.logger.Warn("journal write failed",
			logging.String(logging.FieldSessionID, s.id),
			logging.String(logging.FieldBookPath, book.Path),
			logging.Error(err))
	}
}

func chosenIssueScore(decision match.IssueDecision) float64 {
	for _, cand := range decision.Candidates {
		if cand.Ref.IssueKey == decision.Chosen.IssueKey {
			return cand.Score
		}
	}
	return 0
}

func tallyResults(results []Result) journal.Tally {
	tally := journal.Tally{BookCount: len(results)}
	for _, result := range results {
		switch {
		case result.Err != nil:
			tally.Unmatched++
		case result.Match.Outcome == match.OutcomeAutoMatched && result.Match.UserResolved:
			tally.UserResolved++
		case result.Match.Outcome == match.OutcomeAutoMatched:
			tally.AutoMatched++
		case result.Match.Outcome == match.OutcomeCancelled:
			tally.Cancelled++
		default:
			tally.Unmatched++
		}
	}
	return tally
}

// serialChooser funnels concurrent escalations through one prompt at a time.
type serialChooser struct {
	mu    sync.Mutex
	inner match.Chooser
}

func (c *serialChooser) ChooseSeries(ctx context.Context, query string, candidates []match.ScoredSeries) (match.Choice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.ChooseSeries(ctx, query, candidates)
}

func (c *serialChooser) ChooseIssue(ctx context.Context, series comicdb.SeriesRef, candidates []match.ScoredIssue) (match.Choice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.ChooseIssue(ctx, series, candidates)
}
