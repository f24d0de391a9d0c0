package match

import (
	"context"
	"slices"
	"strings"

	"longbox/internal/comicdb"
)

// Outcome classifies the result of one resolution stage.
type Outcome int

const (
	// OutcomeNoCandidates means the lookup produced nothing usable.
	OutcomeNoCandidates Outcome = iota
	// OutcomeAutoMatched means confidence was high enough to skip the user.
	OutcomeAutoMatched
	// OutcomeNeedsUserInput means a ranked candidate list awaits a choice.
	OutcomeNeedsUserInput
	// OutcomeCancelled means the session cancel flag was observed.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoCandidates:
		return "no_candidates"
	case OutcomeAutoMatched:
		return "auto_matched"
	case OutcomeNeedsUserInput:
		return "needs_user_input"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ScoredSeries pairs a series candidate with its confidence score.
type ScoredSeries struct {
	Ref   comicdb.SeriesRef
	Score float64
}

// ScoredIssue pairs an issue candidate with its confidence score.
type ScoredIssue struct {
	Ref   comicdb.IssueRef
	Score float64
}

// SeriesDecision is the outcome of the series resolution stage. Candidates
// are ranked highest score first with ties broken by lexically smaller key.
type SeriesDecision struct {
	Outcome    Outcome
	Query      string
	Chosen     comicdb.SeriesRef
	Candidates []ScoredSeries
}

// IssueDecision is the outcome of the issue resolution stage.
type IssueDecision struct {
	Outcome    Outcome
	SeriesKey  string
	Chosen     comicdb.IssueRef
	Candidates []ScoredIssue
}

// Choice is what the interactive collaborator returns from an escalation:
// a selected candidate key, an explicit "none of these" verdict, or a
// cancellation signal. Cancellation is an outcome, not an error.
type Choice struct {
	Key       string
	NoMatch   bool
	Cancelled bool
}

// Chooser is the boundary contract to the out-of-core interactive UI. The
// candidate slices arrive ranked; implementations must also render the
// implicit "no match" option.
type Chooser interface {
	ChooseSeries(ctx context.Context, query string, candidates []ScoredSeries) (Choice, error)
	ChooseIssue(ctx context.Context, series comicdb.SeriesRef, candidates []ScoredIssue) (Choice, error)
}

func rankSeries(candidates []ScoredSeries) {
	slices.SortFunc(candidates, func(a, b ScoredSeries) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Ref.SeriesKey, b.Ref.SeriesKey)
	})
}

func rankIssues(candidates []ScoredIssue) {
	slices.SortFunc(candidates, func(a, b ScoredIssue) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Ref.IssueKey, b.Ref.IssueKey)
	})
}
