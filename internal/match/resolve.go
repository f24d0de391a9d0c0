package match

import (
	"context"

	"longbox/internal/comicdb"
)

// Result is the terminal outcome of resolving one book end to end.
type Result struct {
	Book         Book
	Series       SeriesDecision
	Issue        IssueDecision
	Detail       *comicdb.Issue
	Outcome      Outcome
	UserResolved bool
}

// Resolve runs both resolution stages for one book, escalating through the
// chooser when confidence is insufficient, and fetches the full issue record
// on success. A nil chooser makes escalations terminal: the result carries
// OutcomeNeedsUserInput and the ranked candidates for the caller to act on.
func (m *Matcher) Resolve(ctx context.Context, book Book, chooser Chooser) (Result, error) {
	result := Result{Book: book}

	seriesDecision, err := m.ResolveSeries(ctx, book)
	if err != nil {
		return result, err
	}
	result.Series = seriesDecision
	result.Outcome = seriesDecision.Outcome

	series := seriesDecision.Chosen
	switch seriesDecision.Outcome {
	case OutcomeAutoMatched:
	case OutcomeNeedsUserInput:
		if chooser == nil {
			return result, nil
		}
		choice, err := chooser.ChooseSeries(ctx, seriesDecision.Query, seriesDecision.Candidates)
		if err != nil {
			return result, err
		}
		switch {
		case choice.Cancelled:
			result.Outcome = OutcomeCancelled
			return result, nil
		case choice.NoMatch:
			result.Outcome = OutcomeNoCandidates
			return result, nil
		}
		selected, ok := findSeries(seriesDecision.Candidates, choice.Key)
		if !ok {
			result.Outcome = OutcomeNoCandidates
			return result, nil
		}
		series = selected
		result.UserResolved = true
	default:
		return result, nil
	}

	issueDecision, err := m.ResolveIssue(ctx, book, series)
	if err != nil {
		return result, err
	}
	result.Issue = issueDecision
	result.Outcome = issueDecision.Outcome

	issue := issueDecision.Chosen
	switch issueDecision.Outcome {
	case OutcomeAutoMatched:
	case OutcomeNeedsUserInput:
		if chooser == nil {
			return result, nil
		}
		choice, err := chooser.ChooseIssue(ctx, series, issueDecision.Candidates)
		if err != nil {
			return result, err
		}
		switch {
		case choice.Cancelled:
			result.Outcome = OutcomeCancelled
			return result, nil
		case choice.NoMatch:
			result.Outcome = OutcomeNoCandidates
			return result, nil
		}
		selected, ok := findIssue(issueDecision.Candidates, choice.Key)
		if !ok {
			result.Outcome = OutcomeNoCandidates
			return result, nil
		}
		issue = selected
		result.UserResolved = true
	default:
		return result, nil
	}

	detail, outcome, err := m.FetchIssue(ctx, issue.IssueKey)
	if err != nil {
		return result, err
	}
	result.Outcome = outcome
	result.Detail = detail
	return result, nil
}

func findSeries(candidates []ScoredSeries, key string) (comicdb.SeriesRef, bool) {
	for _, cand := range candidates {
		if cand.Ref.SeriesKey == key {
			return cand.Ref, true
		}
	}
	return comicdb.SeriesRef{}, false
}

func findIssue(candidates []ScoredIssue, key string) (comicdb.IssueRef, bool) {
	for _, cand := range candidates {
		if cand.Ref.IssueKey == key {
			return cand.Ref, true
		}
	}
	return comicdb.IssueRef{}, false
}
