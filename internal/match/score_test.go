package match

import (
	"testing"

	"longbox/internal/comicdb"
)

func seriesRef(key, name, year, publisher string, count int) comicdb.SeriesRef {
	return comicdb.SeriesRef{
		SeriesKey:  key,
		SeriesName: name,
		StartYear:  year,
		Publisher:  publisher,
		IssueCount: count,
	}
}

func TestScoreSeriesIsPure(t *testing.T) {
	book := Book{Series: "Amazing Spider-Man", IssueNumber: "42", Year: "2018"}
	cand := seriesRef("2121", "Amazing Spider-Man", "2018", "Marvel", 93)
	first := ScoreSeries(book, cand)
	for i := 0; i < 5; i++ {
		if got := ScoreSeries(book, cand); got != first {
			t.Fatalf("ScoreSeries not deterministic: %f vs %f", got, first)
		}
	}
}

func TestScoreSeriesPerfectMatch(t *testing.T) {
	book := Book{Series: "Amazing Spider-Man", IssueNumber: "42", Year: "2018", Publisher: "Marvel"}
	cand := seriesRef("2121", "Amazing Spider-Man", "2018", "Marvel", 93)
	if got := ScoreSeries(book, cand); got != 100 {
		t.Errorf("perfect match score = %f, want 100", got)
	}
}

func TestScoreSeriesPunctuationInsensitiveName(t *testing.T) {
	book := Book{Series: "Amazing Spider Man", Year: "2018"}
	cand := seriesRef("2121", "Amazing Spider-Man", "2018", "", 0)
	if got := ScoreSeries(book, cand); got != 100 {
		t.Errorf("hyphen variant score = %f, want 100", got)
	}
}

func TestScoreSeriesMonotonicInYearDistance(t *testing.T) {
	book := Book{Series: "Saga", Year: "2012"}
	years := []string{"2012", "2013", "2014", "2015", "2017"}
	var prev float64 = 101
	for _, year := range years {
		cand := seriesRef("77", "Saga", year, "", 0)
		score := ScoreSeries(book, cand)
		if score > prev {
			t.Errorf("score for year %s = %f exceeds closer year score %f", year, score, prev)
		}
		prev = score
	}
}

func TestScoreSeriesUnknownYearIsNeutral(t *testing.T) {
	book := Book{Series: "Saga"}
	withYear := seriesRef("77", "Saga", "2012", "", 0)
	without := seriesRef("78", "Saga", "", "", 0)
	if ScoreSeries(book, withYear) != ScoreSeries(book, without) {
		t.Error("unknown book year should score candidate years neutrally")
	}
}

func TestScoreSeriesPublisherSignals(t *testing.T) {
	book := Book{Series: "Saga", Publisher: "Image"}
	matching := ScoreSeries(book, seriesRef("1", "Saga", "", "Image", 0))
	unknown := ScoreSeries(book, seriesRef("2", "Saga", "", "", 0))
	mismatched := ScoreSeries(book, seriesRef("3", "Saga", "", "Marvel", 0))
	if matching != unknown {
		t.Errorf("unknown publisher should be neutral: match=%f unknown=%f", matching, unknown)
	}
	if mismatched >= matching {
		t.Errorf("publisher mismatch should score below match: %f >= %f", mismatched, matching)
	}
}

func TestScoreSeriesImplausibleIssueCount(t *testing.T) {
	book := Book{Series: "Saga", IssueNumber: "45"}
	plausible := ScoreSeries(book, seriesRef("1", "Saga", "", "", 66))
	tiny := ScoreSeries(book, seriesRef("2", "Saga", "", "", 12))
	if tiny >= plausible {
		t.Errorf("issue #45 in a 12-issue series should be penalized: %f >= %f", tiny, plausible)
	}
	unknownCount := ScoreSeries(book, seriesRef("3", "Saga", "", "", 0))
	if unknownCount != plausible {
		t.Errorf("unknown issue count should be neutral: %f != %f", unknownCount, plausible)
	}
}

func TestScoreSeriesLeadingArticleWeight(t *testing.T) {
	book := Book{Series: "Walking Dead"}
	withArticle := ScoreSeries(book, seriesRef("1", "The Walking Dead", "", "", 0))
	unrelatedExtra := ScoreSeries(book, seriesRef("2", "Fighting Walking Dead", "", "", 0))
	if withArticle <= unrelatedExtra {
		t.Errorf("missing article should cost less than a missing real token: %f <= %f", withArticle, unrelatedExtra)
	}
}

func issueRef(key, number, title, year string) comicdb.IssueRef {
	return comicdb.IssueRef{IssueKey: key, IssueNumber: number, Title: title, CoverYear: year}
}

func TestScoreIssueExactNumberDominates(t *testing.T) {
	book := Book{IssueNumber: "42", Title: "Spark", Year: "2018"}
	exactWrongEverything := ScoreIssue(book, issueRef("1", "042", "Totally Different", "1980"), "")
	closeWrongNumber := ScoreIssue(book, issueRef("2", "41", "Spark", "2018"), "")
	if exactWrongEverything <= closeWrongNumber {
		t.Errorf("exact issue number must outrank any mismatched number: %f <= %f",
			exactWrongEverything, closeWrongNumber)
	}
}

func TestScoreIssueNumberNormalization(t *testing.T) {
	book := Book{IssueNumber: "42"}
	variants := []string{"42", "042", "#42", " 42 "}
	for _, v := range variants {
		if got := ScoreIssue(book, issueRef("1", v, "", ""), ""); got < issueNumberPoints {
			t.Errorf("issue number %q should match %q, score %f", v, book.IssueNumber, got)
		}
	}
	if got := ScoreIssue(book, issueRef("1", "42a", "", ""), ""); got >= issueNumberPoints {
		t.Errorf("suffixed number should not match bare number, score %f", got)
	}
}

func TestScoreIssueArcNameImprovesTitleSignal(t *testing.T) {
	book := Book{IssueNumber: "3", Title: "The God in the Bowl"}
	withoutArc := ScoreIssue(book, issueRef("1", "3", "The God in the Bowl, Part 3", ""), "")
	withArc := ScoreIssue(book, issueRef("1", "3", "The God in the Bowl, Part 3", ""), "The God in the Bowl")
	if withArc <= withoutArc {
		t.Errorf("arc name should improve title similarity: %f <= %f", withArc, withoutArc)
	}
}

func TestScoreIssueUnknownBookTitleNeutral(t *testing.T) {
	book := Book{IssueNumber: "5"}
	a := ScoreIssue(book, issueRef("1", "5", "Some Arc, Part 1", "2000"), "")
	b := ScoreIssue(book, issueRef("2", "5", "", "2000"), "")
	if a != b {
		t.Errorf("unknown book title should be neutral across candidates: %f != %f", a, b)
	}
}

func TestScoresAreBounded(t *testing.T) {
	books := []Book{
		{},
		{Series: "Saga", IssueNumber: "9999", Year: "1900"},
		{Series: "The The The", Publisher: "x"},
	}
	cands := []comicdb.SeriesRef{
		{},
		seriesRef("1", "Saga", "2012", "Image", 1),
	}
	for _, book := range books {
		for _, cand := range cands {
			score := ScoreSeries(book, cand)
			if score < 0 || score > 100 {
				t.Errorf("ScoreSeries out of range: %f", score)
			}
		}
	}
}
