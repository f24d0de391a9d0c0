package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"longbox/internal/comicdb"
	"longbox/internal/match"
)

// renderCandidateTable renders headers plus rows with the rightmost column
// (the score) right-aligned.
func renderCandidateTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i == len(headers)-1 {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func seriesCandidateRows(candidates []match.ScoredSeries) [][]string {
	rows := make([][]string, 0, len(candidates))
	for idx, cand := range candidates {
		rows = append(rows, []string{
			fmt.Sprintf("%d", idx+1),
			cand.Ref.SeriesName,
			cand.Ref.StartYear,
			cand.Ref.Publisher,
			fmt.Sprintf("%d", cand.Ref.IssueCount),
			formatScore(cand.Score),
		})
	}
	return rows
}

func issueCandidateRows(candidates []match.ScoredIssue) [][]string {
	rows := make([][]string, 0, len(candidates))
	for idx, cand := range candidates {
		rows = append(rows, []string{
			fmt.Sprintf("%d", idx+1),
			cand.Ref.IssueNumber,
			cand.Ref.Title,
			cand.Ref.CoverYear,
			formatScore(cand.Score),
		})
	}
	return rows
}

var seriesCandidateHeaders = []string{"#", "Series", "Year", "Publisher", "Issues", "Score"}

var issueCandidateHeaders = []string{"#", "Issue", "Title", "Year", "Score"}

func formatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

func formatMatchedIssue(series comicdb.SeriesRef, issue *comicdb.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%s", series.SeriesName, issue.IssueNumber)
	if issue.Title != "" {
		fmt.Fprintf(&b, " - %s", issue.Title)
	}
	if issue.Year != "" {
		fmt.Fprintf(&b, " (%s)", issue.Year)
	}
	return b.String()
}
