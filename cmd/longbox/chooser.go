package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"longbox/internal/comicdb"
	"longbox/internal/match"
)

// terminalChooser prompts on the terminal when matching needs a human call.
// Entering a row number selects a candidate, "n" declares none match, and
// "q" cancels the session.
type terminalChooser struct {
	in  io.Reader
	out io.Writer
}

func newTerminalChooser(in io.Reader, out io.Writer) *terminalChooser {
	return &terminalChooser{in: in, out: out}
}

func (c *terminalChooser) ChooseSeries(ctx context.Context, query string, candidates []match.ScoredSeries) (match.Choice, error) {
	fmt.Fprintf(c.out, "\nMultiple series match %q:\n", query)
	fmt.Fprintln(c.out, renderCandidateTable(seriesCandidateHeaders, seriesCandidateRows(candidates)))
	return c.prompt(ctx, len(candidates), func(idx int) string {
		return candidates[idx].Ref.SeriesKey
	})
}

func (c *terminalChooser) ChooseIssue(ctx context.Context, series comicdb.SeriesRef, candidates []match.ScoredIssue) (match.Choice, error) {
	fmt.Fprintf(c.out, "\nMultiple issues of %s match:\n", series.SeriesName)
	fmt.Fprintln(c.out, renderCandidateTable(issueCandidateHeaders, issueCandidateRows(candidates)))
	return c.prompt(ctx, len(candidates), func(idx int) string {
		return candidates[idx].Ref.IssueKey
	})
}

func (c *terminalChooser) prompt(ctx context.Context, count int, keyAt func(int) string) (match.Choice, error) {
	reader := bufio.NewReader(c.in)
	for {
		if err := ctx.Err(); err != nil {
			return match.Choice{Cancelled: true}, nil
		}
		fmt.Fprintf(c.out, "Select 1-%d, n for no match, q to cancel: ", count)
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return match.Choice{Cancelled: true}, nil
			}
			return match.Choice{}, fmt.Errorf("read selection: %w", err)
		}
		choice, ok := parseChoice(line, count)
		if !ok {
			fmt.Fprintln(c.out, "Unrecognized selection.")
			continue
		}
		if choice.selected >= 0 {
			return match.Choice{Key: keyAt(choice.selected)}, nil
		}
		return match.Choice{NoMatch: choice.noMatch, Cancelled: choice.cancelled}, nil
	}
}

type parsedChoice struct {
	selected  int
	noMatch   bool
	cancelled bool
}

func parseChoice(line string, count int) (parsedChoice, bool) {
	token := strings.ToLower(strings.TrimSpace(line))
	switch token {
	case "n", "none":
		return parsedChoice{selected: -1, noMatch: true}, true
	case "q", "quit":
		return parsedChoice{selected: -1, cancelled: true}, true
	}
	number, err := strconv.Atoi(token)
	if err != nil || number < 1 || number > count {
		return parsedChoice{}, false
	}
	return parsedChoice{selected: number - 1}, true
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
