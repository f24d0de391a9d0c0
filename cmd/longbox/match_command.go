package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"longbox/internal/match"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var noInput bool

	cmd := &cobra.Command{
		Use:   "match FILE",
		Short: "Resolve one comic file against the remote database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matcher, err := ctx.newMatcher()
			if err != nil {
				return err
			}

			var chooser match.Chooser
			if !noInput && stdinIsTerminal() {
				chooser = newTerminalChooser(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			result, err := matcher.Resolve(cmd.Context(), match.Book{Path: args[0]}, chooser)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}
			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noInput, "no-input", false, "Never prompt; report ambiguous matches and exit")
	return cmd
}

func printResult(cmd *cobra.Command, result match.Result) {
	out := cmd.OutOrStdout()
	switch result.Outcome {
	case match.OutcomeAutoMatched:
		how := "matched"
		if result.UserResolved {
			how = "matched (user selection)"
		}
		fmt.Fprintf(out, "%s: %s\n", how, formatMatchedIssue(result.Series.Chosen, result.Detail))
	case match.OutcomeNeedsUserInput:
		fmt.Fprintln(out, "Ambiguous match; candidates:")
		if len(result.Issue.Candidates) > 0 {
			fmt.Fprintln(out, renderCandidateTable(issueCandidateHeaders, issueCandidateRows(result.Issue.Candidates)))
		} else {
			fmt.Fprintln(out, renderCandidateTable(seriesCandidateHeaders, seriesCandidateRows(result.Series.Candidates)))
		}
	case match.OutcomeCancelled:
		fmt.Fprintln(out, "Cancelled.")
	default:
		fmt.Fprintf(out, "No match found for %s\n", result.Book.Path)
	}
}
