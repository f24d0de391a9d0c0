package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"longbox/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var sessionID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past matching sessions and their decisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jrnl, err := ctx.openJournal()
			if err != nil {
				return err
			}
			defer jrnl.Close()

			if sessionID != "" {
				return printSessionDecisions(cmd, jrnl, sessionID)
			}
			return printSessions(cmd, jrnl, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum sessions to list")
	cmd.Flags().StringVar(&sessionID, "session", "", "Show decisions for one session")
	return cmd
}

func printSessions(cmd *cobra.Command, jrnl *journal.Journal, limit int) error {
	sessions, err := jrnl.RecentSessions(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(sessions))
	for _, sess := range sessions {
		status := "running"
		if sess.FinishedAt != nil {
			status = sess.FinishedAt.Local().Format(time.DateTime)
		}
		rows = append(rows, []string{
			sess.ID,
			sess.Root,
			sess.StartedAt.Local().Format(time.DateTime),
			status,
			fmt.Sprintf("%d/%d", sess.AutoMatched+sess.UserResolved, sess.BookCount),
		})
	}
	fmt.Fprintln(out, renderCandidateTable(
		[]string{"Session", "Root", "Started", "Finished", "Matched"}, rows))
	return nil
}

func printSessionDecisions(cmd *cobra.Command, jrnl *journal.Journal, sessionID string) error {
	decisions, err := jrnl.Decisions(cmd.Context(), sessionID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(decisions) == 0 {
		fmt.Fprintf(out, "No decisions recorded for session %s\n", sessionID)
		return nil
	}

	rows := make([][]string, 0, len(decisions))
	for _, decision := range decisions {
		issue := decision.IssueNumber
		if issue != "" && decision.SeriesName != "" {
			issue = decision.SeriesName + " #" + issue
		}
		rows = append(rows, []string{
			decision.BookPath,
			decision.Outcome,
			issue,
			formatScore(decision.Score),
		})
	}
	fmt.Fprintln(out, renderCandidateTable(
		[]string{"Book", "Outcome", "Matched As", "Score"}, rows))
	return nil
}
