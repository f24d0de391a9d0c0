package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"longbox/internal/match"
	"longbox/internal/session"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var noInput bool
	var workers int

	cmd := &cobra.Command{
		Use:   "batch DIR",
		Short: "Resolve every comic file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// One batch at a time per data dir; concurrent sessions would
			// interleave journal tallies and prompts.
			lock := flock.New(filepath.Join(cfg.Paths.DataDir, "longbox.lock"))
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire session lock: %w", err)
			}
			if !ok {
				return errors.New("another longbox session is already running")
			}
			defer func() { _ = lock.Unlock() }()

			books, err := session.Discover(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(books) == 0 {
				fmt.Fprintf(out, "No comic files found under %s\n", args[0])
				return nil
			}

			matcher, err := ctx.newMatcher()
			if err != nil {
				return err
			}
			jrnl, err := ctx.openJournal()
			if err != nil {
				return err
			}
			defer jrnl.Close()

			var chooser match.Chooser
			if !noInput && stdinIsTerminal() {
				chooser = newTerminalChooser(cmd.InOrStdin(), out)
			}
			if workers <= 0 {
				workers = cfg.Session.Workers
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			sess := session.New(matcher, session.Options{
				Workers: workers,
				Chooser: chooser,
				Journal: jrnl,
				Logger:  logger,
			})

			// First interrupt cancels the session gracefully; books already
			// resolved keep their results.
			signals := make(chan os.Signal, 1)
			signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(signals)
			go func() {
				if _, open := <-signals; open {
					fmt.Fprintln(out, "\nCancelling; letting in-flight lookups finish...")
					sess.Cancel()
				}
			}()

			fmt.Fprintf(out, "Matching %d books under %s (session %s)\n", len(books), args[0], sess.ID())
			summary, err := sess.Run(cmd.Context(), args[0], books)
			if err != nil {
				return err
			}
			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noInput, "no-input", false, "Never prompt; ambiguous books are left unmatched")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent matching workers (default from config)")
	return cmd
}

func printSummary(cmd *cobra.Command, summary session.Summary) {
	out := cmd.OutOrStdout()
	for _, result := range summary.Results {
		switch {
		case result.Err != nil:
			fmt.Fprintf(out, "  error     %s: %v\n", result.Match.Book.Path, result.Err)
		case result.Match.Outcome == match.OutcomeAutoMatched:
			fmt.Fprintf(out, "  matched   %s -> %s\n", result.Match.Book.Path,
				formatMatchedIssue(result.Match.Series.Chosen, result.Match.Detail))
		case result.Match.Outcome == match.OutcomeCancelled:
			fmt.Fprintf(out, "  cancelled %s\n", result.Match.Book.Path)
		default:
			fmt.Fprintf(out, "  unmatched %s\n", result.Match.Book.Path)
		}
	}
	tally := summary.Tally
	fmt.Fprintf(out, "\n%d books: %d auto-matched, %d user-resolved, %d unmatched, %d cancelled\n",
		tally.BookCount, tally.AutoMatched, tally.UserResolved, tally.Unmatched, tally.Cancelled)
}
