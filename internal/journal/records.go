package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Session summarizes one batch run over a library root.
type Session struct {
	ID           string
	Root         string
	StartedAt    time.Time
	FinishedAt   *time.Time
	BookCount    int
	AutoMatched  int
	UserResolved int
	Unmatched    int
	Cancelled    int
}

// Decision is one book's terminal resolution within a session.
type Decision struct {
	ID           int64
	SessionID    string
	BookPath     string
	Outcome      string
	SeriesKey    string
	SeriesName   string
	IssueKey     string
	IssueNumber  string
	Score        float64
	UserResolved bool
	CreatedAt    time.Time
}

// Tally holds the per-outcome counts written back when a session finishes.
type Tally struct {
	BookCount    int
	AutoMatched  int
	UserResolved int
	Unmatched    int
	Cancelled    int
}

// StartSession records a new session row. The id must be unique; callers
// generate it with uuid.
func (j *Journal) StartSession(ctx context.Context, id, root string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("session id is empty")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := j.execWithRetry(ctx,
		`INSERT INTO sessions (id, root, started_at) VALUES (?, ?, ?)`,
		id, root, timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// FinishSession stamps the session's end time and outcome tally.
func (j *Journal) FinishSession(ctx context.Context, id string, tally Tally) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := j.execWithRetry(ctx,
		`UPDATE sessions SET finished_at = ?, book_count = ?, auto_matched = ?,
            user_resolved = ?, unmatched = ?, cancelled = ? WHERE id = ?`,
		timestamp, tally.BookCount, tally.AutoMatched,
		tally.UserResolved, tally.Unmatched, tally.Cancelled, id,
	)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}

// RecordDecision appends one decision row and returns its assigned id.
func (j *Journal) RecordDecision(ctx context.Context, decision *Decision) (int64, error) {
	if decision == nil {
		return 0, errors.New("decision is nil")
	}
	if strings.TrimSpace(decision.SessionID) == "" {
		return 0, errors.New("decision session id is empty")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := j.execWithRetry(ctx,
		`INSERT INTO decisions (
            session_id, book_path, outcome, series_key, series_name,
            issue_key, issue_number, score, user_resolved, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		decision.SessionID,
		decision.BookPath,
		decision.Outcome,
		nullableString(decision.SeriesKey),
		nullableString(decision.SeriesName),
		nullableString(decision.IssueKey),
		nullableString(decision.IssueNumber),
		decision.Score,
		boolToInt(decision.UserResolved),
		timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("insert decision: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// GetSession fetches one session by id, or nil when absent.
func (j *Journal) GetSession(ctx context.Context, id string) (*Session, error) {
	row := j.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// RecentSessions returns up to limit sessions, newest first.
func (j *Journal) RecentSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ensureContext(ctx),
		`SELECT `+sessionColumns+` FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// Decisions returns a session's decisions in recording order.
func (j *Journal) Decisions(ctx context.Context, sessionID string) ([]Decision, error) {
	rows, err := j.db.QueryContext(ensureContext(ctx),
		`SELECT `+decisionColumns+` FROM decisions WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()
	return collectDecisions(rows)
}

// RecentDecisions returns up to limit decisions across sessions, newest first.
func (j *Journal) RecentDecisions(ctx context.Context, limit int) ([]Decision, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ensureContext(ctx),
		`SELECT `+decisionColumns+` FROM decisions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent decisions: %w", err)
	}
	defer rows.Close()
	return collectDecisions(rows)
}

const sessionColumns = `id, root, started_at, finished_at, book_count,
    auto_matched, user_resolved, unmatched, cancelled`

const decisionColumns = `id, session_id, book_path, outcome, series_key,
    series_name, issue_key, issue_number, score, user_resolved, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var (
		session    Session
		startedAt  string
		finishedAt sql.NullString
	)
	err := row.Scan(
		&session.ID,
		&session.Root,
		&startedAt,
		&finishedAt,
		&session.BookCount,
		&session.AutoMatched,
		&session.UserResolved,
		&session.Unmatched,
		&session.Cancelled,
	)
	if err != nil {
		return nil, err
	}
	session.StartedAt, err = parseTimestamp(startedAt)
	if err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		parsed, err := parseTimestamp(finishedAt.String)
		if err != nil {
			return nil, err
		}
		session.FinishedAt = &parsed
	}
	return &session, nil
}

func collectDecisions(rows *sql.Rows) ([]Decision, error) {
	var decisions []Decision
	for rows.Next() {
		var (
			decision     Decision
			seriesKey    sql.NullString
			seriesName   sql.NullString
			issueKey     sql.NullString
			issueNumber  sql.NullString
			userResolved int
			createdAt    string
		)
		err := rows.Scan(
			&decision.ID,
			&decision.SessionID,
			&decision.BookPath,
			&decision.Outcome,
			&seriesKey,
			&seriesName,
			&issueKey,
			&issueNumber,
			&decision.Score,
			&userResolved,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		decision.SeriesKey = seriesKey.String
		decision.SeriesName = seriesName.String
		decision.IssueKey = issueKey.String
		decision.IssueNumber = issueNumber.String
		decision.UserResolved = userResolved != 0
		decision.CreatedAt, err = parseTimestamp(createdAt)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, decision)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return decisions, nil
}

func parseTimestamp(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return parsed, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
