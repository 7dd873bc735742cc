package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type InvocationStore struct {
	db QueryInterceptor
}

func NewInvocationStore(db QueryInterceptor) *InvocationStore {
	return &InvocationStore{db: db}
}

// Save appends one invocation to the journal.
func (s *InvocationStore) Save(ctx context.Context, inv *Invocation) error {
	query, args, err := sq.Insert("invocations").
		Columns("session_id", "command", "exit_status", "stderr", "duration_ms", "created_at").
		Values(
			inv.SessionID.String(),
			inv.Command,
			inv.ExitStatus,
			inv.Stderr,
			inv.Duration.Milliseconds(),
			inv.CreatedAt,
		).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// BySession returns a session's invocations in journal order.
func (s *InvocationStore) BySession(ctx context.Context, sessionID uuid.UUID) ([]Invocation, error) {
	query, args, err := sq.Select("session_id", "command", "exit_status", "stderr", "duration_ms", "created_at").
		From("invocations").
		Where(sq.Eq{"session_id": sessionID.String()}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invocations []Invocation
	for rows.Next() {
		var (
			inv        Invocation
			rawSession string
			durationMs int64
		)
		if err := rows.Scan(&rawSession, &inv.Command, &inv.ExitStatus, &inv.Stderr, &durationMs, &inv.CreatedAt); err != nil {
			return nil, err
		}
		inv.SessionID, err = uuid.Parse(rawSession)
		if err != nil {
			return nil, err
		}
		inv.Duration = time.Duration(durationMs) * time.Millisecond
		invocations = append(invocations, inv)
	}
	return invocations, rows.Err()
}

// Failures counts the session's invocations that exited non-zero or never
// ran.
func (s *InvocationStore) Failures(ctx context.Context, sessionID uuid.UUID) (int, error) {
	query, args, err := sq.Select("count(*)").
		From("invocations").
		Where(sq.And{
			sq.Eq{"session_id": sessionID.String()},
			sq.NotEq{"exit_status": 0},
		}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
