package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session id is not in the journal.
var ErrSessionNotFound = errors.New("session not found")

type SessionStore struct {
	db QueryInterceptor
}

func NewSessionStore(db QueryInterceptor) *SessionStore {
	return &SessionStore{db: db}
}

// Start journals the beginning of a harness run against target and returns
// the new session.
func (s *SessionStore) Start(ctx context.Context, target string) (*Session, error) {
	session := &Session{
		ID:        uuid.New(),
		Target:    target,
		StartedAt: time.Now().UTC(),
	}

	query, args, err := sq.Insert("sessions").
		Columns("id", "target", "started_at").
		Values(session.ID.String(), session.Target, session.StartedAt).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}
	return session, nil
}

// Finish stamps the session's end time.
func (s *SessionStore) Finish(ctx context.Context, id uuid.UUID) error {
	query, args, err := sq.Update("sessions").
		Set("finished_at", time.Now().UTC()).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// List returns all sessions, most recent first.
func (s *SessionStore) List(ctx context.Context) ([]Session, error) {
	query, args, err := sq.Select("id", "target", "started_at", "finished_at").
		From("sessions").
		OrderBy("started_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			rawID    string
			session  Session
			finished sql.NullTime
		)
		if err := rows.Scan(&rawID, &session.Target, &session.StartedAt, &finished); err != nil {
			return nil, err
		}
		if session.ID, err = uuid.Parse(rawID); err != nil {
			return nil, err
		}
		if finished.Valid {
			t := finished.Time
			session.FinishedAt = &t
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	query, args, err := sq.Select("id", "target", "started_at", "finished_at").
		From("sessions").
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, query, args...)

	var (
		rawID    string
		session  Session
		finished sql.NullTime
	)
	err = row.Scan(&rawID, &session.Target, &session.StartedAt, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	session.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		t := finished.Time
		session.FinishedAt = &t
	}
	return &session, nil
}
