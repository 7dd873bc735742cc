// Package store journals every CLI invocation of a harness run into an
// embedded analytics database, so a failing run can be replayed and
// queried after the fact without re-touching the target.
package store

import "database/sql"

// Store provides access to the journal repositories.
type Store struct {
	db          *sql.DB
	sessions    *SessionStore
	invocations *InvocationStore
}

func NewStore(db *sql.DB) *Store {
	q := newQueryInterceptor(db)
	return &Store{
		db:          db,
		sessions:    NewSessionStore(q),
		invocations: NewInvocationStore(q),
	}
}

func (s *Store) Sessions() *SessionStore {
	return s.sessions
}

func (s *Store) Invocations() *InvocationStore {
	return s.invocations
}

func (s *Store) Close() error {
	return s.db.Close()
}
