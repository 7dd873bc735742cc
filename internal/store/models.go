package store

import (
	"time"

	"github.com/google/uuid"
)

// Session groups the invocations of one harness run against one target.
type Session struct {
	ID         uuid.UUID
	Target     string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Invocation is one journaled CLI call and its outcome. ExitStatus -1
// marks a transport failure (the command never ran).
type Invocation struct {
	SessionID  uuid.UUID
	Command    string
	ExitStatus int
	Stderr     string
	Duration   time.Duration
	CreatedAt  time.Time
}
