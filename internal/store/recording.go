package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kryndex/robottelo/pkg/hammer"
)

// RecordingExecutor decorates an Executor, journaling every invocation and
// its outcome. Journal write failures are logged and swallowed; the
// journal is diagnostics, it must never fail a test run.
type RecordingExecutor struct {
	next    hammer.Executor
	store   *Store
	session uuid.UUID
	log     *zap.SugaredLogger
}

func NewRecordingExecutor(next hammer.Executor, store *Store, session uuid.UUID) *RecordingExecutor {
	return &RecordingExecutor{
		next:    next,
		store:   store,
		session: session,
		log:     zap.S().Named("journal"),
	}
}

func (r *RecordingExecutor) Execute(ctx context.Context, args []string) (*hammer.Result, error) {
	start := time.Now()
	res, err := r.next.Execute(ctx, args)

	inv := &Invocation{
		SessionID: r.session,
		Command:   hammer.QuoteArgs(args),
		Duration:  time.Since(start),
		CreatedAt: start.UTC(),
	}
	if err != nil {
		inv.ExitStatus = -1
		inv.Stderr = err.Error()
	} else {
		inv.ExitStatus = res.ExitStatus
		inv.Stderr = strings.Join(res.Stderr, "\n")
	}

	if saveErr := r.store.Invocations().Save(ctx, inv); saveErr != nil {
		r.log.Warnw("failed to journal invocation", "error", saveErr)
	}

	return res, err
}
