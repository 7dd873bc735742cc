package hammer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Kryndex/robottelo/pkg/errors"
)

// Client binds an Executor to the CLI binary and its authentication flags.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	exec     Executor
	binary   string
	username string
	password string
	log      *zap.SugaredLogger
}

type ClientOption func(*Client)

// WithBinary overrides the tool binary name (default "hammer").
func WithBinary(binary string) ClientOption {
	return func(c *Client) {
		c.binary = binary
	}
}

// WithCredentials sets the -u/-p authentication flags applied to every
// invocation.
func WithCredentials(username, password string) ClientOption {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

func NewClient(exec Executor, opts ...ClientOption) *Client {
	c := &Client{
		exec:   exec,
		binary: "hammer",
		log:    zap.S().Named("hammer"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) invocation(entity, action string, opts Options, format Format) Invocation {
	return Invocation{
		Binary:   c.binary,
		Username: c.username,
		Password: c.password,
		Entity:   entity,
		Action:   action,
		Options:  opts,
		Format:   format,
	}
}

// run executes one invocation and classifies the outcome: transport errors
// and non-zero exit statuses surface as typed failures, success hands the
// stdout lines to the caller's decoder. There is no partial success and no
// retry at this layer.
func (c *Client) run(ctx context.Context, inv Invocation) ([]string, error) {
	start := time.Now()
	res, err := c.exec.Execute(ctx, inv.Args())
	if err != nil {
		c.log.Errorw("execution failed", "entity", inv.Entity, "action", inv.Action, "error", err)
		return nil, errors.NewTransportError(err)
	}

	c.log.Debugw("executed",
		"entity", inv.Entity,
		"action", inv.Action,
		"status", res.ExitStatus,
		"duration", time.Since(start),
	)

	if res.ExitStatus != 0 {
		return nil, errors.NewInvocationError(res.ExitStatus, res.Stderr)
	}
	return res.Stdout, nil
}
