package hammer

import "context"

// Result is the raw outcome of one remote command: exit status plus the
// captured output streams split into lines.
type Result struct {
	ExitStatus int
	Stdout     []string
	Stderr     []string
}

// Executor runs one command on the target system. Implementations block
// until the command finishes; cancellation and timeouts come in through ctx.
// A returned error means the command never ran (transport failure); a
// non-zero exit status is reported through Result, not through error.
type Executor interface {
	Execute(ctx context.Context, args []string) (*Result, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, args []string) (*Result, error)

func (f ExecutorFunc) Execute(ctx context.Context, args []string) (*Result, error) {
	return f(ctx, args)
}
