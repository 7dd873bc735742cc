package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/Kryndex/robottelo/pkg/hammer"
)

// LocalExecutor runs the tool binary on the local machine, for developer
// setups where the CLI is installed next to the harness.
type LocalExecutor struct {
	log *zap.SugaredLogger
}

func NewLocalExecutor() *LocalExecutor {
	return &LocalExecutor{log: zap.S().Named("local")}
}

func (e *LocalExecutor) Execute(ctx context.Context, args []string) (*hammer.Result, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("empty argument vector")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.log.Debugw("run", "command", hammer.QuoteArgs(args))
	err := cmd.Run()

	status := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("running command: %w", err)
		}
		status = exitErr.ExitCode()
	}

	return &hammer.Result{
		ExitStatus: status,
		Stdout:     splitLines(stdout.String()),
		Stderr:     splitLines(stderr.String()),
	}, nil
}
