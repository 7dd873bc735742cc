// Package remote implements the command executor contract over SSH (the
// normal deployment: the CLI lives on the product server) and over local
// process execution for development boxes.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"

	"github.com/Kryndex/robottelo/internal/config"
	"github.com/Kryndex/robottelo/pkg/hammer"
)

// SSHExecutor runs commands on the target host, one session per
// invocation over a shared connection. Sessions are independent, so
// concurrent Execute calls are fine.
type SSHExecutor struct {
	client *ssh.Client
	log    *zap.SugaredLogger
}

func NewSSHExecutor(cfg config.Server) (*SSHExecutor, error) {
	auth, err := authMethods(cfg)
	if err != nil {
		return nil, err
	}

	clientConfig := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         cfg.Timeout,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	client, err := ssh.Dial("tcp", addr, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	return &SSHExecutor{
		client: client,
		log:    zap.S().Named("ssh"),
	}, nil
}

func authMethods(cfg config.Server) ([]ssh.AuthMethod, error) {
	var auth []ssh.AuthMethod
	if cfg.KeyFile != "" {
		key, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parsing private key: %w", err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		auth = append(auth, ssh.Password(cfg.Password))
	}
	if len(auth) == 0 {
		return nil, fmt.Errorf("no SSH authentication configured")
	}
	return auth, nil
}

// Execute runs one command and waits for it to finish. Context expiry
// kills the remote process; the core itself carries no timeout logic.
func (e *SSHExecutor) Execute(ctx context.Context, args []string) (*hammer.Result, error) {
	session, err := e.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	command := hammer.QuoteArgs(args)
	e.log.Debugw("run", "command", command)
	start := time.Now()

	done := make(chan error, 1)
	go func() {
		done <- session.Run(command)
	}()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		return nil, ctx.Err()
	case err = <-done:
	}

	status := 0
	if err != nil {
		var exitErr *ssh.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("running command: %w", err)
		}
		status = exitErr.ExitStatus()
	}

	e.log.Debugw("done", "status", status, "duration", time.Since(start))
	return &hammer.Result{
		ExitStatus: status,
		Stdout:     splitLines(stdout.String()),
		Stderr:     splitLines(stderr.String()),
	}, nil
}

// Upload writes content to path on the target over SFTP. Fixture factories
// use it to stage template files before pointing the CLI at them.
func (e *SSHExecutor) Upload(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	client, err := sftp.NewClient(e.client)
	if err != nil {
		return fmt.Errorf("opening sftp: %w", err)
	}
	defer client.Close()

	f, err := client.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Chmod(mode); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}

func (e *SSHExecutor) Close() error {
	return e.client.Close()
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
