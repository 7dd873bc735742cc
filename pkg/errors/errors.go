package errors

import (
	"errors"
	"fmt"
	"strings"
)

// InvocationError indicates the remote CLI rejected an invocation with a
// non-zero exit status. Stderr carries the joined standard error text.
type InvocationError struct {
	Status int
	Stderr string
}

func NewInvocationError(status int, stderr []string) *InvocationError {
	return &InvocationError{Status: status, Stderr: strings.Join(stderr, "\n")}
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("command failed with status %d: %s", e.Status, e.Stderr)
}

// IsInvocationError checks if the error is an InvocationError.
func IsInvocationError(err error) bool {
	var e *InvocationError
	return errors.As(err, &e)
}

// DecodeError indicates output that does not match the expected format for
// the declared output kind, even though the invocation itself succeeded.
type DecodeError struct {
	Format string
	Line   string
	Reason string
}

func NewDecodeError(format, line, reason string) *DecodeError {
	return &DecodeError{Format: format, Line: line, Reason: reason}
}

func (e *DecodeError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("cannot decode %s output: %s", e.Format, e.Reason)
	}
	return fmt.Sprintf("cannot decode %s output: %s: %q", e.Format, e.Reason, e.Line)
}

// IsDecodeError checks if the error is a DecodeError.
func IsDecodeError(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

// TransportError indicates the invocation never reached the remote tool,
// typically a broken SSH session. Distinct from InvocationError: there is no
// exit status to report.
type TransportError struct {
	Inner error
}

func NewTransportError(err error) *TransportError {
	return &TransportError{Inner: err}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("remote execution failed: %v", e.Inner)
}

func (e *TransportError) Unwrap() error {
	return e.Inner
}

// IsTransportError checks if the error is a TransportError.
func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

// UnknownRelationError indicates an add/remove action for a relation the
// entity descriptor never registered. Raised at entity construction time so
// a typoed relation fails fast instead of on first use.
type UnknownRelationError struct {
	Entity   string
	Relation string
}

func NewUnknownRelationError(entity, relation string) *UnknownRelationError {
	return &UnknownRelationError{Entity: entity, Relation: relation}
}

func (e *UnknownRelationError) Error() string {
	return fmt.Sprintf("entity %q has no relation %q", e.Entity, e.Relation)
}

func IsUnknownRelationError(err error) bool {
	var e *UnknownRelationError
	return errors.As(err, &e)
}
