// Package errors provides the failure taxonomy for remote CLI invocations.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
//	┌──────────────────────┬──────────────────────────────────────────────┐
//	│ Error Type           │ Description                                  │
//	├──────────────────────┼──────────────────────────────────────────────┤
//	│ InvocationError      │ Remote tool exited non-zero (status+stderr)  │
//	│ DecodeError          │ Exit 0 but output unparsable for the format  │
//	│ TransportError       │ Command never reached the remote tool        │
//	│ UnknownRelationError │ add/remove action outside the registry       │
//	└──────────────────────┴──────────────────────────────────────────────┘
//
// A zero-match lookup is NOT part of this taxonomy: hammer.Entity.Exists
// reports it as a plain negative result, never as an error.
//
// All types provide Is* helpers so wrapped errors keep classifying:
//
//	wrapped := fmt.Errorf("creating fixture: %w", err)
//	errors.IsInvocationError(wrapped) // still true
package errors
