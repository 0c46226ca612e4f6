package types

import (
	"errors"
	"fmt"
)

// ------------------------------
// Shared Errors
// ------------------------------

// ErrSessionExpired is returned when the backend rejects the session token
// (401) or when a protected call is attempted without a live token. Any
// occurrence forces a global session teardown.
var ErrSessionExpired = errors.New("session expired")

// ErrNotFound is returned when the requested resource does not exist.
var ErrNotFound = errors.New("resource not found")

// ValidationError reports a local precondition failure. It is raised before
// any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// AuthError reports rejected credentials, a bad one-time code, or an
// invalid federated credential. It does not change unrelated state.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Detail
}

// OperationFailedError reports any other non-2xx reply from a mutation.
// The triggering entity is left unchanged so the action can be retried
// manually; the client never retries on its own.
type OperationFailedError struct {
	Operation  string
	StatusCode int
	Detail     string
}

func (e *OperationFailedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s failed: status %d: %s", e.Operation, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s failed: status %d", e.Operation, e.StatusCode)
}
