package resumably

import (
	"errors"

	"github.com/samthedataman/resumably/internal/types"
)

// Error taxonomy. Validation errors never reach the network; auth errors
// are inline form failures; a session-expired error from any call forces
// the global teardown; everything else is a transient operation failure
// the user retries by repeating the action.
type (
	ValidationError      = types.ValidationError
	AuthError            = types.AuthError
	OperationFailedError = types.OperationFailedError
)

// Re-export shared SDK errors so callers compare against single symbols.
var (
	ErrSessionExpired = types.ErrSessionExpired
	ErrNotFound       = types.ErrNotFound
)

// ErrNotConnected is returned when the intake pipeline is used without a
// linked mailbox account.
var ErrNotConnected = errors.New("mailbox account not connected")

// ErrScanInFlight is returned when a scan is requested while one is
// already pending; re-submission of the identical action is refused.
var ErrScanInFlight = errors.New("scan already in flight")

// ErrActionInFlight is returned when a classify or draft action for the
// same item is already pending.
var ErrActionInFlight = errors.New("action already in flight for this item")

// ErrInvalidState is returned when a session operation is attempted from a
// state it is not defined for.
var ErrInvalidState = errors.New("operation not valid in current session state")

// IsValidation reports whether err is a local precondition failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuth reports whether err is a rejected-credential failure.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsSessionExpired reports whether err carries the forced-teardown signal.
func IsSessionExpired(err error) bool { return errors.Is(err, ErrSessionExpired) }

// IsNotFound reports whether err is the not-found sentinel.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
