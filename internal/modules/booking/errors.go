package booking

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionClosed      = errors.New("session is closed")
	ErrSubmissionInFlight = errors.New("payment submission in flight")
	ErrFinalStep          = errors.New("already on the final step")
	ErrInitialStep        = errors.New("already on the initial step")
	ErrStepNotReached     = errors.New("preceding steps have not been validated")
	ErrNotOnPaymentStep   = errors.New("session is not on the payment step")
	ErrUnknownOption      = errors.New("unknown catalog option")
	ErrUnknownMethod      = errors.New("unknown payment method")

	// ErrStaleResult marks a gateway resolution arriving for a session that
	// has been abandoned or superseded. It is dropped, never surfaced.
	ErrStaleResult = errors.New("stale gateway result")
)
