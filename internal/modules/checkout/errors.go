package checkout

import "errors"

var (
	// ErrStaleSubmission means the attempt's amount no longer matches a
	// freshly derived breakdown. Fatal to the attempt, never to the session.
	ErrStaleSubmission = errors.New("submission amount is stale")

	ErrGatewayDeclined    = errors.New("payment declined")
	ErrGatewayTimeout     = errors.New("payment gateway timed out")
	ErrGatewayUnreachable = errors.New("payment gateway unreachable")
)

// TimeoutMessage is deliberately distinct from a decline: the charge's true
// state is unknown and the user should retry rather than assume failure.
const TimeoutMessage = "the payment service did not respond in time; your card was not necessarily charged, please try again"
