package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atvtours/internal/domain"
	"atvtours/internal/modules/booking"
	"atvtours/internal/modules/payment"
	"atvtours/internal/repository"
)

// Service is the checkout orchestrator and the only component allowed to
// call the payment gateway. One Submit call covers one user-initiated
// attempt; there is no internal retry, every retry is a fresh submission
// with a freshly derived breakdown.
type Service struct {
	gateway GatewayClient
	history historyStore
	timeout time.Duration
	loggerf func(format string, args ...interface{})
	now     func() time.Time
}

func NewService(gateway GatewayClient, history historyStore, timeout time.Duration, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		gateway: gateway,
		history: history,
		timeout: timeout,
		loggerf: loggerf,
		now:     time.Now,
	}
}

// Submit drives one payment attempt for the session. The returned field map
// is non-nil when the payment step's validator rejected the selection; in
// that case no gateway call was made.
func (s *Service) Submit(ctx context.Context, sess *booking.Session) (*domain.FinalizedBooking, map[string]string, error) {
	attempt, breakdown, fields, err := sess.PrepareAttempt()
	if err != nil {
		return nil, nil, err
	}
	if len(fields) > 0 {
		return nil, fields, nil
	}

	// The submission lock blocks mutation while the call is in flight, so a
	// fresh derivation must still match the attempt. A mismatch means the
	// attempt was built against a state that no longer exists: abort it and
	// force a fresh submission.
	if fresh := sess.Breakdown(); fresh.Total != attempt.Amount {
		sess.CancelSubmission(attempt.Generation)
		s.loggerf("level=error msg=stale submission aborted session_id=%s attempt=%s fresh=%s",
			attempt.SessionID, attempt.Amount, fresh.Total)
		return nil, nil, ErrStaleSubmission
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.gateway.Submit(callCtx, chargeRequest(attempt))
	if err != nil {
		return nil, nil, s.failAttempt(sess, attempt, err)
	}
	if !resp.Success {
		if ferr := sess.FailSubmission(attempt.Generation, resp.Message); ferr != nil {
			s.loggerf("level=info msg=dropping stale gateway decline session_id=%s", attempt.SessionID)
			return nil, nil, booking.ErrStaleResult
		}
		return nil, nil, fmt.Errorf("%w: %s", ErrGatewayDeclined, resp.Message)
	}

	settledAt := resp.Timestamp
	if settledAt.IsZero() {
		settledAt = s.now().UTC()
	}

	selection, err := sess.Confirm(attempt.Generation)
	if err != nil {
		// The owning session was abandoned while the call was in flight.
		// The settlement must not resurrect it: drop the result entirely.
		s.loggerf("level=info msg=dropping stale gateway settlement session_id=%s transaction_id=%s",
			attempt.SessionID, resp.TransactionID)
		return nil, nil, booking.ErrStaleResult
	}

	fb := &domain.FinalizedBooking{
		SessionID:     attempt.SessionID,
		TransactionID: resp.TransactionID,
		Selection:     selection,
		Breakdown:     breakdown,
		Amount:        attempt.Amount,
		Currency:      attempt.Currency,
		SettledAt:     settledAt,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.history.Create(ctx, fb); err != nil {
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			s.loggerf("level=info msg=settlement already recorded transaction_id=%s", resp.TransactionID)
		} else {
			// The charge settled; losing the history write must not undo
			// the confirmation.
			s.loggerf("level=error msg=failed to record finalized booking transaction_id=%s err=%v", resp.TransactionID, err)
		}
	}

	return fb, nil, nil
}

// GetBooking returns the finalized booking for a settled transaction.
func (s *Service) GetBooking(ctx context.Context, transactionID string) (*domain.FinalizedBooking, error) {
	return s.history.GetByTransactionID(ctx, transactionID)
}

func (s *Service) failAttempt(sess *booking.Session, attempt domain.PaymentAttempt, cause error) error {
	kind := ErrGatewayUnreachable
	reason := cause.Error()
	if errors.Is(cause, context.DeadlineExceeded) {
		kind = ErrGatewayTimeout
		reason = TimeoutMessage
	}

	if ferr := sess.FailSubmission(attempt.Generation, reason); ferr != nil {
		s.loggerf("level=info msg=dropping stale gateway failure session_id=%s", attempt.SessionID)
		return booking.ErrStaleResult
	}
	s.loggerf("level=error msg=gateway attempt failed session_id=%s err=%v", attempt.SessionID, cause)
	return fmt.Errorf("%w: %s", kind, reason)
}

func chargeRequest(a domain.PaymentAttempt) payment.ChargeRequest {
	req := payment.ChargeRequest{
		Amount:   int64(a.Amount),
		Currency: a.Currency,
		Method:   string(a.Method),
		Email:    a.Email,
	}
	if a.Method == domain.MethodCard {
		req.CardNumber = a.CardNumber
		req.CardExpiry = a.CardExpiry
		req.CardCvc = a.CardCVC
	}
	return req
}
