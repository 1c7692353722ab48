package booking

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"atvtours/internal/domain"
	"atvtours/internal/modules/pricing"
)

// Session owns one checkout's mutable state: the selection draft, the
// current wizard step and the payment submission lifecycle. A session is
// exclusively owned by one checkout; the mutex serializes mutate and
// transition calls so no transition is ever computed against a half-applied
// patch.
type Session struct {
	mu sync.Mutex

	id        string
	catalog   *domain.Catalog
	status    domain.SessionStatus
	step      domain.WizardStep
	selection domain.BookingSelection

	// validated records steps whose validator accepted the selection at
	// least once this session; direct navigation may not jump past them.
	validated map[domain.WizardStep]bool

	// generation ties gateway calls to the session state that issued them.
	// Abandoning the session bumps it, so a late resolution can be told
	// apart from a live one and dropped.
	generation uint64
	submitting bool

	// paymentError is the last gateway failure reason, surfaced on the
	// payment step until the next submission.
	paymentError string

	now       func() time.Time
	createdAt time.Time
	updatedAt time.Time
}

func NewSession(catalog *domain.Catalog) *Session {
	now := time.Now
	t := now()
	return &Session{
		id:      uuid.NewString(),
		catalog: catalog,
		status:  domain.SessionActive,
		step:    domain.StepDetails,
		selection: domain.BookingSelection{
			PartySize:     domain.MinPartySize,
			VehicleID:     catalog.BaselineVehicleID(),
			PaymentMethod: domain.MethodCard,
		},
		validated: make(map[domain.WizardStep]bool),
		now:       now,
		createdAt: t,
		updatedAt: t,
	}
}

// WithClock replaces the session's time source. Used by validators that
// compare card expiry against the current month.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Status() domain.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Step() domain.WizardStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Selection returns a copy of the current draft.
func (s *Session) Selection() domain.BookingSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Clone()
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionView{
		ID:           s.id,
		Status:       s.status,
		Step:         s.step,
		Selection:    s.selection.Clone(),
		PaymentError: s.paymentError,
	}
}

// Breakdown derives the current price under the session lock, so the result
// is never computed against a partially applied patch.
func (s *Session) Breakdown() domain.PriceBreakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.ComputeBreakdown(s.selection, s.catalog)
}

// Mutate merges a partial update into the selection. It never advances or
// retreats the step. Party size is clamped to the declared bounds; extras
// toggle as idempotent set membership; catalog references must resolve.
// Mutation is rejected while a payment submission is in flight, so the
// submitted amount cannot desynchronize from the visible breakdown.
func (s *Session) Mutate(patch SelectionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.SessionActive {
		return ErrSessionClosed
	}
	if s.submitting {
		return ErrSubmissionInFlight
	}

	if patch.TourID != nil && *patch.TourID != "" {
		if _, ok := s.catalog.TourByID(*patch.TourID); !ok {
			return ErrUnknownOption
		}
	}
	if patch.VehicleID != nil && *patch.VehicleID != "" {
		if _, ok := s.catalog.VehicleByID(*patch.VehicleID); !ok {
			return ErrUnknownOption
		}
	}
	for _, id := range patch.ToggleExtras {
		if _, ok := s.catalog.ExtraByID(id); !ok {
			return ErrUnknownOption
		}
	}
	if patch.PaymentMethod != nil {
		switch domain.PaymentMethod(*patch.PaymentMethod) {
		case domain.MethodCard, domain.MethodWallet:
		default:
			return ErrUnknownMethod
		}
	}

	if patch.Date != nil {
		s.selection.Date = *patch.Date
	}
	if patch.TimeSlot != nil {
		s.selection.TimeSlot = *patch.TimeSlot
	}
	if patch.PartySize != nil {
		s.selection.PartySize = clampPartySize(*patch.PartySize)
	}
	if patch.TourID != nil {
		s.selection.TourID = *patch.TourID
	}
	if patch.VehicleID != nil {
		s.selection.VehicleID = *patch.VehicleID
	}
	for _, id := range patch.ToggleExtras {
		s.toggleExtra(id)
	}
	if patch.FirstName != nil {
		s.selection.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		s.selection.LastName = *patch.LastName
	}
	if patch.Email != nil {
		s.selection.Email = *patch.Email
	}
	if patch.Phone != nil {
		s.selection.Phone = *patch.Phone
	}
	if patch.SpecialRequests != nil {
		s.selection.SpecialRequests = *patch.SpecialRequests
	}
	if patch.TermsAccepted != nil {
		s.selection.TermsAccepted = *patch.TermsAccepted
	}
	if patch.PaymentMethod != nil {
		s.selection.PaymentMethod = domain.PaymentMethod(*patch.PaymentMethod)
	}
	if patch.CardNumber != nil {
		s.selection.CardNumber = *patch.CardNumber
	}
	if patch.CardExpiry != nil {
		s.selection.CardExpiry = *patch.CardExpiry
	}
	if patch.CardCVC != nil {
		s.selection.CardCVC = *patch.CardCVC
	}

	s.updatedAt = s.now()
	return nil
}

// Advance re-runs the current step's validator. On valid it moves to the
// next step and returns nil fields; on invalid it stays put and returns the
// field -> reason map, leaving all pending edits in place.
func (s *Session) Advance() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.SessionActive {
		return nil, ErrSessionClosed
	}
	if s.submitting {
		return nil, ErrSubmissionInFlight
	}

	if fields := CanAdvance(s.step, s.selection, s.now()); len(fields) > 0 {
		return fields, nil
	}
	s.validated[s.step] = true

	next, ok := s.step.Next()
	if !ok {
		return nil, ErrFinalStep
	}
	s.step = next
	s.updatedAt = s.now()
	return nil, nil
}

// Retreat moves one step back. It never runs a validator: a user may always
// go back to fix something without being re-blocked.
func (s *Session) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.SessionActive {
		return ErrSessionClosed
	}
	if s.submitting {
		return ErrSubmissionInFlight
	}

	prev, ok := s.step.Prev()
	if !ok {
		return ErrInitialStep
	}
	s.step = prev
	s.updatedAt = s.now()
	return nil
}

// GoTo jumps directly to a step. Backward jumps are free; a forward jump is
// allowed only when every predecessor of the target has validated at least
// once this session.
func (s *Session) GoTo(target domain.WizardStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.SessionActive {
		return ErrSessionClosed
	}
	if s.submitting {
		return ErrSubmissionInFlight
	}
	ti := target.Index()
	if ti < 0 {
		return ErrStepNotReached
	}
	for _, step := range domain.StepOrder[:ti] {
		if !s.validated[step] {
			return ErrStepNotReached
		}
	}
	s.step = target
	s.updatedAt = s.now()
	return nil
}

// PrepareAttempt atomically validates the payment step, derives a fresh
// breakdown and locks the session for one submission. The returned attempt
// carries the breakdown total of this exact instant and the generation the
// resolution must present to be applied.
func (s *Session) PrepareAttempt() (domain.PaymentAttempt, domain.PriceBreakdown, map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero domain.PaymentAttempt
	if s.status != domain.SessionActive {
		return zero, domain.PriceBreakdown{}, nil, ErrSessionClosed
	}
	if s.submitting {
		return zero, domain.PriceBreakdown{}, nil, ErrSubmissionInFlight
	}
	if s.step != domain.StepPayment {
		return zero, domain.PriceBreakdown{}, nil, ErrNotOnPaymentStep
	}
	if fields := CanAdvance(domain.StepPayment, s.selection, s.now()); len(fields) > 0 {
		return zero, domain.PriceBreakdown{}, fields, nil
	}

	breakdown := pricing.ComputeBreakdown(s.selection, s.catalog)

	s.generation++
	s.submitting = true
	s.paymentError = ""

	attempt := domain.PaymentAttempt{
		SessionID:  s.id,
		Generation: s.generation,
		Method:     s.selection.PaymentMethod,
		Amount:     breakdown.Total,
		Currency:   breakdown.Currency,
		Email:      s.selection.Email,
		CreatedAt:  s.now(),
	}
	if s.selection.PaymentMethod == domain.MethodCard {
		attempt.CardNumber = s.selection.CardNumber
		attempt.CardExpiry = s.selection.CardExpiry
		attempt.CardCVC = s.selection.CardCVC
	}
	return attempt, breakdown, nil, nil
}

// Confirm settles the submission identified by gen and drives the session to
// its confirmed terminal state. A stale generation (the session was
// abandoned while the call was in flight) is refused with ErrStaleResult.
func (s *Session) Confirm(gen uint64) (domain.BookingSelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.SessionActive || gen != s.generation {
		return domain.BookingSelection{}, ErrStaleResult
	}
	s.submitting = false
	s.status = domain.SessionConfirmed
	s.updatedAt = s.now()
	return s.selection.Clone(), nil
}

// FailSubmission records a gateway failure for the submission identified by
// gen. The session stays on the payment step and the selection is left
// untouched so the user can correct the instrument and resubmit.
func (s *Session) FailSubmission(gen uint64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.SessionActive || gen != s.generation {
		return ErrStaleResult
	}
	s.submitting = false
	s.paymentError = reason
	s.updatedAt = s.now()
	return nil
}

// CancelSubmission releases the submission lock without an outcome. Used
// when the attempt is aborted before the gateway is ever called.
func (s *Session) CancelSubmission(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation {
		s.submitting = false
	}
}

// Abandon drives the session to its abandoned terminal state and bumps the
// generation so any in-flight gateway resolution is discarded on arrival.
func (s *Session) Abandon() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == domain.SessionConfirmed {
		return ErrSessionClosed
	}
	s.status = domain.SessionAbandoned
	s.generation++
	s.submitting = false
	s.updatedAt = s.now()
	return nil
}

func (s *Session) toggleExtra(id string) {
	for i, e := range s.selection.ExtraIDs {
		if e == id {
			s.selection.ExtraIDs = append(s.selection.ExtraIDs[:i], s.selection.ExtraIDs[i+1:]...)
			return
		}
	}
	s.selection.ExtraIDs = append(s.selection.ExtraIDs, id)
}

func clampPartySize(n int) int {
	if n < domain.MinPartySize {
		return domain.MinPartySize
	}
	if n > domain.MaxPartySize {
		return domain.MaxPartySize
	}
	return n
}
