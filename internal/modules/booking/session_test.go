package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atvtours/internal/domain"
)

func testCatalog() *domain.Catalog {
	tours := []domain.TourOption{
		{ID: "desert-discovery", Name: "Desert Discovery", DurationHours: 3, PricePerPerson: 60000, Difficulty: domain.DifficultyEasy},
	}
	vehicles := []domain.VehicleOption{
		{ID: "standard-atv", Name: "Standard ATV", Surcharge: 0},
		{ID: "sport-atv", Name: "Sport ATV", Surcharge: 5000},
	}
	extras := []domain.ExtraOption{
		{ID: "photo-package", Name: "Photo Package", Price: 15000},
		{ID: "lunch", Name: "Lunch & Refreshments", Price: 10000},
	}
	return domain.NewCatalog(tours, vehicles, extras, "standard-atv")
}

func ptr[T any](v T) *T { return &v }

func advanceOK(t *testing.T, s *Session) {
	t.Helper()
	fields, err := s.Advance()
	require.NoError(t, err)
	require.Empty(t, fields)
}

// paymentReadySession drives a fresh session through the wizard onto a valid
// payment step.
func paymentReadySession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(testCatalog())

	require.NoError(t, s.Mutate(SelectionPatch{
		Date:      ptr("2030-05-10"),
		TimeSlot:  ptr("09:00"),
		TourID:    ptr("desert-discovery"),
		PartySize: ptr(2),
	}))
	advanceOK(t, s)

	require.NoError(t, s.Mutate(SelectionPatch{
		FirstName: ptr("Ada"),
		LastName:  ptr("Ouma"),
		Email:     ptr("ada@example.com"),
		Phone:     ptr("+14155550123"),
	}))
	advanceOK(t, s)
	advanceOK(t, s) // extras

	require.NoError(t, s.Mutate(SelectionPatch{
		TermsAccepted: ptr(true),
		PaymentMethod: ptr("card"),
		CardNumber:    ptr("4111 1111 1111 1111"),
		CardExpiry:    ptr("12/99"),
		CardCVC:       ptr("123"),
	}))
	require.Equal(t, domain.StepPayment, s.Step())
	return s
}

func TestNewSession_Defaults(t *testing.T) {
	s := NewSession(testCatalog())

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, domain.SessionActive, s.Status())
	assert.Equal(t, domain.StepDetails, s.Step())

	sel := s.Selection()
	assert.Equal(t, domain.MinPartySize, sel.PartySize)
	assert.Equal(t, "standard-atv", sel.VehicleID)
	assert.Equal(t, domain.MethodCard, sel.PaymentMethod)
}

func TestMutate_ClampsPartySize(t *testing.T) {
	s := NewSession(testCatalog())

	require.NoError(t, s.Mutate(SelectionPatch{PartySize: ptr(0)}))
	assert.Equal(t, domain.MinPartySize, s.Selection().PartySize)

	require.NoError(t, s.Mutate(SelectionPatch{PartySize: ptr(50)}))
	assert.Equal(t, domain.MaxPartySize, s.Selection().PartySize)
}

func TestMutate_ToggleExtraIsIdempotent(t *testing.T) {
	s := NewSession(testCatalog())

	require.NoError(t, s.Mutate(SelectionPatch{ToggleExtras: []string{"photo-package"}}))
	assert.Equal(t, []string{"photo-package"}, s.Selection().ExtraIDs)

	// Toggling again removes it, not counts it.
	require.NoError(t, s.Mutate(SelectionPatch{ToggleExtras: []string{"photo-package"}}))
	assert.Empty(t, s.Selection().ExtraIDs)

	require.NoError(t, s.Mutate(SelectionPatch{ToggleExtras: []string{"lunch", "photo-package"}}))
	assert.Equal(t, []string{"lunch", "photo-package"}, s.Selection().ExtraIDs)
}

func TestMutate_RejectsUnknownCatalogIDs(t *testing.T) {
	s := NewSession(testCatalog())

	assert.ErrorIs(t, s.Mutate(SelectionPatch{TourID: ptr("volcano-run")}), ErrUnknownOption)
	assert.ErrorIs(t, s.Mutate(SelectionPatch{VehicleID: ptr("hoverboard")}), ErrUnknownOption)
	assert.ErrorIs(t, s.Mutate(SelectionPatch{ToggleExtras: []string{"jetpack"}}), ErrUnknownOption)
	assert.ErrorIs(t, s.Mutate(SelectionPatch{PaymentMethod: ptr("barter")}), ErrUnknownMethod)

	// A rejected patch must not partially apply.
	assert.Empty(t, s.Selection().TourID)
	assert.Empty(t, s.Selection().ExtraIDs)
}

func TestAdvance_BlockedByValidationLeavesStateUntouched(t *testing.T) {
	s := NewSession(testCatalog())
	before := s.Selection()

	fields, err := s.Advance()
	require.NoError(t, err)
	assert.NotEmpty(t, fields)
	assert.Equal(t, domain.StepDetails, s.Step())
	assert.Equal(t, before, s.Selection())
}

func TestAdvance_MovesThroughStepsInOrder(t *testing.T) {
	s := paymentReadySession(t)
	assert.Equal(t, domain.StepPayment, s.Step())

	// The wizard ends at payment; settlement, not Advance, leaves it.
	_, err := s.Advance()
	assert.ErrorIs(t, err, ErrFinalStep)
}

func TestRetreat_NeverValidates(t *testing.T) {
	s := NewSession(testCatalog())
	require.NoError(t, s.Mutate(SelectionPatch{
		Date:     ptr("2030-05-10"),
		TimeSlot: ptr("09:00"),
		TourID:   ptr("desert-discovery"),
	}))
	advanceOK(t, s)

	// Invalidate the details step, then go back: retreat must not re-block.
	require.NoError(t, s.Mutate(SelectionPatch{Date: ptr("")}))
	require.NoError(t, s.Retreat())
	assert.Equal(t, domain.StepDetails, s.Step())

	assert.ErrorIs(t, s.Retreat(), ErrInitialStep)
}

func TestGoTo_RequiresValidatedPredecessors(t *testing.T) {
	s := NewSession(testCatalog())

	assert.ErrorIs(t, s.GoTo(domain.StepPayment), ErrStepNotReached)
	assert.ErrorIs(t, s.GoTo(domain.StepContact), ErrStepNotReached)

	require.NoError(t, s.Mutate(SelectionPatch{
		Date:     ptr("2030-05-10"),
		TimeSlot: ptr("09:00"),
		TourID:   ptr("desert-discovery"),
	}))
	advanceOK(t, s)

	// Details validated once: contact is reachable, payment still is not.
	require.NoError(t, s.Retreat())
	assert.NoError(t, s.GoTo(domain.StepContact))
	assert.ErrorIs(t, s.GoTo(domain.StepPayment), ErrStepNotReached)
}

func TestPrepareAttempt_RequiresPaymentStep(t *testing.T) {
	s := NewSession(testCatalog())
	_, _, _, err := s.PrepareAttempt()
	assert.ErrorIs(t, err, ErrNotOnPaymentStep)
}

func TestPrepareAttempt_ReturnsFieldsOnInvalidPaymentStep(t *testing.T) {
	s := paymentReadySession(t)
	require.NoError(t, s.Mutate(SelectionPatch{TermsAccepted: ptr(false)}))

	_, _, fields, err := s.PrepareAttempt()
	require.NoError(t, err)
	assert.Contains(t, fields, "terms_accepted")
	// No submission lock was taken.
	assert.NoError(t, s.Mutate(SelectionPatch{TermsAccepted: ptr(true)}))
}

func TestPrepareAttempt_LocksSessionForSubmission(t *testing.T) {
	s := paymentReadySession(t)

	attempt, breakdown, fields, err := s.PrepareAttempt()
	require.NoError(t, err)
	require.Empty(t, fields)
	assert.Equal(t, breakdown.Total, attempt.Amount)
	assert.Equal(t, domain.Money(120000), attempt.Amount)
	assert.Equal(t, s.ID(), attempt.SessionID)

	assert.ErrorIs(t, s.Mutate(SelectionPatch{PartySize: ptr(3)}), ErrSubmissionInFlight)
	_, err = s.Advance()
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.ErrorIs(t, s.Retreat(), ErrSubmissionInFlight)
	_, _, _, err = s.PrepareAttempt()
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
}

func TestPrepareAttempt_AmountTracksLateExtraToggles(t *testing.T) {
	s := paymentReadySession(t)

	// Edits made after reaching the payment step must be in the submitted
	// amount.
	require.NoError(t, s.Mutate(SelectionPatch{ToggleExtras: []string{"photo-package", "lunch"}}))

	attempt, _, fields, err := s.PrepareAttempt()
	require.NoError(t, err)
	require.Empty(t, fields)
	assert.Equal(t, domain.Money(145000), attempt.Amount)
}

func TestConfirm_SettlesSession(t *testing.T) {
	s := paymentReadySession(t)
	attempt, _, _, err := s.PrepareAttempt()
	require.NoError(t, err)

	sel, err := s.Confirm(attempt.Generation)
	require.NoError(t, err)
	assert.Equal(t, "desert-discovery", sel.TourID)
	assert.Equal(t, domain.SessionConfirmed, s.Status())
}

func TestConfirm_StaleAfterAbandon(t *testing.T) {
	s := paymentReadySession(t)
	attempt, _, _, err := s.PrepareAttempt()
	require.NoError(t, err)

	require.NoError(t, s.Abandon())

	_, err = s.Confirm(attempt.Generation)
	assert.ErrorIs(t, err, ErrStaleResult)
	assert.Equal(t, domain.SessionAbandoned, s.Status())
}

func TestFailSubmission_PreservesSelectionAndStep(t *testing.T) {
	s := paymentReadySession(t)
	before := s.Selection()

	attempt, _, _, err := s.PrepareAttempt()
	require.NoError(t, err)
	require.NoError(t, s.FailSubmission(attempt.Generation, "card declined"))

	assert.Equal(t, domain.StepPayment, s.Step())
	assert.Equal(t, domain.SessionActive, s.Status())
	assert.Equal(t, before, s.Selection())
	assert.Equal(t, "card declined", s.View().PaymentError)

	// The user can correct the instrument and submit again.
	require.NoError(t, s.Mutate(SelectionPatch{CardNumber: ptr("5555 5555 5555 4444")}))
	second, _, fields, err := s.PrepareAttempt()
	require.NoError(t, err)
	require.Empty(t, fields)
	assert.Greater(t, second.Generation, attempt.Generation)
	assert.Empty(t, s.View().PaymentError)
}

func TestCancelSubmission_ReleasesLock(t *testing.T) {
	s := paymentReadySession(t)
	attempt, _, _, err := s.PrepareAttempt()
	require.NoError(t, err)

	s.CancelSubmission(attempt.Generation)
	assert.NoError(t, s.Mutate(SelectionPatch{PartySize: ptr(3)}))
}

func TestWithClock_DrivesExpiryValidation(t *testing.T) {
	s := paymentReadySession(t)
	require.NoError(t, s.Mutate(SelectionPatch{CardExpiry: ptr("01/25")}))

	s.WithClock(func() time.Time {
		return time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	})
	_, _, fields, err := s.PrepareAttempt()
	require.NoError(t, err)
	assert.Empty(t, fields)

	// A month later the same card is expired.
	s2 := paymentReadySession(t)
	require.NoError(t, s2.Mutate(SelectionPatch{CardExpiry: ptr("01/25")}))
	s2.WithClock(func() time.Time {
		return time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	})
	_, _, fields, err = s2.PrepareAttempt()
	require.NoError(t, err)
	assert.Contains(t, fields, "card_expiry")
}
