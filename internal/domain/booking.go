package domain

import "time"

type WizardStep string

const (
	StepDetails WizardStep = "details"
	StepContact WizardStep = "contact"
	StepExtras  WizardStep = "extras"
	StepPayment WizardStep = "payment"
)

// StepOrder is the fixed linear order of the checkout wizard.
var StepOrder = []WizardStep{StepDetails, StepContact, StepExtras, StepPayment}

// Index returns the position of the step in StepOrder, or -1 for an unknown
// value.
func (s WizardStep) Index() int {
	for i, step := range StepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Next returns the following step. ok is false on the final step.
func (s WizardStep) Next() (WizardStep, bool) {
	i := s.Index()
	if i < 0 || i >= len(StepOrder)-1 {
		return s, false
	}
	return StepOrder[i+1], true
}

// Prev returns the preceding step. ok is false on the initial step.
func (s WizardStep) Prev() (WizardStep, bool) {
	i := s.Index()
	if i <= 0 {
		return s, false
	}
	return StepOrder[i-1], true
}

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionConfirmed SessionStatus = "confirmed"
	SessionAbandoned SessionStatus = "abandoned"
)

type PaymentMethod string

const (
	MethodCard   PaymentMethod = "card"
	MethodWallet PaymentMethod = "wallet"
)

const (
	MinPartySize = 1
	MaxPartySize = 10
)

// BookingSelection is the mutable draft a checkout session edits. Party size
// stays within [MinPartySize, MaxPartySize] and ExtraIDs only ever holds ids
// present in the catalog; both are enforced on mutation.
type BookingSelection struct {
	Date      string `json:"date,omitempty"`      // YYYY-MM-DD, empty until set
	TimeSlot  string `json:"time_slot,omitempty"` // HH:MM, empty until set
	PartySize int    `json:"party_size"`
	TourID    string `json:"tour_id,omitempty"`
	VehicleID string `json:"vehicle_id"`
	// ExtraIDs keeps selection order; membership is toggled, never counted.
	ExtraIDs []string `json:"extra_ids"`

	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`

	TermsAccepted bool          `json:"terms_accepted"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	CardNumber    string        `json:"card_number,omitempty"`
	CardExpiry    string        `json:"card_expiry,omitempty"` // MM/YY
	CardCVC       string        `json:"card_cvc,omitempty"`
}

// HasExtra reports whether the extra id is currently selected.
func (s BookingSelection) HasExtra(id string) bool {
	for _, e := range s.ExtraIDs {
		if e == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so a snapshot cannot alias the live draft.
func (s BookingSelection) Clone() BookingSelection {
	out := s
	out.ExtraIDs = append([]string(nil), s.ExtraIDs...)
	return out
}

type PriceLineKind string

const (
	LineTour             PriceLineKind = "tour"
	LineVehicleSurcharge PriceLineKind = "vehicle_surcharge"
	LineExtra            PriceLineKind = "extra"
)

type PriceLine struct {
	Kind      PriceLineKind `json:"kind"`
	OptionID  string        `json:"option_id,omitempty"`
	Label     string        `json:"label"`
	UnitPrice Money         `json:"unit_price"`
	Quantity  int           `json:"quantity"`
	Amount    Money         `json:"amount"`
}

// PriceBreakdown is derived on demand from a selection and the catalog; it is
// never stored and never mutated. Lines appear in a stable order (tour,
// vehicle surcharge, extras in selection order) so breakdowns built from
// equal inputs compare equal.
type PriceBreakdown struct {
	Currency string      `json:"currency"`
	Lines    []PriceLine `json:"lines"`
	Total    Money       `json:"total"`
}

type PaymentAttempt struct {
	SessionID  string        `json:"session_id"`
	Generation uint64        `json:"generation"`
	Method     PaymentMethod `json:"method"`
	Amount     Money         `json:"amount"`
	Currency   string        `json:"currency"`
	Email      string        `json:"email"`
	CardNumber string        `json:"card_number,omitempty"`
	CardExpiry string        `json:"card_expiry,omitempty"`
	CardCVC    string        `json:"card_cvc,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// FinalizedBooking is the immutable snapshot produced once a payment attempt
// settles. It is handed to the receipt surface and the history store and is
// never mutated afterwards.
type FinalizedBooking struct {
	ID            int64            `json:"id"`
	SessionID     string           `json:"session_id"`
	TransactionID string           `json:"transaction_id"`
	Selection     BookingSelection `json:"selection"`
	Breakdown     PriceBreakdown   `json:"breakdown"`
	Amount        Money            `json:"amount"`
	Currency      string           `json:"currency"`
	SettledAt     time.Time        `json:"settled_at"`
	CreatedAt     time.Time        `json:"created_at"`
}
