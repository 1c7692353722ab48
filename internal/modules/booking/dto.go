package booking

import "atvtours/internal/domain"

// SelectionPatch is a partial update merged into the current selection. Nil
// fields are left untouched; ToggleExtras flips set membership per id.
type SelectionPatch struct {
	Date            *string  `json:"date"`
	TimeSlot        *string  `json:"time_slot"`
	PartySize       *int     `json:"party_size"`
	TourID          *string  `json:"tour_id"`
	VehicleID       *string  `json:"vehicle_id"`
	ToggleExtras    []string `json:"toggle_extras"`
	FirstName       *string  `json:"first_name"`
	LastName        *string  `json:"last_name"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	SpecialRequests *string  `json:"special_requests"`
	TermsAccepted   *bool    `json:"terms_accepted"`
	PaymentMethod   *string  `json:"payment_method"`
	CardNumber      *string  `json:"card_number"`
	CardExpiry      *string  `json:"card_expiry"`
	CardCVC         *string  `json:"card_cvc"`
}

type SessionView struct {
	ID           string                  `json:"id"`
	Status       domain.SessionStatus    `json:"status"`
	Step         domain.WizardStep       `json:"step"`
	Selection    domain.BookingSelection `json:"selection"`
	PaymentError string                  `json:"payment_error,omitempty"`
}

type AdvanceResponse struct {
	Moved bool              `json:"moved"`
	Step  domain.WizardStep `json:"step"`
}
