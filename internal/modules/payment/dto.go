package payment

import "time"

// ChargeRequest is the wire contract the gateway is held to. Card fields are
// present only when the method is card.
type ChargeRequest struct {
	Amount     int64  `json:"amount"` // minor units
	Currency   string `json:"currency"`
	Method     string `json:"method"`
	Email      string `json:"email"`
	CardNumber string `json:"card_number,omitempty"`
	CardExpiry string `json:"card_expiry,omitempty"`
	CardCvc    string `json:"card_cvc,omitempty"`
}

// ChargeResponse is the gateway's authoritative settlement outcome for one
// attempt. Success false carries the decline reason in Message.
type ChargeResponse struct {
	Success       bool      `json:"success"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Message       string    `json:"message"`
	Timestamp     time.Time `json:"timestamp"`
}
