package checkout

import (
	"context"

	"atvtours/internal/domain"
	"atvtours/internal/modules/booking"
	"atvtours/internal/modules/payment"
)

// GatewayClient is the boundary contract the orchestrator holds the payment
// processor to. Implementations never retry internally.
type GatewayClient interface {
	Submit(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResponse, error)
}

type historyStore interface {
	Create(ctx context.Context, fb *domain.FinalizedBooking) error
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.FinalizedBooking, error)
}

type sessionStore interface {
	Get(id string) (*booking.Session, error)
}
