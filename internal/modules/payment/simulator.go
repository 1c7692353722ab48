package payment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card numbers the simulator declines, stripe-style test instruments.
const (
	declineSuffix      = "0002"
	insufficientSuffix = "9995"
)

// SimulatedGateway is the local/dev stand-in for the remote processor. It
// resolves after a configurable latency, honors context cancellation and can
// decline deterministically, so the failure branch of checkout is actually
// exercisable in tests.
type SimulatedGateway struct {
	latency time.Duration
	now     func() time.Time
}

func NewSimulatedGateway(latency time.Duration) *SimulatedGateway {
	return &SimulatedGateway{latency: latency, now: time.Now}
}

func (g *SimulatedGateway) Submit(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	ts := g.now().UTC()
	if req.Method == "card" {
		number := strings.ReplaceAll(req.CardNumber, " ", "")
		switch {
		case strings.HasSuffix(number, declineSuffix):
			return &ChargeResponse{Success: false, Message: "card declined", Timestamp: ts}, nil
		case strings.HasSuffix(number, insufficientSuffix):
			return &ChargeResponse{Success: false, Message: "insufficient funds", Timestamp: ts}, nil
		}
	}

	return &ChargeResponse{
		Success:       true,
		TransactionID: "txn_" + uuid.NewString(),
		Message:       "approved",
		Timestamp:     ts,
	}, nil
}
