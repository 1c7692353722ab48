package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedGateway_Approves(t *testing.T) {
	g := NewSimulatedGateway(0)

	resp, err := g.Submit(context.Background(), ChargeRequest{
		Amount: 120000, Currency: "USD", Method: "card",
		CardNumber: "4111 1111 1111 1111",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.TransactionID, "txn_"))
	assert.False(t, resp.Timestamp.IsZero())
}

func TestSimulatedGateway_DeclinesTestInstruments(t *testing.T) {
	g := NewSimulatedGateway(0)

	resp, err := g.Submit(context.Background(), ChargeRequest{
		Amount: 100, Currency: "USD", Method: "card",
		CardNumber: "4000 0000 0000 0002",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "card declined", resp.Message)
	assert.Empty(t, resp.TransactionID)

	resp, err = g.Submit(context.Background(), ChargeRequest{
		Amount: 100, Currency: "USD", Method: "card",
		CardNumber: "4000 0000 0000 9995",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "insufficient funds", resp.Message)
}

func TestSimulatedGateway_WalletIgnoresCardRules(t *testing.T) {
	g := NewSimulatedGateway(0)

	resp, err := g.Submit(context.Background(), ChargeRequest{
		Amount: 100, Currency: "USD", Method: "wallet", Email: "ada@example.com",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestSimulatedGateway_HonorsCancellation(t *testing.T) {
	g := NewSimulatedGateway(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := g.Submit(ctx, ChargeRequest{Amount: 100, Currency: "USD", Method: "wallet"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
