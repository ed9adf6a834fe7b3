package entities_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	testCases := []struct {
		from    entities.OrderStatus
		to      entities.OrderStatus
		wantErr bool
	}{
		{entities.StatusPending, entities.StatusProcessing, false},
		{entities.StatusProcessing, entities.StatusShipped, false},
		{entities.StatusShipped, entities.StatusDelivered, false},
		{entities.StatusPending, entities.StatusCancelled, false},
		{entities.StatusShipped, entities.StatusCancelled, false},
		{entities.StatusDelivered, entities.StatusCancelled, true},
		{entities.StatusDelivered, entities.StatusPending, true},
		{entities.StatusCancelled, entities.StatusPending, true},
		{entities.StatusProcessing, entities.StatusPending, true},
		{entities.StatusPending, entities.StatusShipped, true},
		{entities.StatusPending, entities.OrderStatus("lost"), true},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			err := entities.ValidateTransition(tc.from, tc.to)
			if tc.wantErr {
				assert.ErrorIs(t, err, entities.ErrInvalidTransition)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGatewayRef(t *testing.T) {
	ref := entities.SharedRef("abc123")
	assert.Equal(t, "SHR-abc123", ref.String())

	parsed, err := entities.ParseGatewayRef("SHR-abc123")
	require.NoError(t, err)
	assert.Equal(t, ref, parsed)

	parsed, err = entities.ParseGatewayRef("ORD-1001")
	require.NoError(t, err)
	assert.Equal(t, entities.DirectRef("1001"), parsed)

	for _, bad := range []string{"", "SHR-", "abc123", "XYZ-1"} {
		_, err := entities.ParseGatewayRef(bad)
		assert.ErrorIs(t, err, entities.ErrValidation, bad)
	}
}

func TestSharedOrderState(t *testing.T) {
	now := time.Now()
	live := entities.SharedOrder{ExpiresAt: now.Add(time.Hour)}
	expired := entities.SharedOrder{ExpiresAt: now.Add(-time.Second)}

	pending := entities.Order{Status: entities.StatusPending, PaymentStatus: entities.PaymentPending}
	paid := entities.Order{Status: entities.StatusProcessing, PaymentStatus: entities.PaymentCompleted}
	failed := entities.Order{Status: entities.StatusCancelled, PaymentStatus: entities.PaymentFailed}

	assert.Equal(t, entities.ShareActive, live.State(pending, now))
	assert.Equal(t, entities.ShareExpired, expired.State(pending, now))
	assert.Equal(t, entities.SharePaid, expired.State(paid, now))
	assert.Equal(t, entities.ShareClosed, live.State(failed, now))
	assert.False(t, entities.SharedOrder{ExpiresAt: now}.Expired(now))

	advanced := entities.Order{Status: entities.StatusProcessing, PaymentStatus: entities.PaymentPending}
	assert.Equal(t, entities.ShareClosed, live.State(advanced, now))
}

func TestOrderPayable(t *testing.T) {
	testCases := []struct {
		status  entities.OrderStatus
		payment entities.PaymentStatus
		want    bool
	}{
		{entities.StatusPending, entities.PaymentPending, true},
		{entities.StatusProcessing, entities.PaymentPending, false},
		{entities.StatusShipped, entities.PaymentPending, false},
		{entities.StatusCancelled, entities.PaymentPending, false},
		{entities.StatusPending, entities.PaymentFailed, false},
		{entities.StatusProcessing, entities.PaymentCompleted, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status)+"/"+string(tc.payment), func(t *testing.T) {
			o := entities.Order{Status: tc.status, PaymentStatus: tc.payment}
			assert.Equal(t, tc.want, o.Payable())
		})
	}
}

func TestErrors(t *testing.T) {
	var err error = &entities.InsufficientInventoryError{ProductID: "p1", Requested: 3, Available: 1}
	assert.True(t, errors.Is(err, entities.ErrInsufficientInventory))
	assert.Contains(t, err.Error(), "available 1")

	assert.ErrorIs(t, entities.ErrShareExpired, entities.ErrInvalidState)
	assert.ErrorIs(t, entities.ErrMethodUnavailable, entities.ErrValidation)
	assert.ErrorIs(t, &entities.GatewayError{Message: "timeout"}, entities.ErrGateway)
}

func TestItemsCodec(t *testing.T) {
	items := []entities.OrderItem{
		{ID: "i1", ProductID: "p1", ProductName: "Tea", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50")},
	}
	data, err := entities.MarshalItems(items)
	require.NoError(t, err)

	got, err := entities.UnmarshalItems(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].UnitPrice.Equal(items[0].UnitPrice))
	assert.Equal(t, "9", got[0].LineTotal().String())
}
