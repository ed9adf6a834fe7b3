package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareService_CreateShare(t *testing.T) {
	testCases := []struct {
		name    string
		userID  string
		orderID string
		prepare func(s *memStore)
		wantErr error
	}{
		{
			name:    "OK",
			userID:  ownerID,
			orderID: orderID,
		},
		{
			name:    "order not found",
			userID:  ownerID,
			orderID: "missing",
			wantErr: entities.ErrNotFound,
		},
		{
			name:    "not the owner",
			userID:  "user-2",
			orderID: orderID,
			wantErr: entities.ErrForbidden,
		},
		{
			name:    "order already paid",
			userID:  ownerID,
			orderID: orderID,
			prepare: func(s *memStore) {
				o := s.orders[orderID]
				o.Status, o.PaymentStatus = entities.StatusProcessing, entities.PaymentCompleted
				s.orders[orderID] = o
			},
			wantErr: entities.ErrInvalidState,
		},
		{
			name:    "order cancelled",
			userID:  ownerID,
			orderID: orderID,
			prepare: func(s *memStore) {
				o := s.orders[orderID]
				o.Status, o.PaymentStatus = entities.StatusCancelled, entities.PaymentFailed
				s.orders[orderID] = o
			},
			wantErr: entities.ErrInvalidState,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			if tc.prepare != nil {
				tc.prepare(f.store)
			}

			link, err := f.shares.CreateShare(context.Background(), tc.userID, tc.orderID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, f.store.shares)
				return
			}

			require.NoError(t, err)
			assert.Len(t, link.Token, 20)
			assert.Equal(t, origin+"/shared-order/"+link.Token, link.URL)
			assert.NotContains(t, link.URL, orderID)
			assert.Equal(t, startTime.Add(24*time.Hour), link.ExpiresAt)

			share := f.store.share(link.Token)
			assert.Equal(t, orderID, share.OrderID)
			assert.Equal(t, entities.PaymentPending, share.Status)
		})
	}
}

func TestShareService_CreateShare_Reuse(t *testing.T) {
	f := newFixture(t)
	first := f.share(t)

	f.clock.Set(startTime.Add(time.Hour))
	second, err := f.shares.CreateShare(context.Background(), ownerID, orderID)
	require.NoError(t, err)
	assert.Equal(t, first, second, "a live share is returned as is, expiry is never extended")

	f.clock.Set(first.ExpiresAt.Add(time.Second))
	_, err = f.shares.CreateShare(context.Background(), ownerID, orderID)
	assert.ErrorIs(t, err, entities.ErrShareExpired)
}

func TestShareService_GetSharedOrder(t *testing.T) {
	f := newFixture(t)
	link := f.share(t)

	view, err := f.shares.GetSharedOrder(context.Background(), link.Token)
	require.NoError(t, err)
	assert.Equal(t, orderNumber, view.OrderNumber)
	assert.Equal(t, "100.00", view.Total.StringFixed(2))
	assert.Len(t, view.Items, 2)
	assert.Equal(t, entities.ShareActive, view.State)

	t.Run("items are served from cache", func(t *testing.T) {
		f.store.mu.Lock()
		delete(f.store.items, orderID)
		f.store.mu.Unlock()

		view, err := f.shares.GetSharedOrder(context.Background(), link.Token)
		require.NoError(t, err)
		assert.Len(t, view.Items, 2)
	})

	t.Run("live at the exact expiry instant", func(t *testing.T) {
		f.clock.Set(link.ExpiresAt)
		view, err := f.shares.GetSharedOrder(context.Background(), link.Token)
		require.NoError(t, err)
		assert.Equal(t, entities.ShareActive, view.State)
	})

	t.Run("expired share stays viewable", func(t *testing.T) {
		f.clock.Set(link.ExpiresAt.Add(time.Nanosecond))
		view, err := f.shares.GetSharedOrder(context.Background(), link.Token)
		require.NoError(t, err)
		assert.Equal(t, entities.ShareExpired, view.State)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := f.shares.GetSharedOrder(context.Background(), "nope")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestNewToken(t *testing.T) {
	seen := make(map[string]struct{})
	for range 200 {
		token, err := service.NewToken(20)
		require.NoError(t, err)
		require.Len(t, token, 20)
		assert.Empty(t, strings.Trim(token, "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"))
		seen[token] = struct{}{}
	}
	assert.Len(t, seen, 200)
}
