package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type SharedOrder struct {
	ID        string
	Token     string
	OrderID   string
	ExpiresAt time.Time
	Status    PaymentStatus
	CreatedAt time.Time
}

// Expired uses a strict comparison: a share is still live at exactly ExpiresAt.
func (s SharedOrder) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

type ShareState string

const (
	ShareActive  ShareState = "active"
	ShareExpired ShareState = "expired"
	SharePaid    ShareState = "paid"
	ShareClosed  ShareState = "closed"
)

// State derives what the holder of the token may still do with the order.
func (s SharedOrder) State(order Order, now time.Time) ShareState {
	switch {
	case order.Paid():
		return SharePaid
	case !order.Payable():
		return ShareClosed
	case s.Expired(now):
		return ShareExpired
	default:
		return ShareActive
	}
}

type ShareLink struct {
	Token     string
	URL       string
	ExpiresAt time.Time
}

type SharedOrderView struct {
	Token         string
	OrderNumber   string
	Items         []OrderItem
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Shipping      decimal.Decimal
	Total         decimal.Decimal
	Status        OrderStatus
	PaymentStatus PaymentStatus
	ExpiresAt     time.Time
	State         ShareState
}
