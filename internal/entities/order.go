package entities

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID                string
	OrderNumber       string
	UserID            string
	Status            OrderStatus
	PaymentStatus     PaymentStatus
	PaymentMethod     string
	Subtotal          decimal.Decimal
	Tax               decimal.Decimal
	Shipping          decimal.Decimal
	Total             decimal.Decimal
	TrackingNumber    string
	GatewayReference  string
	ShippingAddressID string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items []OrderItem
}

// OrderItem is a line snapshot: UnitPrice is the price at purchase time, not the live catalog price.
type OrderItem struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Paid reports whether the order payment was settled.
func (o Order) Paid() bool {
	return o.PaymentStatus == PaymentCompleted
}

// Payable reports whether a payment may still be started for the order.
// Only a pending order can be paid: settlement moves it to processing.
func (o Order) Payable() bool {
	return o.PaymentStatus == PaymentPending && o.Status == StatusPending
}

func MarshalItems(items []OrderItem) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func UnmarshalItems(data []byte) ([]OrderItem, error) {
	var items []OrderItem
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func init() {
	gob.Register(OrderItem{})
}

// Stock is the catalog inventory of one product.
type Stock struct {
	ProductID string
	Name      string
	Available int
}
