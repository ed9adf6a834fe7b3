package repo

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/shopspring/decimal"
)

var orderColumns = []string{
	"id", "order_number", "user_id", "status", "payment_status", "payment_method",
	"subtotal", "tax", "shipping", "total", "tracking_number", "gateway_reference",
	"shipping_address_id", "created_at", "updated_at",
}

type Order struct {
	ID                string          `db:"id"`
	OrderNumber       string          `db:"order_number"`
	UserID            string          `db:"user_id"`
	Status            string          `db:"status"`
	PaymentStatus     string          `db:"payment_status"`
	PaymentMethod     sql.NullString  `db:"payment_method"`
	Subtotal          decimal.Decimal `db:"subtotal"`
	Tax               decimal.Decimal `db:"tax"`
	Shipping          decimal.Decimal `db:"shipping"`
	Total             decimal.Decimal `db:"total"`
	TrackingNumber    sql.NullString  `db:"tracking_number"`
	GatewayReference  sql.NullString  `db:"gateway_reference"`
	ShippingAddressID sql.NullString  `db:"shipping_address_id"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

func (o Order) ToEntity() entities.Order {
	return entities.Order{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		UserID:            o.UserID,
		Status:            entities.OrderStatus(o.Status),
		PaymentStatus:     entities.PaymentStatus(o.PaymentStatus),
		PaymentMethod:     o.PaymentMethod.String,
		Subtotal:          o.Subtotal,
		Tax:               o.Tax,
		Shipping:          o.Shipping,
		Total:             o.Total,
		TrackingNumber:    o.TrackingNumber.String,
		GatewayReference:  o.GatewayReference.String,
		ShippingAddressID: o.ShippingAddressID.String,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

var itemColumns = []string{"id", "product_id", "product_name", "quantity", "unit_price"}

type OrderItem struct {
	ID          string          `db:"id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
}

func (i OrderItem) ToEntity() entities.OrderItem {
	return entities.OrderItem{
		ID:          i.ID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
	}
}

type Stock struct {
	ProductID string `db:"id"`
	Name      string `db:"name"`
	Inventory int    `db:"inventory"`
}

var shareColumns = []string{"id", "token", "order_id", "expires_at", "status", "created_at"}

type SharedOrder struct {
	ID        string    `db:"id"`
	Token     string    `db:"token"`
	OrderID   string    `db:"order_id"`
	ExpiresAt time.Time `db:"expires_at"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

func (s SharedOrder) ToEntity() entities.SharedOrder {
	return entities.SharedOrder{
		ID:        s.ID,
		Token:     s.Token,
		OrderID:   s.OrderID,
		ExpiresAt: s.ExpiresAt,
		Status:    entities.PaymentStatus(s.Status),
		CreatedAt: s.CreatedAt,
	}
}

var gatewayColumns = []string{
	"id", "name", "kind", "api_key", "merchant_id", "api_url", "webhook_url",
	"active", "test_mode", "settings", "code",
}

type GatewayConfig struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Kind       string `db:"kind"`
	APIKey     string `db:"api_key"`
	MerchantID string `db:"merchant_id"`
	APIURL     string `db:"api_url"`
	WebhookURL string `db:"webhook_url"`
	Active     bool   `db:"active"`
	TestMode   bool   `db:"test_mode"`
	Settings   []byte `db:"settings"`
	Code       string `db:"code"`
}

func (g GatewayConfig) ToEntity() entities.GatewayConfig {
	return entities.GatewayConfig{
		ID:         g.ID,
		Name:       g.Name,
		Kind:       entities.ProviderKind(g.Kind),
		APIKey:     g.APIKey,
		MerchantID: g.MerchantID,
		APIURL:     g.APIURL,
		WebhookURL: g.WebhookURL,
		Active:     g.Active,
		TestMode:   g.TestMode,
		Settings:   json.RawMessage(g.Settings),
		Code:       g.Code,
	}
}

type PaymentMethod struct {
	Method      string `db:"method"`
	DisplayName string `db:"display_name"`
	IconURL     string `db:"icon_url"`
	GatewayID   string `db:"gateway_id"`
	TestMode    bool   `db:"test_mode"`
}

func (m PaymentMethod) ToEntity() entities.PaymentMethod {
	return entities.PaymentMethod{
		Method:      m.Method,
		DisplayName: m.DisplayName,
		IconURL:     m.IconURL,
		GatewayID:   m.GatewayID,
		TestMode:    m.TestMode,
	}
}
