package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"

	"github.com/shopspring/decimal"
)

// Order снимок заказа, который публикует checkout
type Order struct {
	ID                string          `json:"id" validate:"required,uuid"`
	OrderNumber       string          `json:"order_number" validate:"required,max=64"`
	UserID            string          `json:"user_id" validate:"required"`
	Status            string          `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	PaymentStatus     string          `json:"payment_status" validate:"required,oneof=pending processing completed failed refunded"`
	PaymentMethod     string          `json:"payment_method,omitempty"`
	Subtotal          decimal.Decimal `json:"subtotal" swaggertype:"string"`
	Tax               decimal.Decimal `json:"tax" swaggertype:"string"`
	Shipping          decimal.Decimal `json:"shipping" swaggertype:"string"`
	Total             decimal.Decimal `json:"total" swaggertype:"string"`
	ShippingAddressID string          `json:"shipping_address_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at" validate:"required"`
	Items             []OrderItem     `json:"items" validate:"required,min=1,dive"`
}

// OrderItem позиция заказа с ценой на момент покупки
type OrderItem struct {
	ID          string          `json:"id" validate:"required"`
	ProductID   string          `json:"product_id" validate:"required"`
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity" validate:"gte=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"string"`
}

var errAmounts = errors.New("inconsistent order amounts")

// checkAmounts validates what the struct tags can't express: money is non-negative and adds up.
func (o Order) checkAmounts() error {
	for _, d := range []decimal.Decimal{o.Subtotal, o.Tax, o.Shipping} {
		if d.IsNegative() {
			return fmt.Errorf("%w: negative amount %s", errAmounts, d)
		}
	}

	subtotal := decimal.Zero
	for _, it := range o.Items {
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: negative price of %s", errAmounts, it.ProductID)
		}
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	if !subtotal.Equal(o.Subtotal) {
		return fmt.Errorf("%w: items sum to %s, subtotal is %s", errAmounts, subtotal, o.Subtotal)
	}
	if total := o.Subtotal.Add(o.Tax).Add(o.Shipping); !total.Equal(o.Total) {
		return fmt.Errorf("%w: expected total %s, got %s", errAmounts, total, o.Total)
	}
	return nil
}

func OrderJSONToEntity(o Order) entities.Order {
	items := make([]entities.OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = entities.OrderItem{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	return entities.Order{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		UserID:            o.UserID,
		Status:            entities.OrderStatus(o.Status),
		PaymentStatus:     entities.PaymentStatus(o.PaymentStatus),
		PaymentMethod:     o.PaymentMethod,
		Subtotal:          o.Subtotal,
		Tax:               o.Tax,
		Shipping:          o.Shipping,
		Total:             o.Total,
		ShippingAddressID: o.ShippingAddressID,
		CreatedAt:         o.CreatedAt,
		Items:             items,
	}
}

// Item позиция заказа в ответах API
type Item struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price" example:"25.00"`
	LineTotal   string `json:"line_total" example:"50.00"`
}

func itemsToJSON(items []entities.OrderItem) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			LineTotal:   it.LineTotal().StringFixed(2),
		}
	}
	return out
}

// ShareResponse ссылка для оплаты заказа другим человеком
type ShareResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func ShareLinkToJSON(l entities.ShareLink) ShareResponse {
	return ShareResponse{Token: l.Token, URL: l.URL, ExpiresAt: l.ExpiresAt}
}

// SharedOrderResponse заказ, открытый по ссылке, только для чтения
type SharedOrderResponse struct {
	Token         string    `json:"token"`
	OrderNumber   string    `json:"order_number"`
	Items         []Item    `json:"items"`
	Subtotal      string    `json:"subtotal" example:"100.00"`
	Tax           string    `json:"tax" example:"0.00"`
	Shipping      string    `json:"shipping" example:"0.00"`
	Total         string    `json:"total" example:"100.00"`
	Status        string    `json:"status" example:"pending"`
	PaymentStatus string    `json:"payment_status" example:"pending"`
	ExpiresAt     time.Time `json:"expires_at"`
	State         string    `json:"state" enums:"active,expired,paid,closed"`
}

func SharedOrderToJSON(v entities.SharedOrderView) SharedOrderResponse {
	return SharedOrderResponse{
		Token:         v.Token,
		OrderNumber:   v.OrderNumber,
		Items:         itemsToJSON(v.Items),
		Subtotal:      v.Subtotal.StringFixed(2),
		Tax:           v.Tax.StringFixed(2),
		Shipping:      v.Shipping.StringFixed(2),
		Total:         v.Total.StringFixed(2),
		Status:        string(v.Status),
		PaymentStatus: string(v.PaymentStatus),
		ExpiresAt:     v.ExpiresAt,
		State:         string(v.State),
	}
}

// PaymentMethod способ оплаты, доступный на странице заказа
type PaymentMethod struct {
	Method      string `json:"method"`
	DisplayName string `json:"display_name"`
	IconURL     string `json:"icon_url,omitempty"`
	TestMode    bool   `json:"test_mode"`
}

func PaymentMethodsToJSON(methods []entities.PaymentMethod) []PaymentMethod {
	out := make([]PaymentMethod, len(methods))
	for i, m := range methods {
		out[i] = PaymentMethod{
			Method:      m.Method,
			DisplayName: m.DisplayName,
			IconURL:     m.IconURL,
			TestMode:    m.TestMode,
		}
	}
	return out
}

type PayRequest struct {
	Method string `json:"method" validate:"required,max=64"`
}

// PaymentOutcome результат оплаты: либо заказ уже оплачен, либо нужен переход на шлюз
type PaymentOutcome struct {
	Settled     bool   `json:"settled"`
	RedirectURL string `json:"redirect_url"`
}

type WebhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type UpdateStatusRequest struct {
	Status         string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	TrackingNumber string `json:"tracking_number,omitempty" validate:"omitempty,max=128"`
}

// OrderResponse заказ для операторов
type OrderResponse struct {
	ID               string    `json:"id"`
	OrderNumber      string    `json:"order_number"`
	UserID           string    `json:"user_id"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	PaymentMethod    string    `json:"payment_method,omitempty"`
	Subtotal         string    `json:"subtotal"`
	Tax              string    `json:"tax"`
	Shipping         string    `json:"shipping"`
	Total            string    `json:"total"`
	TrackingNumber   string    `json:"tracking_number,omitempty"`
	GatewayReference string    `json:"gateway_reference,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Items            []Item    `json:"items,omitempty"`
}

func OrderEntityToJSON(o entities.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		UserID:           o.UserID,
		Status:           string(o.Status),
		PaymentStatus:    string(o.PaymentStatus),
		PaymentMethod:    o.PaymentMethod,
		Subtotal:         o.Subtotal.StringFixed(2),
		Tax:              o.Tax.StringFixed(2),
		Shipping:         o.Shipping.StringFixed(2),
		Total:            o.Total.StringFixed(2),
		TrackingNumber:   o.TrackingNumber,
		GatewayReference: o.GatewayReference,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		Items:            itemsToJSON(o.Items),
	}
}

// InsufficientInventoryResponse товара не хватает для завершения оплаты
type InsufficientInventoryResponse struct {
	Error     string `json:"error"`
	ProductID string `json:"product_id"`
	Available int    `json:"available"`
}
