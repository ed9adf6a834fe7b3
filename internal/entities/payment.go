package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type ProviderKind string

const (
	ProviderGateway ProviderKind = "gateway"
	ProviderDirect  ProviderKind = "direct"
	ProviderCustom  ProviderKind = "custom"
)

// GatewayConfig is an operator-managed payment provider integration.
type GatewayConfig struct {
	ID         string
	Name       string
	Kind       ProviderKind
	APIKey     string
	MerchantID string
	APIURL     string
	WebhookURL string
	Active     bool
	TestMode   bool
	Settings   json.RawMessage
	// Code is a CEL expression, only used by custom providers.
	Code string
}

type PaymentMethod struct {
	Method      string
	DisplayName string
	IconURL     string
	GatewayID   string
	TestMode    bool
}

type Settlement string

const (
	SettlementRedirect Settlement = "redirect"
	SettlementDirect   Settlement = "direct"
)

// PaymentRequest is what a provider needs to start a payment.
type PaymentRequest struct {
	Amount    decimal.Decimal
	Reference GatewayRef
	Method    string
	Subject   string
	NotifyURL string
	ReturnURL string
}

// PaymentResult is the uniform provider answer; providers never return raw transport errors.
type PaymentResult struct {
	Success    bool
	Settlement Settlement
	PaymentURL string
	Error      string
}

type PaymentOutcome struct {
	Settled     bool
	RedirectURL string
}

// Callback is a verified gateway notification.
type Callback struct {
	Reference string
	Status    string
	TradeNo   string
	Amount    string
}

func (c Callback) Succeeded() bool {
	return c.Status == "TRADE_SUCCESS" || c.Status == "SUCCESS"
}

// WebhookResultRejected marks a stored notification whose signature did not verify.
const WebhookResultRejected = "rejected"

type WebhookRecord struct {
	Fingerprint    string
	Gateway        string
	Reference      string
	Status         string
	SignatureValid bool
	Payload        json.RawMessage
	// Result is set up front only for notifications that are never processed.
	Result     string
	ReceivedAt time.Time
}

type PaymentEventType string

const (
	EventPaymentCompleted PaymentEventType = "payment.completed"
	EventPaymentFailed    PaymentEventType = "payment.failed"
)

type PaymentEvent struct {
	EventID     string
	Type        PaymentEventType
	OrderID     string
	OrderNumber string
	ShareToken  string
	Method      string
	Amount      decimal.Decimal
	PayerID     string
	OccurredAt  time.Time
}

type WebhookOutcome string

const (
	WebhookCompleted WebhookOutcome = "completed"
	WebhookFailed    WebhookOutcome = "failed"
	WebhookDuplicate WebhookOutcome = "duplicate"
	WebhookIgnored   WebhookOutcome = "ignored"
)

// WebhookNotification is a decoded, not yet verified gateway callback.
type WebhookNotification struct {
	Gateway string
	Fields  map[string]string
	Remote  string
}

type WebhookResult struct {
	Outcome WebhookOutcome
	Message string
}
