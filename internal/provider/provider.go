package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
)

// Provider is one way of taking a payment. Implementations never return transport errors
// from ProcessPayment, failures are reported in the result.
type Provider interface {
	Kind() entities.ProviderKind
	ValidateConfig(cfg entities.GatewayConfig) error
	PaymentMethods(cfg entities.GatewayConfig) []string
	ProcessPayment(ctx context.Context, cfg entities.GatewayConfig, req entities.PaymentRequest) entities.PaymentResult
}

// CallbackVerifier is implemented by providers that receive signed asynchronous notifications.
type CallbackVerifier interface {
	VerifyCallback(cfg entities.GatewayConfig, fields map[string]string) error
}

type settings struct {
	Methods         []string       `json:"methods"`
	ContractVersion string         `json:"contract_version,omitempty"`
	Extra           map[string]any `json:"-"`
}

func parseSettings(raw json.RawMessage) (settings, error) {
	var s settings
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return settings{}, fmt.Errorf("%w: invalid provider settings: %v", entities.ErrValidation, err)
	}
	if err := json.Unmarshal(raw, &s.Extra); err != nil {
		return settings{}, fmt.Errorf("%w: invalid provider settings: %v", entities.ErrValidation, err)
	}
	return s, nil
}

func declaredMethods(cfg entities.GatewayConfig) []string {
	s, err := parseSettings(cfg.Settings)
	if err != nil {
		return nil
	}
	return slices.Clone(s.Methods)
}

// Declares reports whether the provider configured by cfg offers method.
func Declares(p Provider, cfg entities.GatewayConfig, method string) bool {
	return slices.Contains(p.PaymentMethods(cfg), method)
}
