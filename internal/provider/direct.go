package provider

import (
	"context"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
)

// Direct settles inside the service, e.g. from an internal balance. There is no redirect and no callback.
type Direct struct {
	schemas *SchemaValidator
}

func NewDirect(schemas *SchemaValidator) *Direct {
	return &Direct{schemas: schemas}
}

func (d *Direct) Kind() entities.ProviderKind {
	return entities.ProviderDirect
}

func (d *Direct) ValidateConfig(cfg entities.GatewayConfig) error {
	return d.schemas.Validate(cfg.Kind, cfg.Settings)
}

func (d *Direct) PaymentMethods(cfg entities.GatewayConfig) []string {
	return declaredMethods(cfg)
}

func (d *Direct) ProcessPayment(context.Context, entities.GatewayConfig, entities.PaymentRequest) entities.PaymentResult {
	return entities.PaymentResult{Success: true, Settlement: entities.SettlementDirect}
}
