package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/gateway"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context, creds gateway.Credentials, req gateway.OrderRequest) gateway.Result
}

// Gateway is the signed redirect gateway: the payer finishes on the gateway page
// and the outcome arrives later as a signed callback.
type Gateway struct {
	client  OrderCreator
	schemas *SchemaValidator
}

func NewGateway(client OrderCreator, schemas *SchemaValidator) *Gateway {
	return &Gateway{client: client, schemas: schemas}
}

func (g *Gateway) Kind() entities.ProviderKind {
	return entities.ProviderGateway
}

func (g *Gateway) ValidateConfig(cfg entities.GatewayConfig) error {
	if cfg.MerchantID == "" || cfg.APIKey == "" {
		return fmt.Errorf("%w: gateway %s: merchant id and api key are required", entities.ErrValidation, cfg.Name)
	}
	if err := validateHTTPURL(cfg.APIURL); err != nil {
		return fmt.Errorf("gateway %s: api url: %w", cfg.Name, err)
	}
	return g.schemas.Validate(cfg.Kind, cfg.Settings)
}

func (g *Gateway) PaymentMethods(cfg entities.GatewayConfig) []string {
	return declaredMethods(cfg)
}

func (g *Gateway) ProcessPayment(ctx context.Context, cfg entities.GatewayConfig, req entities.PaymentRequest) entities.PaymentResult {
	res := g.client.CreateOrder(ctx, credentials(cfg), orderRequest(req))
	if !res.Success {
		return entities.PaymentResult{Error: res.Error}
	}
	return entities.PaymentResult{
		Success:    true,
		Settlement: entities.SettlementRedirect,
		PaymentURL: res.PaymentURL,
	}
}

func (g *Gateway) VerifyCallback(cfg entities.GatewayConfig, fields map[string]string) error {
	return gateway.Verify(fields, cfg.APIKey)
}

func credentials(cfg entities.GatewayConfig) gateway.Credentials {
	return gateway.Credentials{
		MerchantID: cfg.MerchantID,
		Secret:     cfg.APIKey,
		APIURL:     cfg.APIURL,
	}
}

func orderRequest(req entities.PaymentRequest) gateway.OrderRequest {
	return gateway.OrderRequest{
		Method:    req.Method,
		Reference: req.Reference.String(),
		Subject:   req.Subject,
		Amount:    req.Amount,
		NotifyURL: req.NotifyURL,
		ReturnURL: req.ReturnURL,
	}
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not an http(s) url", entities.ErrValidation, raw)
	}
	return nil
}
