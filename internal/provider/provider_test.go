package provider_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/gateway"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	got    gateway.OrderRequest
	result gateway.Result
}

func (f *fakeCreator) CreateOrder(_ context.Context, _ gateway.Credentials, req gateway.OrderRequest) gateway.Result {
	f.got = req
	return f.result
}

func newRegistry(t *testing.T, creator provider.OrderCreator) *provider.Registry {
	schemas, err := provider.NewSchemaValidator()
	require.NoError(t, err)
	custom, err := provider.NewCustom(schemas)
	require.NoError(t, err)
	return provider.NewRegistry(provider.NewGateway(creator, schemas), provider.NewDirect(schemas), custom)
}

func gatewayConfig() entities.GatewayConfig {
	return entities.GatewayConfig{
		Name:       "acacia",
		Kind:       entities.ProviderGateway,
		APIKey:     "secret",
		MerchantID: "1001",
		APIURL:     "https://pay.example.com/submit.php",
		Active:     true,
		Settings:   json.RawMessage(`{"methods":["acacia_pay","alipay"]}`),
	}
}

func customConfig() entities.GatewayConfig {
	return entities.GatewayConfig{
		Name:       "crypto",
		Kind:       entities.ProviderCustom,
		APIKey:     "secret",
		MerchantID: "m-7",
		Active:     true,
		Settings:   json.RawMessage(`{"methods":["crypto_pay"],"contract_version":"1.2.0","checkout_url":"https://checkout.example.com/pay"}`),
		Code:       `config.settings.checkout_url + "?out_trade_no=" + request.out_trade_no + "&money=" + request.money + "&sign=" + request.sign`,
	}
}

func paymentRequest() entities.PaymentRequest {
	return entities.PaymentRequest{
		Amount:    decimal.RequireFromString("100"),
		Reference: entities.SharedRef("tok"),
		Method:    "crypto_pay",
		Subject:   "Order SO-1",
	}
}

func TestRegistry_Resolve(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      func() entities.GatewayConfig
		wantKind entities.ProviderKind
		wantErr  bool
	}{
		{name: "gateway", cfg: gatewayConfig, wantKind: entities.ProviderGateway},
		{name: "custom", cfg: customConfig, wantKind: entities.ProviderCustom},
		{
			name: "direct",
			cfg: func() entities.GatewayConfig {
				return entities.GatewayConfig{Kind: entities.ProviderDirect, Settings: json.RawMessage(`{"methods":["balance"]}`)}
			},
			wantKind: entities.ProviderDirect,
		},
		{
			name: "unknown kind",
			cfg: func() entities.GatewayConfig {
				c := gatewayConfig()
				c.Kind = "eval"
				return c
			},
			wantErr: true,
		},
		{
			name: "gateway without methods",
			cfg: func() entities.GatewayConfig {
				c := gatewayConfig()
				c.Settings = json.RawMessage(`{"methods":[]}`)
				return c
			},
			wantErr: true,
		},
		{
			name: "gateway with bad url",
			cfg: func() entities.GatewayConfig {
				c := gatewayConfig()
				c.APIURL = "ftp://pay.example.com"
				return c
			},
			wantErr: true,
		},
		{
			name: "custom with unsupported contract",
			cfg: func() entities.GatewayConfig {
				c := customConfig()
				c.Settings = json.RawMessage(`{"methods":["crypto_pay"],"contract_version":"2.0.0"}`)
				return c
			},
			wantErr: true,
		},
		{
			name: "custom with invalid expression",
			cfg: func() entities.GatewayConfig {
				c := customConfig()
				c.Code = `request.out_trade_no +`
				return c
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := newRegistry(t, &fakeCreator{}).Resolve(tc.cfg())
			if tc.wantErr {
				assert.ErrorIs(t, err, entities.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, p.Kind())
		})
	}
}

func TestGatewayProvider(t *testing.T) {
	creator := &fakeCreator{result: gateway.Result{Success: true, PaymentURL: "https://pay.example.com/p/1"}}
	p, err := newRegistry(t, creator).Resolve(gatewayConfig())
	require.NoError(t, err)

	assert.True(t, provider.Declares(p, gatewayConfig(), "acacia_pay"))
	assert.False(t, provider.Declares(p, gatewayConfig(), "bitcoin"))

	res := p.ProcessPayment(context.Background(), gatewayConfig(), paymentRequest())
	assert.Equal(t, entities.PaymentResult{
		Success:    true,
		Settlement: entities.SettlementRedirect,
		PaymentURL: "https://pay.example.com/p/1",
	}, res)
	assert.Equal(t, "SHR-tok", creator.got.Reference)

	creator.result = gateway.Result{Error: "merchant disabled"}
	res = p.ProcessPayment(context.Background(), gatewayConfig(), paymentRequest())
	assert.False(t, res.Success)
	assert.Equal(t, "merchant disabled", res.Error)

	fields := map[string]string{"out_trade_no": "SHR-tok", "trade_status": "TRADE_SUCCESS"}
	fields["sign"] = gateway.Sign(fields, "secret")
	verifier, ok := p.(provider.CallbackVerifier)
	require.True(t, ok)
	assert.NoError(t, verifier.VerifyCallback(gatewayConfig(), fields))
}

func TestCustomProvider(t *testing.T) {
	cfg := customConfig()
	p, err := newRegistry(t, &fakeCreator{}).Resolve(cfg)
	require.NoError(t, err)

	req := paymentRequest()
	res := p.ProcessPayment(context.Background(), cfg, req)
	require.True(t, res.Success, res.Error)

	signed := gateway.SignedFields(gateway.Credentials{MerchantID: "m-7", Secret: "secret"}, gateway.OrderRequest{
		Method: req.Method, Reference: "SHR-tok", Subject: req.Subject, Amount: req.Amount,
	})
	assert.Equal(t, "https://checkout.example.com/pay?out_trade_no=SHR-tok&money=100.00&sign="+signed["sign"], res.PaymentURL)
	assert.Equal(t, entities.SettlementRedirect, res.Settlement)

	t.Run("non string result", func(t *testing.T) {
		cfg := customConfig()
		cfg.Code = `1 + 2`
		res := p.ProcessPayment(context.Background(), cfg, req)
		assert.False(t, res.Success)
	})

	t.Run("invalid url", func(t *testing.T) {
		cfg := customConfig()
		cfg.Code = `"javascript:alert(1)"`
		res := p.ProcessPayment(context.Background(), cfg, req)
		assert.False(t, res.Success)
	})

	t.Run("missing key fails at runtime", func(t *testing.T) {
		cfg := customConfig()
		cfg.Code = `request.unknown_field`
		res := p.ProcessPayment(context.Background(), cfg, req)
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "custom provider failed")
	})
}

func TestDirectProvider(t *testing.T) {
	cfg := entities.GatewayConfig{Kind: entities.ProviderDirect, Settings: json.RawMessage(`{"methods":["balance"]}`)}
	p, err := newRegistry(t, &fakeCreator{}).Resolve(cfg)
	require.NoError(t, err)

	res := p.ProcessPayment(context.Background(), cfg, paymentRequest())
	assert.Equal(t, entities.PaymentResult{Success: true, Settlement: entities.SettlementDirect}, res)

	_, ok := p.(provider.CallbackVerifier)
	assert.False(t, ok)
}
