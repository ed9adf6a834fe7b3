package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/gateway"
	"github.com/google/cel-go/cel"
)

// SupportedContract is the settings contract_version range custom providers must satisfy.
const SupportedContract = "^1"

// Custom runs an operator supplied CEL expression that turns the signed payment request into
// a redirect URL. Expressions see only the request and the public part of the config,
// have no I/O and are cost limited.
type Custom struct {
	env      *cel.Env
	contract *semver.Constraints
	schemas  *SchemaValidator

	mu       sync.RWMutex
	programs map[string]cel.Program
}

func NewCustom(schemas *SchemaValidator) (*Custom, error) {
	env, err := cel.NewEnv(
		cel.Variable("request", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("config", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	contract, err := semver.NewConstraint(SupportedContract)
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract constraint: %w", err)
	}

	return &Custom{
		env:      env,
		contract: contract,
		schemas:  schemas,
		programs: make(map[string]cel.Program),
	}, nil
}

func (c *Custom) Kind() entities.ProviderKind {
	return entities.ProviderCustom
}

func (c *Custom) ValidateConfig(cfg entities.GatewayConfig) error {
	if err := c.schemas.Validate(cfg.Kind, cfg.Settings); err != nil {
		return err
	}
	s, err := parseSettings(cfg.Settings)
	if err != nil {
		return err
	}

	version, err := semver.NewVersion(s.ContractVersion)
	if err != nil {
		return fmt.Errorf("%w: custom provider %s: contract_version: %v", entities.ErrValidation, cfg.Name, err)
	}
	if !c.contract.Check(version) {
		return fmt.Errorf("%w: custom provider %s: contract_version %s does not satisfy %s",
			entities.ErrValidation, cfg.Name, version, SupportedContract)
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("%w: custom provider %s: api key is required", entities.ErrValidation, cfg.Name)
	}

	if _, err := c.program(cfg.Code); err != nil {
		return fmt.Errorf("%w: custom provider %s: %v", entities.ErrValidation, cfg.Name, err)
	}
	return nil
}

func (c *Custom) PaymentMethods(cfg entities.GatewayConfig) []string {
	return declaredMethods(cfg)
}

func (c *Custom) ProcessPayment(ctx context.Context, cfg entities.GatewayConfig, req entities.PaymentRequest) entities.PaymentResult {
	prg, err := c.program(cfg.Code)
	if err != nil {
		return entities.PaymentResult{Error: "custom provider is misconfigured"}
	}
	s, err := parseSettings(cfg.Settings)
	if err != nil {
		return entities.PaymentResult{Error: "custom provider is misconfigured"}
	}

	request := make(map[string]any)
	for k, v := range gateway.SignedFields(credentials(cfg), orderRequest(req)) {
		request[k] = v
	}
	vars := map[string]any{
		"request": request,
		"config": map[string]any{
			"name":        cfg.Name,
			"merchant_id": cfg.MerchantID,
			"api_url":     cfg.APIURL,
			"test_mode":   cfg.TestMode,
			"settings":    s.Extra,
		},
	}

	out, _, err := prg.ContextEval(ctx, vars)
	if err != nil {
		return entities.PaymentResult{Error: "custom provider failed: " + err.Error()}
	}
	redirect, ok := out.Value().(string)
	if !ok {
		return entities.PaymentResult{Error: "custom provider must return a string url"}
	}
	if err := validateHTTPURL(redirect); err != nil {
		return entities.PaymentResult{Error: "custom provider returned an invalid url"}
	}

	return entities.PaymentResult{
		Success:    true,
		Settlement: entities.SettlementRedirect,
		PaymentURL: redirect,
	}
}

// Callbacks of custom providers use the shared canonical signature.
func (c *Custom) VerifyCallback(cfg entities.GatewayConfig, fields map[string]string) error {
	return gateway.Verify(fields, cfg.APIKey)
}

func (c *Custom) program(code string) (cel.Program, error) {
	if code == "" {
		return nil, fmt.Errorf("expression is empty")
	}

	c.mu.RLock()
	prg, hit := c.programs[code]
	c.mu.RUnlock()
	if hit {
		return prg, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prg, hit = c.programs[code]; hit {
		return prg, nil
	}

	ast, issues := c.env.Compile(code)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile: %w", issues.Err())
	}
	prg, err := c.env.Program(ast,
		cel.InterruptCheckFrequency(100),
		cel.CostLimit(10000),
	)
	if err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}
	c.programs[code] = prg
	return prg, nil
}
