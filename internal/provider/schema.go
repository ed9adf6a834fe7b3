package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const methodsSchema = `{
	"type": "array",
	"minItems": 1,
	"uniqueItems": true,
	"items": {"type": "string", "pattern": "^[a-z0-9_]{1,64}$"}
}`

var settingsSchemas = map[entities.ProviderKind]string{
	entities.ProviderGateway: `{
		"type": "object",
		"required": ["methods"],
		"properties": {"methods": ` + methodsSchema + `}
	}`,
	entities.ProviderDirect: `{
		"type": "object",
		"required": ["methods"],
		"properties": {"methods": ` + methodsSchema + `}
	}`,
	entities.ProviderCustom: `{
		"type": "object",
		"required": ["methods", "contract_version"],
		"properties": {
			"methods": ` + methodsSchema + `,
			"contract_version": {"type": "string", "minLength": 1}
		}
	}`,
}

// SchemaValidator checks provider settings against the JSON Schema of their kind.
type SchemaValidator struct {
	schemas map[entities.ProviderKind]*jsonschema.Schema
}

func NewSchemaValidator() (*SchemaValidator, error) {
	v := &SchemaValidator{schemas: make(map[entities.ProviderKind]*jsonschema.Schema, len(settingsSchemas))}
	for kind, schema := range settingsSchemas {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		schemaURL := fmt.Sprintf("https://schemas.shared-payment.local/provider/%s.schema.json", kind)
		if err := c.AddResource(schemaURL, strings.NewReader(schema)); err != nil {
			return nil, fmt.Errorf("failed to load %s settings schema: %w", kind, err)
		}
		compiled, err := c.Compile(schemaURL)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s settings schema: %w", kind, err)
		}
		v.schemas[kind] = compiled
	}
	return v, nil
}

func (v *SchemaValidator) Validate(kind entities.ProviderKind, raw json.RawMessage) error {
	schema, ok := v.schemas[kind]
	if !ok {
		return fmt.Errorf("%w: unknown provider kind %q", entities.ErrValidation, kind)
	}
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: settings are not valid JSON: %v", entities.ErrValidation, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s settings: %v", entities.ErrValidation, kind, err)
	}
	return nil
}
