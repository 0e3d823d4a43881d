package commitment

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/payload.schema.json
var payloadSchemaJSON []byte

const payloadSchemaURL = "payload.schema.json"

var (
	payloadSchemaOnce sync.Once
	payloadSchema     *jsonschema.Schema
	payloadSchemaErr  error
)

func compiledPayloadSchema() (*jsonschema.Schema, error) {
	payloadSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(payloadSchemaURL, bytes.NewReader(payloadSchemaJSON)); err != nil {
			payloadSchemaErr = fmt.Errorf("failed to add payload schema: %w", err)
			return
		}
		payloadSchema, payloadSchemaErr = compiler.Compile(payloadSchemaURL)
		if payloadSchemaErr != nil {
			payloadSchemaErr = fmt.Errorf("failed to compile payload schema: %w", payloadSchemaErr)
		}
	})
	return payloadSchema, payloadSchemaErr
}

// Parse decodes memo bytes read back from a ledger. The document must match
// the payload schema; canonical ordering is not required.
func Parse(data []byte) (Payload, error) {
	schema, err := compiledPayloadSchema()
	if err != nil {
		return Payload{}, err
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return Payload{}, &ValidationError{
			Code:    ErrorCodeInvalidPayload,
			Message: fmt.Sprintf("payload is not valid JSON: %v", err),
		}
	}
	if err := schema.Validate(instance); err != nil {
		return Payload{}, &ValidationError{
			Code:    ErrorCodeInvalidPayload,
			Message: fmt.Sprintf("payload does not match schema: %v", err),
		}
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Payload{}, &ValidationError{
			Code:    ErrorCodeInvalidPayload,
			Message: fmt.Sprintf("failed to decode payload: %v", err),
		}
	}
	if err := ValidatePayload(payload); err != nil {
		return Payload{}, err
	}
	return payload, nil
}

// IsCanonical reports whether data is byte-identical to the canonical
// encoding of the payload it decodes to.
func IsCanonical(data []byte) bool {
	payload, err := Parse(data)
	if err != nil {
		return false
	}
	encoded, err := payload.Bytes()
	if err != nil {
		return false
	}
	return bytes.Equal(encoded, data)
}
