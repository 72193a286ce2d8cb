package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-metrics",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"clarityScore": map[string]any{"type": "integer"},
				"transcript":   map[string]any{"type": "string"},
			},
			"required":             []any{"clarityScore", "transcript"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema should skip validation, got: %v", err)
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"clarityScore": 82, "transcript": "So, today I want to talk about..."}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_InvalidJSON(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{"clarityScore":`))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{"clarityScore": 82}`))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"clarityScore": "high", "transcript": "hello"}`)
	err := validateResponse(testSchema(), raw)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_AdditionalProperty(t *testing.T) {
	raw := json.RawMessage(`{"clarityScore": 82, "transcript": "hello", "extra": 1}`)
	err := validateResponse(testSchema(), raw)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_SchemaCaching(t *testing.T) {
	schema := testSchema()
	raw := json.RawMessage(`{"clarityScore": 70, "transcript": "again"}`)
	for i := 0; i < 3; i++ {
		if err := validateResponse(schema, raw); err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
	}
	if _, ok := schemaCache.Load(schema.Name); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}
