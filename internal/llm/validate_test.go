package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-hint",
		Description: "A hint for one problem",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text":  map[string]any{"type": "string"},
				"steps": map[string]any{"type": "integer", "minimum": 0},
				"tone":  map[string]any{"type": "string", "enum": []any{"brief", "detailed", "playful"}},
			},
			"required": []any{"text", "steps"},
		},
	}
}

func TestSchemaValidate_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"text":"Subtract 3 from both sides.","steps":2,"tone":"brief"}`)
	err := testSchema().Validate(raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestSchemaValidate_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"text":"Divide by 2.","steps":1}`)
	err := testSchema().Validate(raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestSchemaValidate_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"text":"Expand first."}`)
	err := testSchema().Validate(raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestSchemaValidate_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"text":"Factor.","steps":"two"}`)
	err := testSchema().Validate(raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestSchemaValidate_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"text":"Factor.","steps":1,"tone":"verbose"}`)
	err := testSchema().Validate(raw)
	if err == nil {
		t.Fatal("expected error for invalid enum value")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestSchemaValidate_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := testSchema().Validate(raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestSchemaValidate_EmptyResponse(t *testing.T) {
	raw := json.RawMessage(``)
	err := testSchema().Validate(raw)
	if err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestSchemaValidate_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	var schema *Schema
	err := schema.Validate(raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestSchemaValidate_Nested(t *testing.T) {
	schema := &Schema{
		Name:        "test-nested",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"problem": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"statement": map[string]any{"type": "string"},
					},
					"required": []any{"statement"},
				},
				"roots": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"problem", "roots"},
		},
	}

	valid := json.RawMessage(`{"problem":{"statement":"Solve for x."},"roots":[2,-3]}`)
	if err := schema.Validate(valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"problem":{"statement":"Solve for x."},"roots":["two","minus three"]}`)
	if err := schema.Validate(invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}

func TestFinishContent(t *testing.T) {
	t.Run("plain text is wrapped as a JSON string", func(t *testing.T) {
		got, err := finishContent(Request{}, `Add "3" to both sides.`, StopEnd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var s string
		if err := json.Unmarshal(got, &s); err != nil {
			t.Fatalf("content is not a JSON string: %s", got)
		}
		if s != `Add "3" to both sides.` {
			t.Fatalf("round trip = %q", s)
		}
	})

	t.Run("truncated output", func(t *testing.T) {
		_, err := finishContent(Request{Schema: testSchema()}, `{"text":"Sub`, StopMaxTokens)
		var maxTok *ErrMaxTokensExceeded
		if !errors.As(err, &maxTok) {
			t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
		}
		if string(maxTok.Content) != `{"text":"Sub` {
			t.Fatalf("partial content = %s", maxTok.Content)
		}
	})

	t.Run("schema is validated", func(t *testing.T) {
		_, err := finishContent(Request{Schema: testSchema()}, `{"text":"x"}`, StopEnd)
		var invErr *ErrInvalidResponse
		if !errors.As(err, &invErr) {
			t.Fatalf("expected ErrInvalidResponse, got: %T", err)
		}
	})
}

func TestSchemaValidate_SameNameDifferentDefinition(t *testing.T) {
	a := &Schema{Name: "shared", Definition: map[string]any{
		"type": "object", "required": []any{"text"},
	}}
	b := &Schema{Name: "shared", Definition: map[string]any{
		"type": "object", "required": []any{"hint"},
	}}
	if err := a.Validate(json.RawMessage(`{"text":"x"}`)); err != nil {
		t.Fatalf("schema a: %v", err)
	}
	if err := b.Validate(json.RawMessage(`{"text":"x"}`)); err == nil {
		t.Fatal("schema b reused the compiled form of schema a")
	}
}

func TestSchemaValidate_BadDefinition(t *testing.T) {
	schema := &Schema{Name: "broken", Definition: map[string]any{"type": 42}}
	for range 2 {
		err := schema.Validate(json.RawMessage(`{}`))
		var invErr *ErrInvalidResponse
		if !errors.As(err, &invErr) {
			t.Fatalf("expected ErrInvalidResponse, got: %T", err)
		}
		if !strings.Contains(err.Error(), `compile schema "broken"`) {
			t.Fatalf("error = %v", err)
		}
	}
}
