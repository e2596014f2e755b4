package llm

import (
	"cmp"
	"context"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content will be the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Narration is single-turn, so
	// this usually holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is the raw text encoded as a JSON string.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64

	// Purpose labels the request in logs, traces and stored events. Empty
	// falls back to the tag set with WithPurpose.
	Purpose string
}

// prepare fills the defaults every adapter relies on. It is idempotent, so
// decorators and base providers may both call it.
func (r Request) prepare(ctx context.Context) Request {
	r.Purpose = cmp.Or(r.Purpose, PurposeFrom(ctx))
	r.MaxTokens = cmp.Or(r.MaxTokens, defaultMaxTokens)
	r.Temperature = min(max(r.Temperature, 0), 1)
	return r
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema and keys the compiled-schema cache.
	// Kebab-case, e.g. "narration".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map. It is compiled on
	// first validation; later edits are not seen.
	Definition map[string]any

	once       sync.Once
	compiled   *jsonschema.Schema
	compileErr error
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. When no Schema was
	// provided, this is the raw text response wrapped as a JSON string.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// defaultMaxTokens applies when a request leaves MaxTokens unset.
const defaultMaxTokens = 1024

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// finishContent turns a provider's raw text output into Response content.
// Truncated output is reported as ErrMaxTokensExceeded; schema requests
// are validated; plain-text requests are wrapped as a JSON string.
func finishContent(req Request, text, stopReason string) (json.RawMessage, error) {
	if stopReason == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: json.RawMessage(text)}
	}
	if req.Schema == nil {
		b, err := json.Marshal(text)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	content := json.RawMessage(text)
	if err := req.Schema.Validate(content); err != nil {
		return nil, err
	}
	return content, nil
}
