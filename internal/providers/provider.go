// Package providers holds the LLM client implementations used by the
// ingestion orchestrator. The remote model is treated as opaque and
// unreliable; clients normalize whatever response shape arrives and report
// failures as plain errors.
package providers

import (
	"context"
	"time"
)

// LLMClient is the interface the orchestrator calls.
type LLMClient interface {
	// Complete sends a completion request and returns the model's text.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Name returns the client identifier (e.g. "openrouter").
	Name() string
}

// Request is a completion request.
type Request struct {
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`

	// Model selection (client default if empty)
	Model string `json:"model,omitempty"`

	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`

	// Request tracking
	RequestID string `json:"-"`
}

// Response is the result of a completion call.
type Response struct {
	Content string `json:"content"`

	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	Provider  string        `json:"provider"`
	ModelUsed string        `json:"model_used"`
	RequestID string        `json:"request_id"`
	TotalTime time.Duration `json:"total_time"`
}
