package providers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is an LLMClient for testing.
type MockClient struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool
	FailFirst    int // Fail the first N requests (0 = never)
	ResponseText string

	// State
	requestCount atomic.Int64
}

// NewMockClient creates a new mock client with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		ResponseText: "mock response",
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// RequestCount returns the number of requests made.
func (c *MockClient) RequestCount() int64 {
	return c.requestCount.Load()
}

// Complete returns the configured response.
func (c *MockClient) Complete(ctx context.Context, req *Request) (*Response, error) {
	count := c.requestCount.Add(1)

	if c.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Latency):
		}
	}

	if c.ShouldFail || count <= int64(c.FailFirst) {
		return nil, fmt.Errorf("mock failure (request %d)", count)
	}

	return &Response{
		Content:   c.ResponseText,
		Provider:  MockClientName,
		ModelUsed: "mock-model",
		RequestID: req.RequestID,
	}, nil
}

// Verify interface
var _ LLMClient = (*MockClient)(nil)
