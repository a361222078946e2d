package llm

import (
	"context"
	"fmt"
)

// MockProvider is a scripted provider for tests. Responses are returned in
// order; when the script runs out, Err (or a default error) is returned.
type MockProvider struct {
	Responses []string
	Err       error
	Calls     int
}

// Name returns the provider name
func (m *MockProvider) Name() string { return "mock" }

// IsAvailable always reports true for the mock
func (m *MockProvider) IsAvailable(ctx context.Context) bool { return true }

// Complete pops the next scripted response
func (m *MockProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	idx := m.Calls
	m.Calls++

	if m.Err != nil {
		return nil, m.Err
	}
	if idx >= len(m.Responses) {
		return nil, fmt.Errorf("mock provider: no scripted response for call %d", idx)
	}

	return &Response{Text: m.Responses[idx], Model: "mock"}, nil
}
