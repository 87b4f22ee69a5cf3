package testutil

import (
	"context"

	ierr "github.com/billora/billora/internal/errors"
)

// MockExtractor implements ai.Extractor with scripted responses so the
// extraction services can be tested without a live model.
type MockExtractor struct {
	// Responses are returned in order, one per CompleteJSON call
	Responses []string
	// Err, when set, is returned by every call
	Err error

	// Prompts records the system prompts received, in call order
	Prompts []string
	// Inputs records the user texts received, in call order
	Inputs []string

	calls int
}

func NewMockExtractor(responses ...string) *MockExtractor {
	return &MockExtractor{Responses: responses}
}

func (m *MockExtractor) CompleteJSON(ctx context.Context, systemPrompt, userText string) (string, error) {
	m.Prompts = append(m.Prompts, systemPrompt)
	m.Inputs = append(m.Inputs, userText)

	if m.Err != nil {
		return "", m.Err
	}
	if m.calls >= len(m.Responses) {
		return "", ierr.NewError("no scripted response left").
			WithHint("The extraction service made more model calls than expected").
			Mark(ierr.ErrSystem)
	}
	resp := m.Responses[m.calls]
	m.calls++
	return resp, nil
}

// CallCount returns how many times CompleteJSON was invoked
func (m *MockExtractor) CallCount() int {
	return m.calls
}
