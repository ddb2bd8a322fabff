package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/story-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, text string, maxTokens int) (string, error)

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Texts contains all texts passed to Generate calls
		Texts []string

		// MaxTokens contains all token budgets passed to Generate calls
		MaxTokens []int
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, text string, maxTokens int) (string, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Texts = append(m.GenerateCalls.Texts, text)
	m.GenerateCalls.MaxTokens = append(m.GenerateCalls.MaxTokens, maxTokens)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, text, maxTokens)
	}

	return m.Text, m.Err
}

// CallCount returns how many times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// LastCall returns the arguments of the most recent Generate call.
func (m *MockGenerator) LastCall() (text string, maxTokens int, ok bool) {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	n := len(m.GenerateCalls.Texts)
	if n == 0 {
		return "", 0, false
	}
	return m.GenerateCalls.Texts[n-1], m.GenerateCalls.MaxTokens[n-1], true
}

// NewMockGeneratorWithText creates a MockGenerator that returns text
func NewMockGeneratorWithText(text string) *MockGenerator {
	return &MockGenerator{Text: text}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// MockGeneratorWithUpstreamRejection creates a MockGenerator that simulates a
// non-success upstream status carrying body.
func MockGeneratorWithUpstreamRejection(status int, body string) *MockGenerator {
	return &MockGenerator{
		Err: &generation.UpstreamError{StatusCode: status, Body: body},
	}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Texts = nil
	m.GenerateCalls.MaxTokens = nil
}
