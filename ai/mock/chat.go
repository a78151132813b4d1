package mock

import (
	"context"
	"sync"
)

// MockChatModel is a test double for ai.ChatModel.
// It allows custom behavior injection via function fields.
type MockChatModel struct {
	// CompleteFunc is called by Complete if set.
	// If nil, Complete echoes a canned grounded answer.
	CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	mu         sync.Mutex
	callCount  int
	lastSystem string
	lastUser   string
}

// NewMockChatModel creates a mock chat model with default behavior.
// Returns the concrete type to allow test assertions.
func NewMockChatModel() *MockChatModel {
	return &MockChatModel{}
}

// Complete records the call and delegates to CompleteFunc when set.
func (m *MockChatModel) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt)
	}

	return "The newsletters do not mention this.", nil
}

// CallCount returns the number of times Complete was called.
func (m *MockChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastPrompts returns the system and user prompts from the most recent call.
func (m *MockChatModel) LastPrompts() (system, user string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSystem, m.lastUser
}

// Reset clears the call count and custom functions.
func (m *MockChatModel) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastSystem = ""
	m.lastUser = ""
	m.CompleteFunc = nil
}
