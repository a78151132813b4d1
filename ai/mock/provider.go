package mock

import "github.com/edquery/matnews/ai"

// MockProvider is a test double for ai.AIProvider aggregating mock services.
type MockProvider struct {
	chat *MockChatModel
}

// NewMockProvider creates a provider backed by mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{chat: NewMockChatModel()}
}

// ChatModel returns the mock chat model as the ai.ChatModel interface.
func (p *MockProvider) ChatModel() ai.ChatModel {
	return p.chat
}

// GetMockChatModel returns the concrete mock for test assertions.
func (p *MockProvider) GetMockChatModel() *MockChatModel {
	return p.chat
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}
