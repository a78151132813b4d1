package ai

import "context"

// ChatModel generates a chat completion from a system prompt and a user
// prompt. Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// Complete sends one system/user prompt pair to the model and returns
	// the raw text of the first completion choice.
	// Returns an error if the completion fails.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management.
type AIProvider interface {
	// ChatModel returns the chat completion service.
	// The returned ChatModel is safe for concurrent use.
	ChatModel() ChatModel

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
