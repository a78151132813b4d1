// Copyright 2026 Edquery Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

const (
	// DefaultModel is a small, cheap chat model suitable for grounded
	// question answering over short passages.
	DefaultModel = "gpt-4o-mini"

	// DefaultTemperature keeps answers close to the supplied passages.
	DefaultTemperature = 0.3
)

// Config holds configuration for chat-model providers.
type Config struct {
	// Host is the base URL for the chat service API. Empty means the
	// provider's default public endpoint.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	Host string

	// Model is the chat model identifier.
	// Example: "gpt-4o-mini", "qwen2.5:3b"
	Model string

	// APIKey authenticates against the chat service. Required when Host
	// is empty; local OpenAI-compatible servers usually accept any
	// non-empty value, so a custom Host defaults the key.
	APIKey string

	// Temperature controls sampling randomness in [0, 2].
	// Default: 0.3
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the chat service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// DefaultConfig returns a config with default model settings applied.
func DefaultConfig() *Config {
	c := &Config{}
	c.Normalize()
	return c
}

// NewConfig builds a config from functional options and normalizes it.
func NewConfig(opts ...ConfigOption) *Config {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	c.Normalize()
	return c
}

// Normalize trims fields and fills defaults for anything unset.
func (c *Config) Normalize() {
	c.Host = strings.TrimSpace(c.Host)
	c.Model = strings.TrimSpace(c.Model)
	c.APIKey = strings.TrimSpace(c.APIKey)

	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.APIKey == "" && c.Host != "" {
		// Local OpenAI-compatible services don't check the key, but a key
		// is still required for the default hosted endpoint.
		c.APIKey = "none"
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
}

// Validate normalizes the config and reports the first invalid field.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required when Host is the default endpoint")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	return nil
}
