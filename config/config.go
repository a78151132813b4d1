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


// Package config loads application settings from an optional YAML file with
// environment variable overrides. Missing sections fall back to defaults, so
// the binary runs with no config file at all.
package config

import (
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "MATNEWS_CONFIG"
	storagePathEnv    = "MATNEWS_DB_PATH"
	modelHostEnv      = "MATNEWS_MODEL_HOST"
	modelNameEnv      = "MATNEWS_MODEL"
	modelAPIKeyEnv    = "OPENAI_API_KEY"
	fetchUserAgentEnv = "MATNEWS_USER_AGENT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Model     ModelConfig     `yaml:"model"`
	MATs      []MATConfig     `yaml:"mats"`
}

// StorageConfig describes where documents are persisted.
type StorageConfig struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"inMemory"`
}

// FetchConfig tunes the rate-limited fetcher.
type FetchConfig struct {
	// RatePerSecond is the per-domain request budget.
	RatePerSecond float64 `yaml:"ratePerSecond"`
	Burst         int     `yaml:"burst"`
	MaxAttempts   int     `yaml:"maxAttempts"`
	// BaseDelayMillis is the backoff base between retries.
	BaseDelayMillis int    `yaml:"baseDelayMillis"`
	UserAgent       string `yaml:"userAgent"`
	// PoolSize is the ingestion worker pool size. Zero means a CPU-derived
	// default.
	PoolSize int `yaml:"poolSize"`
}

// RetrievalConfig tunes passage retrieval for answering.
type RetrievalConfig struct {
	TopK            int     `yaml:"topK"`
	MinScore        float32 `yaml:"minScore"`
	MaxExcerptChars int     `yaml:"maxExcerptChars"`
}

// ModelConfig defines how to contact the chat model API.
type ModelConfig struct {
	// Host is the base URL; empty uses the provider's public endpoint.
	Host        string  `yaml:"host"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"apiKey"`
	Temperature float64 `yaml:"temperature"`
}

// MATConfig describes one multi-academy trust whose newsletters are ingested.
type MATConfig struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	LogoURL  string   `yaml:"logoUrl"`
	SeedURLs []string `yaml:"seedUrls"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	return LoadFrom(os.Getenv(configPathEnv))
}

// LoadFrom reads the given YAML file, falling back to defaults when the path
// is empty or unreadable, then applies environment overrides.
func LoadFrom(path string) Config {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			slog.Warn("config: cannot read file, falling back to defaults", "path", path, "err", err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				slog.Warn("config: cannot parse file, falling back to defaults", "path", path, "err", err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.MATs) == 0 {
		cfg.MATs = defaultConfig().MATs
	}

	return cfg
}

// MAT returns the configuration for one trust by ID, or false when unknown.
func (c Config) MAT(id string) (MATConfig, bool) {
	for _, mat := range c.MATs {
		if strings.EqualFold(mat.ID, id) {
			return mat, true
		}
	}
	return MATConfig{}, false
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(storagePathEnv); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(modelHostEnv); v != "" {
		c.Model.Host = v
	}
	if v := os.Getenv(modelNameEnv); v != "" {
		c.Model.Model = v
	}
	if v := os.Getenv(modelAPIKeyEnv); v != "" {
		c.Model.APIKey = v
	}
	if v := os.Getenv(fetchUserAgentEnv); v != "" {
		c.Fetch.UserAgent = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Storage.Path != "" {
		base.Storage.Path = override.Storage.Path
	}
	if override.Storage.InMemory {
		base.Storage.InMemory = true
	}

	if override.Fetch.RatePerSecond > 0 {
		base.Fetch.RatePerSecond = override.Fetch.RatePerSecond
	}
	if override.Fetch.Burst > 0 {
		base.Fetch.Burst = override.Fetch.Burst
	}
	if override.Fetch.MaxAttempts > 0 {
		base.Fetch.MaxAttempts = override.Fetch.MaxAttempts
	}
	if override.Fetch.BaseDelayMillis > 0 {
		base.Fetch.BaseDelayMillis = override.Fetch.BaseDelayMillis
	}
	if override.Fetch.UserAgent != "" {
		base.Fetch.UserAgent = override.Fetch.UserAgent
	}
	if override.Fetch.PoolSize > 0 {
		base.Fetch.PoolSize = override.Fetch.PoolSize
	}

	if override.Retrieval.TopK > 0 {
		base.Retrieval.TopK = override.Retrieval.TopK
	}
	if override.Retrieval.MinScore > 0 {
		base.Retrieval.MinScore = override.Retrieval.MinScore
	}
	if override.Retrieval.MaxExcerptChars > 0 {
		base.Retrieval.MaxExcerptChars = override.Retrieval.MaxExcerptChars
	}

	if override.Model.Host != "" {
		base.Model.Host = override.Model.Host
	}
	if override.Model.Model != "" {
		base.Model.Model = override.Model.Model
	}
	if override.Model.APIKey != "" {
		base.Model.APIKey = override.Model.APIKey
	}
	if override.Model.Temperature > 0 {
		base.Model.Temperature = override.Model.Temperature
	}

	if len(override.MATs) > 0 {
		base.MATs = override.MATs
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{Path: "./data/matnews"},
		Fetch: FetchConfig{
			RatePerSecond:   1,
			Burst:           2,
			MaxAttempts:     3,
			BaseDelayMillis: 1000,
		},
		Retrieval: RetrievalConfig{
			TopK:            5,
			MaxExcerptChars: 10000,
		},
		Model: ModelConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
		},
		MATs: []MATConfig{
			{
				ID:      "west",
				Name:    "West Learning Trust",
				LogoURL: "https://west.example.org/logo.png",
			},
		},
	}
}
