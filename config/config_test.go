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


package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := LoadFrom("")

	assert.Equal(t, "./data/matnews", cfg.Storage.Path)
	assert.Equal(t, 1.0, cfg.Fetch.RatePerSecond)
	assert.Equal(t, 3, cfg.Fetch.MaxAttempts)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Model)
	require.NotEmpty(t, cfg.MATs)
	assert.Equal(t, "west", cfg.MATs[0].ID)
}

func TestLoadFromFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matnews.yaml")
	content := `
storage:
  path: /var/lib/matnews
fetch:
  ratePerSecond: 0.5
  maxAttempts: 5
model:
  model: qwen2.5:3b
mats:
  - id: north
    name: North Schools Trust
    seedUrls:
      - https://north.example.org/newsletters/1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := LoadFrom(path)

	assert.Equal(t, "/var/lib/matnews", cfg.Storage.Path)
	assert.Equal(t, 0.5, cfg.Fetch.RatePerSecond)
	assert.Equal(t, 5, cfg.Fetch.MaxAttempts)
	// Untouched fields keep defaults.
	assert.Equal(t, 1000, cfg.Fetch.BaseDelayMillis)
	assert.Equal(t, "qwen2.5:3b", cfg.Model.Model)

	require.Len(t, cfg.MATs, 1)
	assert.Equal(t, "north", cfg.MATs[0].ID)
	assert.Equal(t, []string{"https://north.example.org/newsletters/1"}, cfg.MATs[0].SeedURLs)
}

func TestLoadFromUnreadableFileFallsBack(t *testing.T) {
	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, "./data/matnews", cfg.Storage.Path)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MATNEWS_DB_PATH", "/tmp/override-db")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MATNEWS_MODEL", "gpt-4o")

	cfg := LoadFrom("")

	assert.Equal(t, "/tmp/override-db", cfg.Storage.Path)
	assert.Equal(t, "sk-test", cfg.Model.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Model.Model)
}

func TestMATLookup(t *testing.T) {
	cfg := LoadFrom("")

	mat, ok := cfg.MAT("west")
	require.True(t, ok)
	assert.Equal(t, "West Learning Trust", mat.Name)

	mat, ok = cfg.MAT("WEST")
	require.True(t, ok)
	assert.Equal(t, "west", mat.ID)

	_, ok = cfg.MAT("nowhere")
	assert.False(t, ok)
}
