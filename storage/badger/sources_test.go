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


package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edquery/matnews/core"
	"github.com/edquery/matnews/storage"
)

func setupPages(t *testing.T) storage.SourcePageRepository {
	t.Helper()

	docs, pages, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		docs.Close()
		pages.Close()
		backend.Close()
	})
	return pages
}

func newSourcePage(matID, url string, status core.FetchStatus) *core.SourcePage {
	return &core.SourcePage{
		MATID:            matID,
		URL:              url,
		LastFetchAttempt: time.Now().UTC().Add(-time.Minute),
		LastStatus:       status,
	}
}

func TestUpsertAndGet(t *testing.T) {
	pages := setupPages(t)
	ctx := context.Background()

	page := newSourcePage("west", "https://west.example.org/n/1", core.FetchStatusOK)
	require.NoError(t, pages.Upsert(ctx, page))

	got, err := pages.Get(ctx, "west", "https://west.example.org/n/1")
	require.NoError(t, err)
	assert.Equal(t, core.FetchStatusOK, got.LastStatus)
	assert.Empty(t, got.LastError)
}

func TestUpsertReplacesInPlace(t *testing.T) {
	pages := setupPages(t)
	ctx := context.Background()
	url := "https://west.example.org/n/1"

	require.NoError(t, pages.Upsert(ctx, newSourcePage("west", url, core.FetchStatusOK)))

	failed := newSourcePage("west", url, core.FetchStatusFailed)
	failed.LastError = "retries exhausted after 3 attempts"
	require.NoError(t, pages.Upsert(ctx, failed))

	got, err := pages.Get(ctx, "west", url)
	require.NoError(t, err)
	assert.Equal(t, core.FetchStatusFailed, got.LastStatus)
	assert.Contains(t, got.LastError, "retries exhausted")

	all, err := pages.ListByMAT(ctx, "west")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetUnknownURL(t *testing.T) {
	pages := setupPages(t)

	_, err := pages.Get(context.Background(), "west", "https://west.example.org/nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListByMATOrderedAndScoped(t *testing.T) {
	pages := setupPages(t)
	ctx := context.Background()

	urls := []string{
		"https://west.example.org/n/2",
		"https://west.example.org/n/1",
		"https://west.example.org/n/3",
	}
	for _, url := range urls {
		require.NoError(t, pages.Upsert(ctx, newSourcePage("west", url, core.FetchStatusOK)))
	}
	require.NoError(t, pages.Upsert(ctx,
		newSourcePage("north", "https://north.example.org/n/1", core.FetchStatusOK)))

	west, err := pages.ListByMAT(ctx, "west")
	require.NoError(t, err)
	require.Len(t, west, 3)
	assert.Equal(t, "https://west.example.org/n/1", west[0].URL)
	assert.Equal(t, "https://west.example.org/n/2", west[1].URL)
	assert.Equal(t, "https://west.example.org/n/3", west[2].URL)
}

func TestListByMATIDNotAKeyPrefixOfAnother(t *testing.T) {
	pages := setupPages(t)
	ctx := context.Background()

	// A MAT id containing the key separator must not fold into another
	// MAT's prefix scan.
	require.NoError(t, pages.Upsert(ctx,
		newSourcePage("a", "https://a.example.org/n/1", core.FetchStatusOK)))
	require.NoError(t, pages.Upsert(ctx,
		newSourcePage("a:b", "https://ab.example.org/n/1", core.FetchStatusOK)))

	got, err := pages.ListByMAT(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].MATID)
	assert.Equal(t, "https://a.example.org/n/1", got[0].URL)

	other, err := pages.ListByMAT(ctx, "a:b")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "a:b", other[0].MATID)
}

func TestUpsertRejectsInvalidPage(t *testing.T) {
	pages := setupPages(t)

	page := newSourcePage("", "https://west.example.org/n/1", core.FetchStatusOK)
	err := pages.Upsert(context.Background(), page)
	assert.ErrorIs(t, err, core.ErrInvalidSourcePage)
}
