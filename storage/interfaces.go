package storage

import (
	"context"

	"github.com/edquery/matnews/core"
)

// PutResult reports the outcome of an idempotent document insert.
type PutResult int

const (
	// PutInserted means the document was new and has been appended.
	PutInserted PutResult = iota + 1
	// PutDeduplicated means a document with the same (MAT, URL, content
	// hash) identity already existed and the call was a no-op.
	PutDeduplicated
)

// DocumentRepository stores extracted newsletter documents.
// Documents are append-only: there is no update and no delete. The store
// exclusively owns document rows; readers hold read-only references.
// Implementations must be thread-safe and support concurrent access.
type DocumentRepository interface {
	// Put inserts a document if no document with the same identity triple
	// exists. Concurrent Put calls for the same identity must not create
	// duplicate rows. Sets Id and InsertedAt on insert.
	Put(ctx context.Context, doc *core.NewsletterDocument) (PutResult, error)

	// Get retrieves a single document by ID within a MAT scope.
	// Returns ErrNotFound if the document doesn't exist for that MAT.
	Get(ctx context.Context, matID string, id core.ID) (*core.NewsletterDocument, error)

	// ListByMAT retrieves all documents belonging to a MAT, newest fetch
	// first. Documents of other MATs are never returned.
	ListByMAT(ctx context.Context, matID string) ([]*core.NewsletterDocument, error)

	// GetVersions retrieves all stored versions of a source URL for a MAT,
	// newest fetch first. Versions are distinguished by content hash.
	GetVersions(ctx context.Context, matID, sourceURL string) ([]*core.NewsletterDocument, error)

	// Close releases resources held by the repository.
	Close() error
}

// SourcePageRepository tracks known newsletter URLs and their most recent
// fetch outcome. Implementations must be thread-safe.
type SourcePageRepository interface {
	// Upsert inserts or replaces the page keyed by (MATID, URL). Calling
	// Upsert twice for the same URL never creates a second row.
	Upsert(ctx context.Context, page *core.SourcePage) error

	// Get retrieves the page for (matID, url).
	// Returns ErrNotFound if the URL has never been scheduled.
	Get(ctx context.Context, matID, url string) (*core.SourcePage, error)

	// ListByMAT retrieves all known pages for a MAT, ordered by URL.
	ListByMAT(ctx context.Context, matID string) ([]*core.SourcePage, error)

	// Close releases resources held by the repository.
	Close() error
}
