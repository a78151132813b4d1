package badger

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/edquery/matnews/core"
	"github.com/edquery/matnews/storage"
)

// SourcePageRepository implements storage.SourcePageRepository for BadgerDB.
type SourcePageRepository struct {
	backend *Backend
}

var _ storage.SourcePageRepository = (*SourcePageRepository)(nil)

// NewSourcePageRepository creates a new SourcePageRepository.
func NewSourcePageRepository(backend *Backend) *SourcePageRepository {
	return &SourcePageRepository{backend: backend}
}

// Close releases resources held by the repository.
func (r *SourcePageRepository) Close() error {
	return nil
}

// Upsert inserts or replaces the page keyed by (MATID, URL).
func (r *SourcePageRepository) Upsert(ctx context.Context, page *core.SourcePage) error {
	if err := core.ValidateSourcePage(page); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSourcePageKey(page.MATID, page.URL)
		if err := tx.Set(key, storage.MarshalSourcePage(page)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Get retrieves the page for (matID, url).
func (r *SourcePageRepository) Get(ctx context.Context, matID, url string) (*core.SourcePage, error) {
	var page *core.SourcePage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSourcePageKey(matID, url))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			page, err = storage.UnmarshalSourcePage(val)
			return err
		})
	}, false)
	return page, err
}

// ListByMAT retrieves all known pages for a MAT, ordered by URL.
func (r *SourcePageRepository) ListByMAT(ctx context.Context, matID string) ([]*core.SourcePage, error) {
	if matID == "" {
		return nil, storage.ErrInvalidQuery
	}

	var pages []*core.SourcePage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSourcePagePrefix(matID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				page, err := storage.UnmarshalSourcePage(val)
				if err != nil {
					return err
				}
				pages = append(pages, page)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Keys are hashed URLs, so key order is not URL order.
	slices.SortFunc(pages, func(a, b *core.SourcePage) int {
		return strings.Compare(a.URL, b.URL)
	})
	return pages, nil
}
