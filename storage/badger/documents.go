package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/edquery/matnews/core"
	"github.com/edquery/matnews/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
//
// Document identity is content-derived (core.DocumentID), so an insert of
// already-stored content targets the exact same key. Put exploits this:
// inserting is "set if absent", and a concurrent insert of the same identity
// surfaces as a transaction conflict that resolves to PutDeduplicated.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) *DocumentRepository {
	return &DocumentRepository{backend: backend}
}

// Close releases resources held by the repository.
func (r *DocumentRepository) Close() error {
	return nil
}

// Put inserts a document if no document with the same (MAT, URL, content
// hash) identity exists. The write is append-only: existing rows are never
// touched.
func (r *DocumentRepository) Put(ctx context.Context, doc *core.NewsletterDocument) (storage.PutResult, error) {
	if err := core.ValidateNewsletterDocument(doc); err != nil {
		return 0, err
	}

	doc.Id = core.DocumentID(doc.MATID, doc.SourceURL, doc.ContentHash)
	result := storage.PutInserted

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentKey(doc.MATID, doc.Id)

		// Read establishes the conflict footprint for concurrent inserts
		// of the same identity.
		_, err := tx.Get(key)
		if err == nil {
			result = storage.PutDeduplicated
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		doc.InsertedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalNewsletterDocument(doc)); err != nil {
			return err
		}

		dateKey := makeDocumentDateKey(doc.MATID, doc.FetchedAt, doc.Id)
		if err := tx.Set(dateKey, storage.MarshalID(doc.Id)); err != nil {
			return err
		}

		versionKey := makeDocumentVersionKey(doc.MATID, doc.SourceURL, doc.FetchedAt, doc.Id)
		if err := tx.Set(versionKey, storage.MarshalID(doc.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	if errors.Is(err, badger.ErrConflict) {
		// A concurrent Put committed the identical row first.
		return storage.PutDeduplicated, nil
	}
	if err != nil {
		return 0, err
	}
	return result, nil
}

// Get retrieves a single document by ID within a MAT scope.
func (r *DocumentRepository) Get(ctx context.Context, matID string, id core.ID) (*core.NewsletterDocument, error) {
	var doc *core.NewsletterDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		doc, err = r.readDocument(tx, makeDocumentKey(matID, id))
		if err != nil {
			return err
		}
		if doc == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return doc, err
}

// ListByMAT retrieves all documents belonging to a MAT, newest fetch first.
func (r *DocumentRepository) ListByMAT(ctx context.Context, matID string) ([]*core.NewsletterDocument, error) {
	if matID == "" {
		return nil, storage.ErrInvalidQuery
	}

	var docs []*core.NewsletterDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids, err := r.scanIDIndex(tx, makeDocumentDatePrefix(matID))
		if err != nil {
			return err
		}
		// The recency index sorts ascending; newest first means reversed.
		slices.Reverse(ids)

		docs = make([]*core.NewsletterDocument, 0, len(ids))
		for _, id := range ids {
			doc, err := r.readDocument(tx, makeDocumentKey(matID, id))
			if err != nil {
				return err
			}
			if doc != nil {
				docs = append(docs, doc)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return docs, nil
}

// GetVersions retrieves all stored versions of a source URL for a MAT,
// newest fetch first.
func (r *DocumentRepository) GetVersions(ctx context.Context, matID, sourceURL string) ([]*core.NewsletterDocument, error) {
	if matID == "" || sourceURL == "" {
		return nil, storage.ErrInvalidQuery
	}

	var docs []*core.NewsletterDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids, err := r.scanIDIndex(tx, makeDocumentVersionPrefix(matID, sourceURL))
		if err != nil {
			return err
		}
		slices.Reverse(ids)

		docs = make([]*core.NewsletterDocument, 0, len(ids))
		for _, id := range ids {
			doc, err := r.readDocument(tx, makeDocumentKey(matID, id))
			if err != nil {
				return err
			}
			if doc != nil {
				docs = append(docs, doc)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return docs, nil
}

// scanIDIndex collects document IDs stored under an index prefix, in key
// order.
func (r *DocumentRepository) scanIDIndex(tx *badger.Txn, prefix []byte) ([]core.ID, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var ids []core.ID
	for iter.Rewind(); iter.Valid(); iter.Next() {
		var id core.ID
		err := iter.Item().Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// readDocument reads and deserializes a document, returning nil if the key
// does not exist.
func (r *DocumentRepository) readDocument(tx *badger.Txn, key []byte) (*core.NewsletterDocument, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc *core.NewsletterDocument
	err = item.Value(func(val []byte) error {
		var err error
		doc, err = storage.UnmarshalNewsletterDocument(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
