package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored documents.
// It is derived deterministically from document identity, so the same
// (MAT, URL, content hash) triple always maps to the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// HashContent computes the content fingerprint of normalized newsletter
// text: the hex-encoded BLAKE2b-256 digest. Identical input always produces
// the identical fingerprint across runs.
func HashContent(text string) string {
	h, _ := blake2b.New(32, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// FetchStatus records the outcome of the most recent logical fetch of a
// source page, covering all of that fetch's internal retries.
type FetchStatus int

const (
	// FetchStatusOK means the page was fetched and extracted successfully.
	FetchStatusOK FetchStatus = iota + 1
	// FetchStatusFailed means the fetch failed terminally, either a
	// permanent error or exhausted retries.
	FetchStatusFailed
	// FetchStatusUnusable means the page was fetched but extraction produced
	// no usable text.
	FetchStatusUnusable
)

// MAT is a Multi-Academy Trust: the tenant under which newsletters are
// grouped. MATs are immutable reference data supplied by configuration and
// never mutated by the pipeline.
type MAT struct {
	ID       string
	Name     string
	LogoURL  string
	SeedURLs []string
}

// SourcePage tracks a known newsletter URL for a MAT. One row per URL per
// MAT, updated on every logical fetch so backoff decisions survive across
// runs. Rows are never deleted.
type SourcePage struct {
	MATID            string
	URL              string
	LastFetchAttempt time.Time
	LastStatus       FetchStatus
	LastError        string
}

// NewsletterDocument is the extracted content of one fetched newsletter
// page. Documents are immutable once stored: a re-fetch yielding the same
// ContentHash is a no-op, while a different hash for the same URL appends a
// new document, forming a version history.
type NewsletterDocument struct {
	Id          ID
	MATID       string
	SourceURL   string
	ContentHash string
	Title       string
	Text        string
	Links       []string
	FetchedAt   time.Time
	InsertedAt  time.Time
}

// DocumentID derives the deterministic ID for a document from its identity
// triple. Two documents with the same MAT, URL and content hash collide by
// construction, which is what makes storage inserts idempotent.
func DocumentID(matID, sourceURL, contentHash string) ID {
	return IDFromContent(matID + "|" + sourceURL + "|" + contentHash)
}

// RetrievedPassage is one scored retrieval hit. It lives only for the
// duration of a single answer-synthesis call.
type RetrievedPassage struct {
	Document *NewsletterDocument
	Score    float32
	Excerpt  string
}

// Answer is the synthesized reply to a question about a MAT. CitedURLs
// contains only URLs that appeared in the retrieved passages.
type Answer struct {
	Text      string
	CitedURLs []string
}

// IngestSummary reports the outcome of one batch ingestion run.
type IngestSummary struct {
	Fetched      int // newly stored documents
	Deduplicated int // fetches whose content was already stored
	Failed       int // fetch or extraction failures
}
