// Package store implements the document store: two independently-schemaed
// collections (catalog and cart) with exact/fuzzy multi-field text search
// and vector-similarity ranking. SQLite is the system of record; a Bleve
// index per collection answers text queries and an in-memory vector index
// answers similarity queries.
package store

import (
	"context"
	"errors"

	"github.com/bookwise/bookwise/internal/models"
)

// DefaultGetAllLimit bounds GetAll when the caller passes no limit.
const DefaultGetAllLimit = 50

// ErrNotFound is returned when a lookup-then-delete finds no matching document.
var ErrNotFound = errors.New("document not found")

// CollectionSchema describes one collection: its text fields and the
// dimension of its vector field.
type CollectionSchema struct {
	Name       string
	TextFields []string
	VectorDim  int
}

// Match is one search hit. Score is the Bleve relevance score for text
// searches, or cosine similarity + 1.0 (range [0, 2]) for vector searches.
type Match struct {
	Document *models.Document
	Score    float64
}

// Store is the document store contract the catalog and cart indices build on.
type Store interface {
	// EnsureCollection registers a collection and provisions its indices.
	// Idempotent: an existing collection is left untouched.
	EnsureCollection(ctx context.Context, schema CollectionSchema) error

	// Put appends a document. No duplicate check; duplicate suppression is
	// the caller's responsibility. A missing collection is created from the
	// document's shape on first write.
	Put(ctx context.Context, collection string, doc *models.Document) error

	// GetAll returns up to limit documents in implementation-defined order.
	// limit <= 0 means DefaultGetAllLimit. A missing collection reads as empty.
	GetAll(ctx context.Context, collection string, limit int) ([]*models.Document, error)

	// SearchText runs the two-phase fallback search: first a conjunctive
	// match across all non-empty field queries; if that yields no hits, a
	// disjunctive match of all supplied values against every text field.
	// With no non-empty field queries it degenerates to GetAll.
	SearchText(ctx context.Context, collection string, fieldQueries map[string]string) ([]*Match, error)

	// SearchVector ranks all documents by cosine similarity to query,
	// descending, and returns the top topK (default 5 when topK <= 0).
	SearchVector(ctx context.Context, collection string, query []float32, topK int) ([]*Match, error)

	// DeleteByField deletes at most one document whose field matches value
	// (first hit by search ranking). Returns ErrNotFound when nothing matches.
	DeleteByField(ctx context.Context, collection, field, value string) error

	// Clear deletes every document in the collection and returns only once
	// the deletion is complete: GetAll immediately after returns empty.
	Clear(ctx context.Context, collection string) error

	// Count returns the number of documents in the collection.
	Count(ctx context.Context, collection string) (int64, error)

	Close() error
}
