// Package vector provides an in-memory vector index with brute-force cosine search.
package vector

import "context"

// Index defines vector storage and similarity search for one collection.
type Index interface {
	Add(ctx context.Context, ids []string, vectors [][]float32) error
	Search(ctx context.Context, query []float32, k int) ([]*Result, error)
	Remove(ctx context.Context, ids []string) error
	Clear(ctx context.Context) error
	Size() int
}

// Result is a single similarity hit. Score is cosine similarity in [-1, 1].
type Result struct {
	ID    string
	Score float64
}
