// Package catalog is the typed view over the document store for catalog
// entries: indexing, fallback search, and vector-similarity recommendations.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bookwise/bookwise/internal/embedding"
	"github.com/bookwise/bookwise/internal/models"
	"github.com/bookwise/bookwise/internal/store"
)

// Collection is the catalog collection name.
const Collection = "books"

// Text field names of a catalog document.
const (
	FieldTitle  = "title"
	FieldAuthor = "author"
	FieldGenre  = "genre"
)

// Recommendation is one similar book with its similarity score (cosine + 1.0).
type Recommendation struct {
	Book  *models.Book `json:"book"`
	Score float64      `json:"score"`
}

// Catalog indexes and searches catalog entries. The catalog may contain
// duplicate titles; uniqueness is only a cart concern.
type Catalog struct {
	store       store.Store
	embedder    embedding.Embedder
	topK        int
	excludeSelf bool
	logger      *zap.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Catalog) { c.logger = l }
}

// WithRecommendTopK sets how many similar books Recommend returns by default.
func WithRecommendTopK(k int) Option {
	return func(c *Catalog) {
		if k > 0 {
			c.topK = k
		}
	}
}

// WithExcludeSelf controls whether a book is filtered out of its own
// recommendation list. Default false: the queried book may appear.
func WithExcludeSelf(exclude bool) Option {
	return func(c *Catalog) { c.excludeSelf = exclude }
}

// New creates a catalog over the given store and embedder and provisions the
// collection.
func New(ctx context.Context, s store.Store, e embedding.Embedder, opts ...Option) (*Catalog, error) {
	c := &Catalog{store: s, embedder: e, topK: 5}
	for _, opt := range opts {
		opt(c)
	}
	schema := store.CollectionSchema{
		Name:       Collection,
		TextFields: []string{FieldTitle, FieldAuthor, FieldGenre},
		VectorDim:  e.Dimensions(),
	}
	if err := s.EnsureCollection(ctx, schema); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

// Index embeds the title and stores the book. The vector is derived from the
// title once and never mutated afterwards. An embedding failure aborts the
// call; nothing is stored.
func (c *Catalog) Index(ctx context.Context, input models.BookInput) (*models.Book, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("catalog index: title is required")
	}
	vec, err := c.embedder.Embed(ctx, input.Title)
	if err != nil {
		return nil, fmt.Errorf("catalog index %q: %w", input.Title, err)
	}
	if err := embedding.CheckDimensions(vec, c.embedder.Dimensions()); err != nil {
		return nil, fmt.Errorf("catalog index %q: %w", input.Title, err)
	}
	doc := &models.Document{
		Fields: map[string]string{
			FieldTitle:  input.Title,
			FieldAuthor: input.Author,
			FieldGenre:  input.Genre,
		},
		Vector: vec,
	}
	if err := c.store.Put(ctx, Collection, doc); err != nil {
		return nil, fmt.Errorf("catalog index %q: %w", input.Title, err)
	}
	if c.logger != nil {
		c.logger.Debug("book indexed", zap.String("title", input.Title), zap.String("id", doc.ID))
	}
	return bookFromDoc(doc), nil
}

// Search runs a free-text query against the title field only.
func (c *Catalog) Search(ctx context.Context, query string) ([]*models.Book, error) {
	matches, err := c.store.SearchText(ctx, Collection, map[string]string{FieldTitle: query})
	if err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}
	return booksFromMatches(matches), nil
}

// SearchStructured searches with whichever of title, author, and genre are
// constrained. Empty strings and "none"/"null" placeholders (the dialogue
// engine emits either for absent tag fields) all mean "not constrained";
// with no constraints at all this degenerates to a bounded GetAll.
func (c *Catalog) SearchStructured(ctx context.Context, title, author, genre string) ([]*models.Book, error) {
	fieldQueries := map[string]string{
		FieldTitle:  normalizeConstraint(title),
		FieldAuthor: normalizeConstraint(author),
		FieldGenre:  normalizeConstraint(genre),
	}
	matches, err := c.store.SearchText(ctx, Collection, fieldQueries)
	if err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}
	return booksFromMatches(matches), nil
}

// Recommend returns the topK books most similar to the given book by the
// vector derived from its title. The queried book itself is included when
// stored, unless the catalog was built with WithExcludeSelf.
func (c *Catalog) Recommend(ctx context.Context, book *models.Book, topK int) ([]*Recommendation, error) {
	if topK <= 0 {
		topK = c.topK
	}
	k := topK
	if c.excludeSelf {
		k++
	}
	matches, err := c.store.SearchVector(ctx, Collection, book.Vector, k)
	if err != nil {
		return nil, fmt.Errorf("catalog recommend: %w", err)
	}
	recs := make([]*Recommendation, 0, len(matches))
	for _, m := range matches {
		if c.excludeSelf && m.Document.ID == book.ID {
			continue
		}
		recs = append(recs, &Recommendation{Book: bookFromDoc(m.Document), Score: m.Score})
	}
	if len(recs) > topK {
		recs = recs[:topK]
	}
	return recs, nil
}

// RecommendByTitle looks the title up in the catalog and recommends books
// similar to the best match. Returns store.ErrNotFound when no book matches.
func (c *Catalog) RecommendByTitle(ctx context.Context, title string, topK int) ([]*Recommendation, error) {
	books, err := c.Search(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("catalog recommend %q: %w", title, store.ErrNotFound)
	}
	return c.Recommend(ctx, books[0], topK)
}

// GetAll returns the stored catalog, bounded by the store's default limit.
func (c *Catalog) GetAll(ctx context.Context) ([]*models.Book, error) {
	docs, err := c.store.GetAll(ctx, Collection, 0)
	if err != nil {
		return nil, fmt.Errorf("catalog get all: %w", err)
	}
	books := make([]*models.Book, len(docs))
	for i, doc := range docs {
		books[i] = bookFromDoc(doc)
	}
	return books, nil
}

// Count returns the number of catalog entries.
func (c *Catalog) Count(ctx context.Context) (int64, error) {
	return c.store.Count(ctx, Collection)
}

// Clear removes every catalog entry. Used by seeding to replace the catalog.
func (c *Catalog) Clear(ctx context.Context) error {
	return c.store.Clear(ctx, Collection)
}

// normalizeConstraint collapses absent-ish values to "no constraint".
// The dialogue engine leaves tag fields empty or fills them with a literal
// "None"/"null" depending on the model's mood; all mean the same thing.
func normalizeConstraint(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "", "none", "null":
		return ""
	}
	return v
}

func bookFromDoc(doc *models.Document) *models.Book {
	return &models.Book{
		ID:        doc.ID,
		Title:     doc.Field(FieldTitle),
		Author:    doc.Field(FieldAuthor),
		Genre:     doc.Field(FieldGenre),
		Vector:    doc.Vector,
		CreatedAt: doc.CreatedAt,
	}
}

func booksFromMatches(matches []*store.Match) []*models.Book {
	books := make([]*models.Book, len(matches))
	for i, m := range matches {
		books[i] = bookFromDoc(m.Document)
	}
	return books
}
