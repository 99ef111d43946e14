package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookwise/bookwise/internal/models"
	"github.com/bookwise/bookwise/internal/vector"
)

const defaultTopK = 5

// searchCandidates bounds how many hits one text query phase can return.
// Collections here are small; this just keeps Bleve request sizes sane.
const searchCandidates = 100

// DocumentStore implements Store over SQLite, Bleve, and an in-memory
// vector index per collection.
type DocumentStore struct {
	db          *docDB
	indexRoot   string
	collections map[string]*collection
	mu          sync.RWMutex
	logger      *zap.Logger
}

type collection struct {
	schema  CollectionSchema
	text    *textIndex
	vectors vector.Index
}

// Option configures a DocumentStore.
type Option func(*DocumentStore)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(s *DocumentStore) { s.logger = l }
}

// Open opens the document store: the SQLite database at dbPath and Bleve
// indices under indexRoot (one subdirectory per collection).
func Open(dbPath, indexRoot string, opts ...Option) (*DocumentStore, error) {
	db, err := openDocDB(dbPath)
	if err != nil {
		return nil, err
	}
	s := &DocumentStore{
		db:          db,
		indexRoot:   indexRoot,
		collections: make(map[string]*collection),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// EnsureCollection registers a collection and provisions its indices.
// Idempotent: calling it again for a known collection is a no-op and never
// destroys data. The vector index is rebuilt from SQLite, and a freshly
// created (or wiped) Bleve index is repopulated from SQLite as well.
func (s *DocumentStore) EnsureCollection(ctx context.Context, schema CollectionSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[schema.Name]; ok {
		return nil
	}
	if schema.Name == "" {
		return fmt.Errorf("collection name must not be empty")
	}
	if schema.VectorDim <= 0 {
		return fmt.Errorf("collection %q: vector dimension must be positive", schema.Name)
	}

	text, err := openTextIndex(filepath.Join(s.indexRoot, schema.Name), schema.TextFields)
	if err != nil {
		return fmt.Errorf("collection %q: %w", schema.Name, err)
	}
	vectors, err := vector.NewMemoryIndex(schema.VectorDim)
	if err != nil {
		_ = text.Close()
		return fmt.Errorf("collection %q: %w", schema.Name, err)
	}
	c := &collection{schema: schema, text: text, vectors: vectors}
	if err := s.rebuild(ctx, c); err != nil {
		_ = text.Close()
		return fmt.Errorf("collection %q: rebuild: %w", schema.Name, err)
	}
	s.collections[schema.Name] = c
	if s.logger != nil {
		s.logger.Debug("collection ready",
			zap.String("collection", schema.Name),
			zap.Int("vector_dim", schema.VectorDim),
			zap.Int("vectors", vectors.Size()),
		)
	}
	return nil
}

// rebuild reloads the vector index from SQLite and repopulates the text
// index when it is empty but the database is not (e.g. the index directory
// was removed).
func (s *DocumentStore) rebuild(ctx context.Context, c *collection) error {
	docs, err := s.db.List(ctx, c.schema.Name, 1<<30)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(docs))
	vecs := make([][]float32, 0, len(docs))
	for _, doc := range docs {
		if len(doc.Vector) != c.schema.VectorDim {
			return fmt.Errorf("stored vector for %s has dimension %d, expected %d",
				doc.ID, len(doc.Vector), c.schema.VectorDim)
		}
		ids = append(ids, doc.ID)
		vecs = append(vecs, doc.Vector)
	}
	if err := c.vectors.Add(ctx, ids, vecs); err != nil {
		return err
	}
	count, err := c.text.DocCount()
	if err != nil {
		return err
	}
	if count == 0 {
		for _, doc := range docs {
			if err := c.text.Index(ctx, doc.ID, doc.Fields); err != nil {
				return err
			}
		}
	}
	return nil
}

// get returns the collection if registered.
func (s *DocumentStore) get(name string) (*collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[name]
	return c, ok
}

// ensureForWrite returns the collection, deriving a schema from the document
// shape when the collection was never registered. This keeps the store
// usable without an explicit provisioning step.
func (s *DocumentStore) ensureForWrite(ctx context.Context, name string, doc *models.Document) (*collection, error) {
	if c, ok := s.get(name); ok {
		return c, nil
	}
	fields := make([]string, 0, len(doc.Fields))
	for f := range doc.Fields {
		fields = append(fields, f)
	}
	schema := CollectionSchema{Name: name, TextFields: fields, VectorDim: len(doc.Vector)}
	if err := s.EnsureCollection(ctx, schema); err != nil {
		return nil, err
	}
	c, _ := s.get(name)
	return c, nil
}

// Put appends a document. The document's vector must match the collection
// dimension; the ID is generated when empty. No duplicate check is done.
func (s *DocumentStore) Put(ctx context.Context, name string, doc *models.Document) error {
	c, err := s.ensureForWrite(ctx, name, doc)
	if err != nil {
		return err
	}
	if len(doc.Vector) != c.schema.VectorDim {
		return fmt.Errorf("put %q: vector dimension %d, expected %d", name, len(doc.Vector), c.schema.VectorDim)
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if err := s.db.Insert(ctx, name, doc); err != nil {
		return fmt.Errorf("put %q: %w", name, err)
	}
	if err := c.text.Index(ctx, doc.ID, doc.Fields); err != nil {
		return fmt.Errorf("put %q: text index: %w", name, err)
	}
	if err := c.vectors.Add(ctx, []string{doc.ID}, [][]float32{doc.Vector}); err != nil {
		return fmt.Errorf("put %q: vector index: %w", name, err)
	}
	return nil
}

// GetAll returns up to limit documents. Missing collections read as empty.
func (s *DocumentStore) GetAll(ctx context.Context, name string, limit int) ([]*models.Document, error) {
	if _, ok := s.get(name); !ok {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultGetAllLimit
	}
	return s.db.List(ctx, name, limit)
}

// SearchText runs the two-phase fallback search.
//
// Phase 1 is a conjunctive match: every supplied non-empty field must match.
// When it produces at least one hit those hits are returned and the fallback
// never runs, because an exact multi-field query carries the user's explicit
// intent. Phase 2 trades precision for recall: the concatenation of all
// supplied values is matched disjunctively against every text field.
func (s *DocumentStore) SearchText(ctx context.Context, name string, fieldQueries map[string]string) ([]*Match, error) {
	c, ok := s.get(name)
	if !ok {
		return nil, nil
	}

	nonEmpty := make(map[string]string)
	values := make([]string, 0, len(fieldQueries))
	for _, field := range c.schema.TextFields {
		if v := strings.TrimSpace(fieldQueries[field]); v != "" {
			nonEmpty[field] = v
			values = append(values, v)
		}
	}
	if len(nonEmpty) == 0 {
		docs, err := s.db.List(ctx, name, DefaultGetAllLimit)
		if err != nil {
			return nil, err
		}
		return docMatches(docs), nil
	}

	hits, err := c.text.SearchConjunction(ctx, nonEmpty, searchCandidates)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		hits, err = c.text.SearchAny(ctx, strings.Join(values, " "), searchCandidates)
		if err != nil {
			return nil, err
		}
	}
	return s.resolveHits(ctx, name, hits)
}

// SearchVector ranks every stored document by cosine similarity to query and
// returns the top topK. Scores are cosine + 1.0 so downstream consumers see
// non-negative relevance; two identical vectors score exactly 2.0.
func (s *DocumentStore) SearchVector(ctx context.Context, name string, query []float32, topK int) ([]*Match, error) {
	c, ok := s.get(name)
	if !ok {
		return nil, nil
	}
	if topK <= 0 {
		topK = defaultTopK
	}
	results, err := c.vectors.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	matches := make([]*Match, 0, len(results))
	for _, r := range results {
		doc, err := s.db.Get(ctx, name, r.ID)
		if err != nil {
			continue
		}
		matches = append(matches, &Match{Document: doc, Score: r.Score + 1.0})
	}
	return matches, nil
}

// DeleteByField deletes at most one document: the first hit, by search
// ranking, whose field matches value. Returns ErrNotFound when none matches.
func (s *DocumentStore) DeleteByField(ctx context.Context, name, field, value string) error {
	c, ok := s.get(name)
	if !ok {
		return ErrNotFound
	}
	hits, err := c.text.SearchField(ctx, field, value, 1)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		return ErrNotFound
	}
	return s.deleteByID(ctx, c, hits[0].ID)
}

func (s *DocumentStore) deleteByID(ctx context.Context, c *collection, id string) error {
	if err := s.db.Delete(ctx, c.schema.Name, id); err != nil {
		return fmt.Errorf("delete %q: %w", c.schema.Name, err)
	}
	if err := c.text.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %q: text index: %w", c.schema.Name, err)
	}
	if err := c.vectors.Remove(ctx, []string{id}); err != nil {
		return fmt.Errorf("delete %q: vector index: %w", c.schema.Name, err)
	}
	return nil
}

// Clear deletes every document in the collection. It returns only after all
// three indices are empty, so a GetAll immediately after sees no documents.
func (s *DocumentStore) Clear(ctx context.Context, name string) error {
	c, ok := s.get(name)
	if !ok {
		return nil
	}
	ids, err := s.db.IDs(ctx, name)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := c.text.Delete(ctx, id); err != nil {
			return fmt.Errorf("clear %q: text index: %w", name, err)
		}
	}
	if err := s.db.DeleteAll(ctx, name); err != nil {
		return fmt.Errorf("clear %q: %w", name, err)
	}
	if err := c.vectors.Clear(ctx); err != nil {
		return fmt.Errorf("clear %q: vector index: %w", name, err)
	}
	return nil
}

// Count returns the number of documents in the collection.
func (s *DocumentStore) Count(ctx context.Context, name string) (int64, error) {
	if _, ok := s.get(name); !ok {
		return 0, nil
	}
	return s.db.Count(ctx, name)
}

// Close closes every text index and the database.
func (s *DocumentStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for _, c := range s.collections {
		if err := c.text.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// resolveHits fetches the documents behind text hits, preserving hit order.
func (s *DocumentStore) resolveHits(ctx context.Context, name string, hits []*textHit) ([]*Match, error) {
	matches := make([]*Match, 0, len(hits))
	for _, hit := range hits {
		doc, err := s.db.Get(ctx, name, hit.ID)
		if err != nil {
			// Text index can briefly know about documents the database no
			// longer has; skip rather than fail the whole search.
			continue
		}
		matches = append(matches, &Match{Document: doc, Score: hit.Score})
	}
	return matches, nil
}

func docMatches(docs []*models.Document) []*Match {
	matches := make([]*Match, len(docs))
	for i, doc := range docs {
		matches[i] = &Match{Document: doc, Score: 0}
	}
	return matches
}
