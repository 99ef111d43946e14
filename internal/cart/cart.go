// Package cart is the typed view over the document store for the shopping
// cart. It enforces the at-most-one-entry-per-title invariant.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/bookwise/bookwise/internal/embedding"
	"github.com/bookwise/bookwise/internal/models"
	"github.com/bookwise/bookwise/internal/store"
)

// Collection is the cart collection name.
const Collection = "cart"

// FieldTitle is the single text field of a cart document.
const FieldTitle = "title"

// Cart manages shopping cart entries. The store itself does not check for
// duplicates, so Add and Remove are search-then-act sequences; mu serializes
// them to keep the uniqueness invariant under concurrent callers.
type Cart struct {
	store    store.Store
	embedder embedding.Embedder
	mu       sync.Mutex
	logger   *zap.Logger
}

// Option configures a Cart.
type Option func(*Cart)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cart) { c.logger = l }
}

// New creates a cart over the given store and embedder and provisions the
// collection.
func New(ctx context.Context, s store.Store, e embedding.Embedder, opts ...Option) (*Cart, error) {
	c := &Cart{store: s, embedder: e}
	for _, opt := range opts {
		opt(c)
	}
	schema := store.CollectionSchema{
		Name:       Collection,
		TextFields: []string{FieldTitle},
		VectorDim:  e.Dimensions(),
	}
	if err := s.EnsureCollection(ctx, schema); err != nil {
		return nil, fmt.Errorf("cart: %w", err)
	}
	return c, nil
}

// Add puts a title in the cart. Idempotent: when the title is already
// present nothing is stored and added is false. An embedding failure aborts
// the call before any write.
func (c *Cart) Add(ctx context.Context, title string) (added bool, err error) {
	if title == "" {
		return false, fmt.Errorf("cart add: title is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, err := c.search(ctx, title)
	if err != nil {
		return false, fmt.Errorf("cart add %q: %w", title, err)
	}
	if len(existing) > 0 {
		if c.logger != nil {
			c.logger.Debug("cart add suppressed, title already present", zap.String("title", title))
		}
		return false, nil
	}

	vec, err := c.embedder.Embed(ctx, title)
	if err != nil {
		return false, fmt.Errorf("cart add %q: %w", title, err)
	}
	if err := embedding.CheckDimensions(vec, c.embedder.Dimensions()); err != nil {
		return false, fmt.Errorf("cart add %q: %w", title, err)
	}
	doc := &models.Document{
		Fields: map[string]string{FieldTitle: title},
		Vector: vec,
	}
	if err := c.store.Put(ctx, Collection, doc); err != nil {
		return false, fmt.Errorf("cart add %q: %w", title, err)
	}
	return true, nil
}

// Remove deletes the entry for title. When no entry matches, removed is
// false and nothing happens.
func (c *Cart) Remove(ctx context.Context, title string) (removed bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, err := c.search(ctx, title)
	if err != nil {
		return false, fmt.Errorf("cart remove %q: %w", title, err)
	}
	if len(existing) == 0 {
		return false, nil
	}
	if err := c.store.DeleteByField(ctx, Collection, FieldTitle, title); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("cart remove %q: %w", title, err)
	}
	return true, nil
}

// GetAll returns the cart contents, bounded by the store's default limit.
func (c *Cart) GetAll(ctx context.Context) ([]*models.CartItem, error) {
	docs, err := c.store.GetAll(ctx, Collection, 0)
	if err != nil {
		return nil, fmt.Errorf("cart get all: %w", err)
	}
	items := make([]*models.CartItem, len(docs))
	for i, doc := range docs {
		items[i] = itemFromDoc(doc)
	}
	return items, nil
}

// Search runs a free-text match against cart titles.
func (c *Cart) Search(ctx context.Context, query string) ([]*models.CartItem, error) {
	matches, err := c.search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("cart search: %w", err)
	}
	items := make([]*models.CartItem, len(matches))
	for i, m := range matches {
		items[i] = itemFromDoc(m.Document)
	}
	return items, nil
}

// Clear removes every cart entry. The store blocks until the deletion is
// visible, so a GetAll right after returns empty.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Clear(ctx, Collection); err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}

func (c *Cart) search(ctx context.Context, query string) ([]*store.Match, error) {
	return c.store.SearchText(ctx, Collection, map[string]string{FieldTitle: query})
}

func itemFromDoc(doc *models.Document) *models.CartItem {
	return &models.CartItem{
		ID:        doc.ID,
		Title:     doc.Field(FieldTitle),
		Vector:    doc.Vector,
		CreatedAt: doc.CreatedAt,
	}
}
