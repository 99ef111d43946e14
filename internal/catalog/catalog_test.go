package catalog

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/bookwise/bookwise/internal/embedding"
	"github.com/bookwise/bookwise/internal/models"
	"github.com/bookwise/bookwise/internal/store"
)

func newTestCatalog(t *testing.T, opts ...Option) *Catalog {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Open(filepath.Join(dir, "db", "documents.db"), filepath.Join(dir, "indices"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	cat, err := New(context.Background(), s, embedding.NewMockEmbedder(8), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func seedCatalog(t *testing.T, cat *Catalog) {
	t.Helper()
	ctx := context.Background()
	books := []models.BookInput{
		{Title: "1984", Author: "George Orwell", Genre: "Classic"},
		{Title: "Animal Farm", Author: "George Orwell", Genre: "Classic"},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "Fantasy"},
	}
	for _, b := range books {
		if _, err := cat.Index(ctx, b); err != nil {
			t.Fatal(err)
		}
	}
}

func TestIndexAndGetAll(t *testing.T) {
	cat := newTestCatalog(t)
	seedCatalog(t, cat)

	books, err := cat.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 3 {
		t.Fatalf("books: got %d, want 3", len(books))
	}
	for _, b := range books {
		if b.ID == "" || b.Title == "" {
			t.Errorf("incomplete book: %+v", b)
		}
		if len(b.Vector) != 8 {
			t.Errorf("vector dims: got %d, want 8", len(b.Vector))
		}
	}
	count, err := cat.Count(context.Background())
	if err != nil || count != 3 {
		t.Errorf("count: got %d, %v", count, err)
	}
}

func TestIndex_RequiresTitle(t *testing.T) {
	cat := newTestCatalog(t)
	if _, err := cat.Index(context.Background(), models.BookInput{Author: "Anonymous"}); err == nil {
		t.Error("indexing without a title should fail")
	}
}

func TestSearchStructured_ByAuthor(t *testing.T) {
	cat := newTestCatalog(t)
	seedCatalog(t, cat)

	books, err := cat.SearchStructured(context.Background(), "", "George Orwell", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 2 {
		t.Fatalf("got %d books, want 2", len(books))
	}
}

func TestSearchStructured_PlaceholdersMeanUnconstrained(t *testing.T) {
	cat := newTestCatalog(t)
	seedCatalog(t, cat)
	ctx := context.Background()

	// "", "None", and "null" all mean the field is not constrained, so
	// these three queries must return the same single book.
	variants := [][3]string{
		{"1984", "", ""},
		{"1984", "None", "null"},
		{"1984", "none", "  "},
	}
	for _, v := range variants {
		books, err := cat.SearchStructured(ctx, v[0], v[1], v[2])
		if err != nil {
			t.Fatal(err)
		}
		if len(books) != 1 || books[0].Title != "1984" {
			t.Errorf("query %v: got %d books", v, len(books))
		}
	}
}

func TestSearchStructured_NoConstraintsListsCatalog(t *testing.T) {
	cat := newTestCatalog(t)
	seedCatalog(t, cat)

	books, err := cat.SearchStructured(context.Background(), "", "None", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 3 {
		t.Errorf("unconstrained search: got %d books, want all 3", len(books))
	}
}

func TestRecommend_IncludesQueriedBookByDefault(t *testing.T) {
	cat := newTestCatalog(t)
	seedCatalog(t, cat)

	recs, err := cat.RecommendByTitle(context.Background(), "1984", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) == 0 {
		t.Fatal("no recommendations")
	}
	// The stored book is its own best match with score exactly 2.0.
	if recs[0].Book.Title != "1984" {
		t.Errorf("top recommendation: got %q, want 1984", recs[0].Book.Title)
	}
	if math.Abs(recs[0].Score-2.0) > 1e-6 {
		t.Errorf("self score: got %f, want 2.0", recs[0].Score)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Errorf("scores not descending at %d", i)
		}
	}
}

func TestRecommend_ExcludeSelf(t *testing.T) {
	cat := newTestCatalog(t, WithExcludeSelf(true))
	seedCatalog(t, cat)

	recs, err := cat.RecommendByTitle(context.Background(), "1984", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	for _, r := range recs {
		if r.Book.Title == "1984" {
			t.Error("queried book should be excluded")
		}
	}
}

func TestRecommendByTitle_NotFound(t *testing.T) {
	cat := newTestCatalog(t)
	seedCatalog(t, cat)

	_, err := cat.RecommendByTitle(context.Background(), "qqqqq", 3)
	if err == nil {
		t.Fatal("expected error for unknown title")
	}
}

func TestClear(t *testing.T) {
	cat := newTestCatalog(t)
	seedCatalog(t, cat)
	ctx := context.Background()

	if err := cat.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	books, err := cat.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 0 {
		t.Errorf("books after clear: got %d", len(books))
	}
}
