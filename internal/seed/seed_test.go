package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bookwise/bookwise/internal/catalog"
	"github.com/bookwise/bookwise/internal/embedding"
	"github.com/bookwise/bookwise/internal/store"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Open(filepath.Join(dir, "db", "documents.db"), filepath.Join(dir, "indices"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	cat, err := catalog.New(context.Background(), s, embedding.NewMockEmbedder(8))
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeSeedFile(t, `
books:
  - title: "1984"
    author: "George Orwell"
    genre: "Classic"
  - title: "The Hobbit"
    author: "J.R.R. Tolkien"
    genre: "Fantasy"
`)
	f, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Books) != 2 {
		t.Fatalf("books: got %d, want 2", len(f.Books))
	}
	if f.Books[0].Title != "1984" || f.Books[0].Author != "George Orwell" {
		t.Errorf("first book: %+v", f.Books[0])
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := writeSeedFile(t, "books: [not: valid: yaml")
	if _, err := LoadFile(path); err == nil {
		t.Error("malformed yaml should fail")
	}
}

func TestSeederRun_ReplacesCatalog(t *testing.T) {
	cat := newTestCatalog(t)
	seeder := NewSeeder(cat, nil)
	ctx := context.Background()

	first := writeSeedFile(t, `
books:
  - title: "1984"
    author: "George Orwell"
    genre: "Classic"
  - title: "Animal Farm"
    author: "George Orwell"
    genre: "Classic"
`)
	n, err := seeder.Run(ctx, first)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("seeded: got %d, want 2", n)
	}

	second := writeSeedFile(t, `
books:
  - title: "The Hobbit"
    author: "J.R.R. Tolkien"
    genre: "Fantasy"
`)
	n, err = seeder.Run(ctx, second)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("re-seeded: got %d, want 1", n)
	}

	books, err := cat.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 1 || books[0].Title != "The Hobbit" {
		t.Errorf("catalog should hold only the second file's books: got %d", len(books))
	}
}

func TestSeederRun_BadFileLeavesCatalogReadable(t *testing.T) {
	cat := newTestCatalog(t)
	seeder := NewSeeder(cat, nil)
	ctx := context.Background()

	if _, err := seeder.Run(ctx, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing seed file should fail")
	}
	if _, err := cat.GetAll(ctx); err != nil {
		t.Errorf("catalog should still be usable: %v", err)
	}
}
