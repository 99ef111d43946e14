package cart

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bookwise/bookwise/internal/embedding"
	"github.com/bookwise/bookwise/internal/store"
)

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Open(filepath.Join(dir, "db", "documents.db"), filepath.Join(dir, "indices"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	c, err := New(context.Background(), s, embedding.NewMockEmbedder(8))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestAdd_Idempotent(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()

	added, err := c.Add(ctx, "1984")
	if err != nil {
		t.Fatal(err)
	}
	if !added {
		t.Error("first add should report added=true")
	}

	added, err = c.Add(ctx, "1984")
	if err != nil {
		t.Fatal(err)
	}
	if added {
		t.Error("second add should report added=false")
	}

	items, err := c.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("items: got %d, want 1", len(items))
	}
	if items[0].Title != "1984" {
		t.Errorf("title: got %q", items[0].Title)
	}
}

func TestAdd_EmptyTitle(t *testing.T) {
	c := newTestCart(t)
	if _, err := c.Add(context.Background(), ""); err == nil {
		t.Error("empty title should fail")
	}
}

func TestAdd_ConcurrentSameTitle(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Add(ctx, "1984")
		}()
	}
	wg.Wait()

	items, err := c.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Errorf("concurrent adds left %d entries, want 1", len(items))
	}
}

func TestRemove(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()
	if _, err := c.Add(ctx, "1984"); err != nil {
		t.Fatal(err)
	}

	removed, err := c.Remove(ctx, "1984")
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Error("remove of present title should report removed=true")
	}
	items, _ := c.GetAll(ctx)
	if len(items) != 0 {
		t.Errorf("items after remove: got %d", len(items))
	}
}

func TestRemove_MissingTitleIsNotAnError(t *testing.T) {
	c := newTestCart(t)
	removed, err := c.Remove(context.Background(), "qqqqq")
	if err != nil {
		t.Fatalf("removing a missing title should not error: %v", err)
	}
	if removed {
		t.Error("removed should be false for a missing title")
	}
}

func TestClear_ImmediatelyVisible(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()
	if _, err := c.Add(ctx, "1984"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Add(ctx, "Moby-Dick"); err != nil {
		t.Fatal(err)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	items, err := c.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("cart should read empty right after clear, got %d items", len(items))
	}

	// The cart stays usable after clearing.
	added, err := c.Add(ctx, "1984")
	if err != nil || !added {
		t.Errorf("add after clear: added=%v err=%v", added, err)
	}
}

func TestSearch(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()
	if _, err := c.Add(ctx, "1984"); err != nil {
		t.Fatal(err)
	}
	items, err := c.Search(ctx, "1984")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Title != "1984" {
		t.Errorf("got %d items", len(items))
	}
}
