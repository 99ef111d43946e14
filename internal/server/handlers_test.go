package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/bookwise/bookwise/internal/action"
	"github.com/bookwise/bookwise/internal/assistant"
	"github.com/bookwise/bookwise/internal/cart"
	"github.com/bookwise/bookwise/internal/catalog"
	"github.com/bookwise/bookwise/internal/config"
	"github.com/bookwise/bookwise/internal/dialogue"
	"github.com/bookwise/bookwise/internal/embedding"
	"github.com/bookwise/bookwise/internal/models"
	"github.com/bookwise/bookwise/internal/seed"
	"github.com/bookwise/bookwise/internal/store"
)

func newTestServer(t *testing.T, engine dialogue.Engine) *Server {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Open(filepath.Join(dir, "db", "documents.db"), filepath.Join(dir, "indices"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })

	embedder := embedding.NewMockEmbedder(8)
	ctx := context.Background()
	cat, err := catalog.New(ctx, s, embedder)
	if err != nil {
		t.Fatal(err)
	}
	crt, err := cart.New(ctx, s, embedder)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range []models.BookInput{
		{Title: "1984", Author: "George Orwell", Genre: "Classic"},
		{Title: "Animal Farm", Author: "George Orwell", Genre: "Classic"},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "Fantasy"},
	} {
		if _, err := cat.Index(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	if engine == nil {
		engine = dialogue.NewStubEngine("Hello!")
	}
	asst := assistant.New(engine, cat, crt, action.NewParser(action.GrammarFull))
	seeder := seed.NewSeeder(cat, zap.NewNop())
	return NewServer(asst, cat, crt, seeder, action.GrammarFull,
		&config.ServerConfig{Host: "localhost", Port: 8080}, zap.NewNop())
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.handleHealth(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	srv := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	srv.handleStatus(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Books     int64  `json:"books"`
		CartItems int    `json:"cart_items"`
		Grammar   string `json:"grammar"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Books != 3 {
		t.Errorf("books: got %d, want 3", out.Books)
	}
	if out.Grammar != "full" {
		t.Errorf("grammar: got %q", out.Grammar)
	}
}

func TestHandleCatalogList(t *testing.T) {
	srv := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	w := httptest.NewRecorder()
	srv.handleCatalogList(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Books []*models.Book `json:"books"`
		Count int            `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 3 || len(out.Books) != 3 {
		t.Errorf("got count=%d len=%d", out.Count, len(out.Books))
	}
}

func TestHandleCatalogSearch(t *testing.T) {
	srv := newTestServer(t, nil)
	body, _ := json.Marshal(map[string]string{"author": "George Orwell"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/search", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleCatalogSearch(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Books []*models.Book `json:"books"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Books) != 2 {
		t.Errorf("books: got %d, want 2", len(out.Books))
	}
}

func TestHandleCatalogSearch_InvalidBody(t *testing.T) {
	srv := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/search", strings.NewReader("{"))
	w := httptest.NewRecorder()
	srv.handleCatalogSearch(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleCatalogIndex(t *testing.T) {
	srv := newTestServer(t, nil)
	body, _ := json.Marshal(models.BookInput{Title: "Moby-Dick", Author: "Herman Melville", Genre: "Fiction"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/books", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleCatalogIndex(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", w.Code)
	}
	var book models.Book
	if err := json.NewDecoder(w.Body).Decode(&book); err != nil {
		t.Fatal(err)
	}
	if book.ID == "" || book.Title != "Moby-Dick" {
		t.Errorf("book: %+v", book)
	}
}

func TestHandleCatalogIndex_MissingTitle(t *testing.T) {
	srv := newTestServer(t, nil)
	body, _ := json.Marshal(models.BookInput{Author: "Anonymous"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/books", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleCatalogIndex(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleCatalogRecommend(t *testing.T) {
	srv := newTestServer(t, nil)
	body, _ := json.Marshal(map[string]interface{}{"title": "1984", "top_k": 2})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/recommend", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleCatalogRecommend(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Recommendations []*catalog.Recommendation `json:"recommendations"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Recommendations) != 2 {
		t.Errorf("recommendations: got %d, want 2", len(out.Recommendations))
	}
}

func TestHandleCatalogRecommend_UnknownTitle(t *testing.T) {
	srv := newTestServer(t, nil)
	body, _ := json.Marshal(map[string]string{"title": "qqqqq"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/recommend", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleCatalogRecommend(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestHandleCart_AddListRemove(t *testing.T) {
	srv := newTestServer(t, nil)

	body, _ := json.Marshal(map[string]string{"title": "1984"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/cart", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleCartAdd(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("first add status: got %d, want 201", w.Code)
	}

	// Adding the same title again is not an error, just not a second entry.
	body, _ = json.Marshal(map[string]string{"title": "1984"})
	r = httptest.NewRequest(http.MethodPost, "/api/v1/cart", bytes.NewReader(body))
	w = httptest.NewRecorder()
	srv.handleCartAdd(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("repeat add status: got %d, want 200", w.Code)
	}
	var addOut struct {
		Added bool `json:"added"`
	}
	if err := json.NewDecoder(w.Body).Decode(&addOut); err != nil {
		t.Fatal(err)
	}
	if addOut.Added {
		t.Error("repeat add should report added=false")
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w = httptest.NewRecorder()
	srv.handleCartList(w, r)
	var listOut struct {
		Items []*models.CartItem `json:"items"`
		Count int                `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&listOut); err != nil {
		t.Fatal(err)
	}
	if listOut.Count != 1 {
		t.Fatalf("cart count: got %d, want 1", listOut.Count)
	}

	r = httptest.NewRequest(http.MethodDelete, "/api/v1/cart?title=1984", nil)
	w = httptest.NewRecorder()
	srv.handleCartRemove(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("remove status: got %d", w.Code)
	}
	var rmOut struct {
		Removed bool `json:"removed"`
	}
	if err := json.NewDecoder(w.Body).Decode(&rmOut); err != nil {
		t.Fatal(err)
	}
	if !rmOut.Removed {
		t.Error("remove should report removed=true")
	}
}

func TestHandleCartRemove_MissingTitle(t *testing.T) {
	srv := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	srv.handleCartRemove(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleCartClear(t *testing.T) {
	srv := newTestServer(t, nil)
	body, _ := json.Marshal(map[string]string{"title": "1984"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/cart", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleCartAdd(w, r)

	r = httptest.NewRequest(http.MethodPost, "/api/v1/cart/clear", nil)
	w = httptest.NewRecorder()
	srv.handleCartClear(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("clear status: got %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w = httptest.NewRecorder()
	srv.handleCartList(w, r)
	var listOut struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&listOut); err != nil {
		t.Fatal(err)
	}
	if listOut.Count != 0 {
		t.Errorf("cart count after clear: got %d", listOut.Count)
	}
}

func TestHandleChat_NewConversationGetsPreamble(t *testing.T) {
	engine := dialogue.NewStubEngine(
		"Checking.[ACTION: Search; BOOK_TITLE: ; AUTHOR: George Orwell; GENRE: ]")
	srv := newTestServer(t, engine)

	body, _ := json.Marshal(map[string]interface{}{"query": "Anything by Orwell?"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleChat(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Messages []models.Message   `json:"messages"`
		Reply    string             `json:"reply"`
		Cart     []*models.CartItem `json:"cart"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	// system prompt + catalog listing + user + assistant.
	if len(out.Messages) != 4 {
		t.Fatalf("messages: got %d, want 4", len(out.Messages))
	}
	if out.Messages[0].Role != models.RoleSystem || out.Messages[1].Role != models.RoleSystem {
		t.Error("new conversation should start with the system preamble")
	}
	if !strings.Contains(out.Messages[1].Content, "Here's the list of books available:") {
		t.Errorf("catalog listing missing: %q", out.Messages[1].Content)
	}
	if !strings.Contains(out.Reply, "I found multiple books:") {
		t.Errorf("reply: %q", out.Reply)
	}
	if strings.Contains(out.Reply, "[ACTION") {
		t.Errorf("tag leaked into reply: %q", out.Reply)
	}
}

func TestHandleChat_ExistingConversationKept(t *testing.T) {
	engine := dialogue.NewStubEngine("Sure thing.")
	srv := newTestServer(t, engine)

	history := []models.Message{
		{Role: models.RoleSystem, Content: "preamble"},
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "hello"},
	}
	body, _ := json.Marshal(map[string]interface{}{"messages": history, "query": "Thanks"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleChat(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Messages []models.Message `json:"messages"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Messages) != 5 {
		t.Fatalf("messages: got %d, want 5", len(out.Messages))
	}
	if out.Messages[0].Content != "preamble" {
		t.Error("caller-owned history should be preserved, not replaced")
	}
}

func TestHandleChat_MissingQuery(t *testing.T) {
	srv := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	srv.handleChat(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}
