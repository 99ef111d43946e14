package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bookwise/bookwise/internal/dialogue"
	"github.com/bookwise/bookwise/internal/models"
	"github.com/bookwise/bookwise/internal/store"
)

type chatRequest struct {
	Messages []models.Message `json:"messages"`
	Query    string           `json:"query"`
}

type chatResponse struct {
	Messages []models.Message   `json:"messages"`
	Reply    string             `json:"reply"`
	Cart     []*models.CartItem `json:"cart"`
}

// handleChat runs one assistant turn. An empty messages list starts a new
// conversation: the system preamble and the current catalog listing are
// prepended before the query is handled.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	s.logger.Debug("chat request", zap.String("query", req.Query), zap.Int("history", len(req.Messages)))

	messages := req.Messages
	if len(messages) == 0 {
		books, err := s.catalog.GetAll(r.Context())
		if err != nil {
			s.logger.Error("chat: catalog listing failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		messages = []models.Message{
			{Role: models.RoleSystem, Content: dialogue.SystemPrompt(s.grammar)},
			{Role: models.RoleSystem, Content: dialogue.CatalogListing(books)},
		}
	}

	messages, reply, items, err := s.assistant.HandleQuery(r.Context(), messages, req.Query)
	if err != nil {
		s.logger.Error("chat failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, chatResponse{Messages: messages, Reply: reply, Cart: items})
}

func (s *Server) handleCatalogList(w http.ResponseWriter, r *http.Request) {
	books, err := s.catalog.GetAll(r.Context())
	if err != nil {
		s.logger.Error("catalog list failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"books": books, "count": len(books)})
}

type catalogSearchRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

func (s *Server) handleCatalogSearch(w http.ResponseWriter, r *http.Request) {
	var req catalogSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("catalog search request",
		zap.String("title", req.Title), zap.String("author", req.Author), zap.String("genre", req.Genre))
	books, err := s.catalog.SearchStructured(r.Context(), req.Title, req.Author, req.Genre)
	if err != nil {
		s.logger.Error("catalog search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"books": books, "count": len(books)})
}

func (s *Server) handleCatalogIndex(w http.ResponseWriter, r *http.Request) {
	var input models.BookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Title == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	book, err := s.catalog.Index(r.Context(), input)
	if err != nil {
		s.logger.Error("catalog index failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, book)
}

type recommendRequest struct {
	Title string `json:"title"`
	TopK  int    `json:"top_k"`
}

func (s *Server) handleCatalogRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	recs, err := s.catalog.RecommendByTitle(r.Context(), req.Title, req.TopK)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "book not found")
			return
		}
		s.logger.Error("recommend failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"recommendations": recs, "count": len(recs)})
}

func (s *Server) handleCatalogSeed(w http.ResponseWriter, r *http.Request) {
	if s.seeder == nil {
		s.respondError(w, http.StatusNotImplemented, "seeding not configured")
		return
	}
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	n, err := s.seeder.Run(r.Context(), req.Path)
	if err != nil {
		s.logger.Error("seed failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"books": n, "status": "seeded"})
}

func (s *Server) handleCartList(w http.ResponseWriter, r *http.Request) {
	items, err := s.cart.GetAll(r.Context())
	if err != nil {
		s.logger.Error("cart list failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"items": items, "count": len(items)})
}

type cartRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	added, err := s.cart.Add(r.Context(), req.Title)
	if err != nil {
		s.logger.Error("cart add failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := "already in cart"
	code := http.StatusOK
	if added {
		status = "added"
		code = http.StatusCreated
	}
	s.respondJSON(w, code, map[string]interface{}{"title": req.Title, "added": added, "status": status})
}

// handleCartRemove accepts the title either as a query parameter or in the
// body, matching how DELETE clients vary.
func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		var req cartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Title != "" {
			title = req.Title
		}
	}
	if title == "" {
		s.respondError(w, http.StatusBadRequest, "title is required (query or body)")
		return
	}
	removed, err := s.cart.Remove(r.Context(), title)
	if err != nil {
		s.logger.Error("cart remove failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := "not in cart"
	if removed {
		status = "removed"
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"title": title, "removed": removed, "status": status})
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if err := s.cart.Clear(r.Context()); err != nil {
		s.logger.Error("cart clear failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	bookCount, err := s.catalog.Count(ctx)
	if err != nil {
		s.logger.Error("status: count books failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	items, err := s.cart.GetAll(ctx)
	if err != nil {
		s.logger.Error("status: cart read failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"books":      bookCount,
		"cart_items": len(items),
		"grammar":    string(s.grammar),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
