// Package assistant orchestrates one query: dialogue call, action
// extraction, dispatch against catalog and cart, and the cart re-read.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bookwise/bookwise/internal/action"
	"github.com/bookwise/bookwise/internal/cart"
	"github.com/bookwise/bookwise/internal/catalog"
	"github.com/bookwise/bookwise/internal/dialogue"
	"github.com/bookwise/bookwise/internal/models"
	"github.com/bookwise/bookwise/pkg/utils"
)

// Assistant handles user queries. One query is fully handled (dialogue call,
// parse, dispatch, cart read) before the caller sends the next; the
// conversation itself is caller-owned and threaded through HandleQuery.
type Assistant struct {
	engine  dialogue.Engine
	catalog *catalog.Catalog
	cart    *cart.Cart
	parser  *action.Parser
	logger  *zap.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(a *Assistant) { a.logger = l }
}

// New creates an assistant.
func New(engine dialogue.Engine, cat *catalog.Catalog, crt *cart.Cart, parser *action.Parser, opts ...Option) *Assistant {
	a := &Assistant{engine: engine, catalog: cat, cart: crt, parser: parser}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HandleQuery runs one full turn: appends the query to the conversation,
// obtains a reply from the dialogue engine, extracts and dispatches the
// embedded action, and re-reads the cart. The returned conversation includes
// the new user message and the final assistant reply; the returned cart is
// always the current store contents, never a cached value.
//
// Engine and store failures are returned as errors, not folded into the reply.
func (a *Assistant) HandleQuery(ctx context.Context, messages []models.Message, query string) ([]models.Message, string, []*models.CartItem, error) {
	query = strings.ToLower(query)
	messages = append(messages, models.Message{Role: models.RoleUser, Content: query})

	raw, err := a.engine.Chat(ctx, messages)
	if err != nil {
		return messages, "", nil, fmt.Errorf("dialogue: %w", err)
	}

	act, reply := a.parser.Extract(raw)
	if a.logger != nil {
		a.logger.Debug("action extracted",
			zap.String("kind", string(act.Kind)),
			zap.String("title", act.Title),
			zap.String("reply", utils.Truncate(reply, 120)),
		)
	}

	switch act.Kind {
	case action.KindSearch:
		reply, err = a.dispatchSearch(ctx, act, reply)
	case action.KindAddToCart:
		_, err = a.cart.Add(ctx, act.Title)
	case action.KindRemoveFromCart:
		_, err = a.cart.Remove(ctx, act.Title)
	case action.KindClearCart:
		err = a.cart.Clear(ctx)
	case action.KindNone:
		// No side effect; an unrecognized kind lands here too, with its
		// tag already stripped from the reply.
	}
	if err != nil {
		return messages, "", nil, err
	}

	messages = append(messages, models.Message{Role: models.RoleAssistant, Content: reply})

	items, err := a.cart.GetAll(ctx)
	if err != nil {
		return messages, "", nil, err
	}
	return messages, reply, items, nil
}

// dispatchSearch queries the catalog with the structured fields and appends
// a result summary to the reply: a not-found notice, a single match with an
// add-to-cart prompt, or an enumerated list with a disambiguation prompt.
func (a *Assistant) dispatchSearch(ctx context.Context, act action.Action, reply string) (string, error) {
	books, err := a.catalog.SearchStructured(ctx, act.Title, act.Author, act.Genre)
	if err != nil {
		return "", err
	}

	switch {
	case len(books) > 1:
		var details []string
		for i, book := range books {
			details = append(details, fmt.Sprintf("%d. Title: %s, Author: %s, Genre: %s",
				i+1, book.Title, book.Author, book.Genre))
		}
		reply += fmt.Sprintf("\nI found multiple books:\n%s\n\nWhich one do you mean?",
			strings.Join(details, "\n"))
	case len(books) == 1:
		book := books[0]
		reply += fmt.Sprintf("\nI found the book: Title: %s, Author: %s, Genre: %s. Would you like to add it to the cart?",
			book.Title, book.Author, book.Genre)
	default:
		reply += "\nI couldn't find any books matching your criteria."
	}
	return reply, nil
}
