// Package dialogue is the boundary to the LLM dialogue engine: the Engine
// interface, an OpenAI-backed implementation, and the system prompt that
// teaches the model the action tag grammar.
package dialogue

import (
	"context"

	"github.com/bookwise/bookwise/internal/models"
)

// Engine produces one assistant reply for a conversation. The reply may
// embed at most one structured action tag; parsing it is the action
// package's job, not the engine's.
type Engine interface {
	Chat(ctx context.Context, messages []models.Message) (string, error)
}
