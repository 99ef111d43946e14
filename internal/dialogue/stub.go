package dialogue

import (
	"context"
	"sync"

	"github.com/bookwise/bookwise/internal/models"
)

// StubEngine replays scripted replies in order; for tests and offline demos.
type StubEngine struct {
	mu      sync.Mutex
	replies []string
	// Requests records the conversations the stub was called with.
	Requests [][]models.Message
}

// NewStubEngine returns an engine that replays the given replies. After the
// script is exhausted, Chat keeps returning the last reply.
func NewStubEngine(replies ...string) *StubEngine {
	return &StubEngine{replies: replies}
}

// Chat returns the next scripted reply.
func (e *StubEngine) Chat(ctx context.Context, messages []models.Message) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	snapshot := make([]models.Message, len(messages))
	copy(snapshot, messages)
	e.Requests = append(e.Requests, snapshot)

	if len(e.replies) == 0 {
		return "", nil
	}
	reply := e.replies[0]
	if len(e.replies) > 1 {
		e.replies = e.replies[1:]
	}
	return reply, nil
}
