package dialogue

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bookwise/bookwise/internal/models"
)

const defaultTemperature = 0.7

// OpenAIEngine calls the OpenAI chat completions API (or any compatible
// endpoint via base URL override).
type OpenAIEngine struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIEngine creates an engine. model defaults to GPT-4; temperature
// <= 0 means the default 0.7.
func NewOpenAIEngine(apiKey, baseURL, model string, temperature float64) (*OpenAIEngine, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4
	}
	t := float32(temperature)
	if t <= 0 {
		t = defaultTemperature
	}
	return &OpenAIEngine{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: t,
	}, nil
}

// Chat sends the conversation and returns the assistant reply.
func (e *OpenAIEngine) Chat(ctx context.Context, messages []models.Message) (string, error) {
	reqMsgs := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		reqMsgs[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Messages:    reqMsgs,
		Temperature: e.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
