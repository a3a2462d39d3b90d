package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"newsstash/internal/resilience/circuitbreaker"
)

const defaultOpenAIModel = "gpt-3.5-turbo"

// OpenAI answers questions through OpenAI's chat completion API.
type OpenAI struct {
	client  *openai.Client
	breaker *circuitbreaker.CircuitBreaker
	model   string
}

// NewOpenAI creates an OpenAI chat provider. An empty model falls back to
// the default; baseURL overrides the API endpoint when non-empty, which is
// how compatible gateways are pointed at.
func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	if model == "" {
		model = defaultOpenAIModel
	}

	var client *openai.Client
	if baseURL != "" {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = baseURL
		client = openai.NewClientWithConfig(cfg)
	} else {
		client = openai.NewClient(apiKey)
	}

	slog.Info("initialized openai chat provider", slog.String("model", model))

	return &OpenAI{
		client:  client,
		breaker: circuitbreaker.New(circuitbreaker.ChatAPIConfig()),
		model:   model,
	}
}

// Ask sends question as a single user message and returns the completion.
func (o *OpenAI) Ask(ctx context.Context, question string) (string, error) {
	result, err := o.breaker.Execute(func() (interface{}, error) {
		return o.doAsk(ctx, question)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("openai api circuit breaker open, request rejected",
				slog.String("state", o.breaker.State().String()))
			return "", fmt.Errorf("openai api unavailable: circuit breaker open")
		}
		return "", err
	}
	return result.(string), nil
}

func (o *OpenAI) doAsk(ctx context.Context, question string) (string, error) {
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: truncateQuestion(question),
		}},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "chat completion failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}

	slog.InfoContext(ctx, "chat completion finished",
		slog.String("model", o.model),
		slog.Duration("duration", duration))

	return resp.Choices[0].Message.Content, nil
}
