package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"

	"newsstash/internal/resilience/circuitbreaker"
)

const claudeMaxTokens = 1024

// Claude answers questions through Anthropic's messages API.
type Claude struct {
	client  anthropic.Client
	breaker *circuitbreaker.CircuitBreaker
	model   string
}

// NewClaude creates a Claude chat provider. An empty model falls back to the
// current Sonnet release.
func NewClaude(apiKey, model string) *Claude {
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_5_20250929)
	}

	slog.Info("initialized claude chat provider", slog.String("model", model))

	return &Claude{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		breaker: circuitbreaker.New(circuitbreaker.ChatAPIConfig()),
		model:   model,
	}
}

// Ask sends question as a single user message and returns the reply text.
func (c *Claude) Ask(ctx context.Context, question string) (string, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doAsk(ctx, question)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("claude api circuit breaker open, request rejected",
				slog.String("state", c.breaker.State().String()))
			return "", fmt.Errorf("claude api unavailable: circuit breaker open")
		}
		return "", err
	}
	return result.(string), nil
}

func (c *Claude) doAsk(ctx context.Context, question string) (string, error) {
	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: claudeMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(truncateQuestion(question)),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "chat completion failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	slog.InfoContext(ctx, "chat completion finished",
		slog.String("model", c.model),
		slog.Duration("duration", duration))

	return textBlock.Text, nil
}
