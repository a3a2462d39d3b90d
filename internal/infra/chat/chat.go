// Package chat provides question answering backed by chat completion APIs.
// It includes adapters for OpenAI and Anthropic with circuit breaker
// protection.
package chat

import "context"

// Provider answers a free-form question with a single completion.
type Provider interface {
	Ask(ctx context.Context, question string) (string, error)
}

// maxQuestionChars bounds the prompt so a hostile client cannot push an
// arbitrarily large request into the completion API.
const maxQuestionChars = 4000

func truncateQuestion(question string) string {
	if len(question) <= maxQuestionChars {
		return question
	}
	return question[:maxQuestionChars]
}
