// Package repository defines the persistence gateway contracts.
package repository

import (
	"context"

	"newsstash/internal/domain/entity"
)

// ArticleStore is the gateway to the saved_articles table. Scoped returns a
// query handle whose effective access rights depend on the caller token
// (row-level-security context); an empty token yields the default scope.
// Handles are request-scoped and must not be shared across requests.
type ArticleStore interface {
	Scoped(token string) ArticleQueries
}

// ArticleQueries is the generic query surface of the store. Every method is
// a single round trip; errors are reported verbatim to the caller.
type ArticleQueries interface {
	// Get returns the row matching id, or (nil, nil) when no row exists
	// and the store reported no error.
	Get(ctx context.Context, id string) (*entity.SavedArticle, error)

	// ListByUser returns all rows owned by userID. Zero rows is a valid,
	// non-error result (empty slice).
	ListByUser(ctx context.Context, userID string) ([]*entity.SavedArticle, error)

	// FindByTitleAndUser returns the rows matching (title, user_id).
	// "No rows" is absorbed into an empty slice, never an error.
	FindByTitleAndUser(ctx context.Context, title, userID string) ([]*entity.SavedArticle, error)

	// Insert stores a new article and returns the id assigned by the store.
	Insert(ctx context.Context, article *entity.SavedArticle) (int64, error)

	// UpdateQuestionsAndAnswers replaces the questions_and_answers of the
	// row matching id and returns the id to confirm the target existed.
	// A missing target surfaces as a store error.
	UpdateQuestionsAndAnswers(ctx context.Context, id string, qa []entity.QuestionAnswer) (int64, error)

	// Delete removes the row matching id and returns the id. A missing
	// target surfaces as a store error.
	Delete(ctx context.Context, id string) (int64, error)
}
