// Package article implements the saved-article use cases. Every operation is
// bounded by the service timeout and reports failures through the
// application error taxonomy: already-classified errors pass through
// unchanged, anything unexpected is normalized to an internal error whose
// cause is logged but never exposed.
package article

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newsstash/internal/apperror"
	"newsstash/internal/domain/entity"
	"newsstash/internal/repository"
	"newsstash/internal/resilience/timeout"
)

// Result is the acknowledgement returned by the mutating operations.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateInput carries the fields of a new article. UserID must match the
// authenticated caller.
type CreateInput struct {
	Author              string
	Title               string
	Subtitle            string
	FeaturedImage       string
	Date                string
	BodyRaw             *string
	Type                string
	Topics              []string
	URLSegment          string
	OriginalURL         string
	GeneratedAIContent  string
	QuestionsAndAnswers []entity.QuestionAnswer
	UserID              string
}

// Service provides the saved-article use cases. The store handle is
// re-scoped with the caller token on every operation.
type Service struct {
	Store   repository.ArticleStore
	Logger  *slog.Logger
	Timeout time.Duration
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// run executes op under the service timeout and normalizes its error.
func run[T any](ctx context.Context, s *Service, name string, op func(context.Context) (T, error)) (T, error) {
	log := s.logger()
	log.DebugContext(ctx, "operation started", slog.String("operation", name))

	result, err := timeout.Do(ctx, s.Timeout, op)
	if err != nil {
		appErr := apperror.Classify(err)
		log.ErrorContext(ctx, "operation failed",
			slog.String("operation", name),
			slog.Int("status", appErr.Status),
			slog.String("error", err.Error()))
		var zero T
		return zero, appErr
	}

	log.DebugContext(ctx, "operation finished", slog.String("operation", name))
	return result, nil
}

// GetArticleByID returns the article matching id, visible to the caller
// identified by token.
func (s *Service) GetArticleByID(ctx context.Context, id, token string) (*entity.SavedArticle, error) {
	return run(ctx, s, "get_article_by_id", func(ctx context.Context) (*entity.SavedArticle, error) {
		if id == "" {
			return nil, apperror.BadRequest("Article ID is required")
		}

		found, err := s.Store.Scoped(token).Get(ctx, id)
		if err != nil {
			return nil, apperror.Database(err.Error())
		}
		if found == nil {
			return nil, apperror.NotFound(fmt.Sprintf("Article with id %s not found", id))
		}
		return found, nil
	})
}

// GetArticlesByUserID returns every article owned by userID. Zero rows is a
// valid result, not an error.
func (s *Service) GetArticlesByUserID(ctx context.Context, userID, token string) ([]*entity.SavedArticle, error) {
	return run(ctx, s, "get_articles_by_user_id", func(ctx context.Context) ([]*entity.SavedArticle, error) {
		if userID == "" {
			return nil, apperror.BadRequest("User ID is required")
		}

		articles, err := s.Store.Scoped(token).ListByUser(ctx, userID)
		if err != nil {
			return nil, apperror.Database(err.Error())
		}
		return articles, nil
	})
}

// Create stores a new article after checking ownership and uniqueness of
// (title, user_id). The duplicate check and the insert are two separate
// store calls; concurrent creates with the same key can both pass the check.
func (s *Service) Create(ctx context.Context, draft CreateInput, callerID, token string) (*Result, error) {
	return run(ctx, s, "create_article", func(ctx context.Context) (*Result, error) {
		if draft.UserID != callerID {
			return nil, apperror.Unauthorized("User ID mismatch")
		}

		queries := s.Store.Scoped(token)

		existing, err := queries.FindByTitleAndUser(ctx, draft.Title, draft.UserID)
		if err != nil {
			return nil, apperror.Database(err.Error())
		}
		if len(existing) > 0 {
			return nil, apperror.Conflict("Article already exists")
		}

		id, err := queries.Insert(ctx, &entity.SavedArticle{
			Author:              draft.Author,
			Title:               draft.Title,
			Subtitle:            draft.Subtitle,
			FeaturedImage:       draft.FeaturedImage,
			Date:                draft.Date,
			BodyRaw:             draft.BodyRaw,
			Type:                draft.Type,
			Topics:              draft.Topics,
			URLSegment:          draft.URLSegment,
			OriginalURL:         draft.OriginalURL,
			GeneratedAIContent:  draft.GeneratedAIContent,
			QuestionsAndAnswers: draft.QuestionsAndAnswers,
			UserID:              draft.UserID,
		})
		if err != nil {
			return nil, apperror.Database(err.Error())
		}

		return &Result{
			Success: true,
			Message: fmt.Sprintf("Article #%d created successfully", id),
		}, nil
	})
}

// Update replaces the questions and answers of the article matching id.
func (s *Service) Update(ctx context.Context, id string, qa []entity.QuestionAnswer, token string) (*Result, error) {
	return run(ctx, s, "update_article", func(ctx context.Context) (*Result, error) {
		if id == "" {
			return nil, apperror.BadRequest("Article ID is required")
		}

		updatedID, err := s.Store.Scoped(token).UpdateQuestionsAndAnswers(ctx, id, qa)
		if err != nil {
			return nil, apperror.Database(err.Error())
		}

		return &Result{
			Success: true,
			Message: fmt.Sprintf("Article #%d updated successfully", updatedID),
		}, nil
	})
}

// Delete removes the article matching id.
func (s *Service) Delete(ctx context.Context, id, token string) (*Result, error) {
	return run(ctx, s, "delete_article", func(ctx context.Context) (*Result, error) {
		if id == "" {
			return nil, apperror.BadRequest("Article ID is required")
		}

		deletedID, err := s.Store.Scoped(token).Delete(ctx, id)
		if err != nil {
			return nil, apperror.Database(err.Error())
		}

		return &Result{
			Success: true,
			Message: fmt.Sprintf("Article #%d deleted successfully", deletedID),
		}, nil
	})
}
