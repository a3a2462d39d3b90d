// Package postgres implements the article store against the project
// database. Every query runs inside a transaction that carries the caller's
// JWT claims as the request.jwt.claims setting, so row level security
// policies on saved_articles see the same identity the API authenticated.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"newsstash/internal/domain/entity"
	"newsstash/internal/repository"
	"newsstash/internal/resilience/circuitbreaker"
)

const articleColumns = `id, author, title, subtitle, featured_image, date, body_raw, type,
	topics, urlsegment, original_url, generated_ai_content, questions_and_answers,
	user_id, created_at`

// ArticleStore is the Postgres-backed article gateway.
type ArticleStore struct {
	db      *sql.DB
	breaker *circuitbreaker.CircuitBreaker
}

// NewArticleStore wires the gateway to a connection pool. All calls go
// through the given circuit breaker.
func NewArticleStore(db *sql.DB, breaker *circuitbreaker.CircuitBreaker) *ArticleStore {
	return &ArticleStore{db: db, breaker: breaker}
}

// Scoped returns a query handle bound to the caller token. The handle is
// request-scoped; the claims are re-applied on every statement.
func (s *ArticleStore) Scoped(token string) repository.ArticleQueries {
	return &scopedQueries{store: s, claims: claimsJSON(token)}
}

// claimsJSON extracts the claim set from token without verifying the
// signature. Verification happened at the API boundary; here the claims only
// parameterize row level security, which the database enforces on its own.
func claimsJSON(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	raw, err := json.Marshal(claims)
	if err != nil {
		return ""
	}
	return string(raw)
}

type scopedQueries struct {
	store  *ArticleStore
	claims string
}

// withTx runs fn in a transaction whose first statement installs the caller
// claims as a transaction-local setting, then commits.
func (q *scopedQueries) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	_, err := q.store.breaker.Execute(func() (interface{}, error) {
		tx, err := q.store.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("begin: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if q.claims != "" {
			if _, err := tx.ExecContext(ctx,
				`SELECT set_config('request.jwt.claims', $1, true)`, q.claims); err != nil {
				return nil, fmt.Errorf("set claims: %w", err)
			}
		}
		if err := fn(tx); err != nil {
			return nil, err
		}
		return nil, tx.Commit()
	})
	return err
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid article id %q", id)
	}
	return n, nil
}

func scanArticle(row interface{ Scan(dest ...any) error }) (*entity.SavedArticle, error) {
	var (
		article   entity.SavedArticle
		topicsRaw []byte
		qaRaw     []byte
	)
	err := row.Scan(&article.ID, &article.Author, &article.Title, &article.Subtitle,
		&article.FeaturedImage, &article.Date, &article.BodyRaw, &article.Type,
		&topicsRaw, &article.URLSegment, &article.OriginalURL,
		&article.GeneratedAIContent, &qaRaw, &article.UserID, &article.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(topicsRaw) > 0 {
		if err := json.Unmarshal(topicsRaw, &article.Topics); err != nil {
			return nil, fmt.Errorf("decode topics: %w", err)
		}
	}
	if len(qaRaw) > 0 {
		if err := json.Unmarshal(qaRaw, &article.QuestionsAndAnswers); err != nil {
			return nil, fmt.Errorf("decode questions_and_answers: %w", err)
		}
	}
	return &article, nil
}

func (q *scopedQueries) Get(ctx context.Context, id string) (*entity.SavedArticle, error) {
	numericID, err := parseID(id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	query := fmt.Sprintf(`
SELECT %s
FROM saved_articles
WHERE id = $1
LIMIT 1`, articleColumns)

	var article *entity.SavedArticle
	err = q.withTx(ctx, func(tx *sql.Tx) error {
		found, err := scanArticle(tx.QueryRowContext(ctx, query, numericID))
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("Get: %w", err)
		}
		article = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

func (q *scopedQueries) ListByUser(ctx context.Context, userID string) ([]*entity.SavedArticle, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM saved_articles
WHERE user_id = $1
ORDER BY created_at DESC`, articleColumns)

	articles := make([]*entity.SavedArticle, 0, 20)
	err := q.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, userID)
		if err != nil {
			return fmt.Errorf("ListByUser: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			article, err := scanArticle(rows)
			if err != nil {
				return fmt.Errorf("ListByUser: Scan: %w", err)
			}
			articles = append(articles, article)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (q *scopedQueries) FindByTitleAndUser(ctx context.Context, title, userID string) ([]*entity.SavedArticle, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM saved_articles
WHERE title = $1 AND user_id = $2`, articleColumns)

	articles := make([]*entity.SavedArticle, 0, 1)
	err := q.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, title, userID)
		if err != nil {
			return fmt.Errorf("FindByTitleAndUser: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			article, err := scanArticle(rows)
			if err != nil {
				return fmt.Errorf("FindByTitleAndUser: Scan: %w", err)
			}
			articles = append(articles, article)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (q *scopedQueries) Insert(ctx context.Context, article *entity.SavedArticle) (int64, error) {
	topicsRaw, err := json.Marshal(article.Topics)
	if err != nil {
		return 0, fmt.Errorf("Insert: encode topics: %w", err)
	}
	qaRaw, err := json.Marshal(article.QuestionsAndAnswers)
	if err != nil {
		return 0, fmt.Errorf("Insert: encode questions_and_answers: %w", err)
	}

	const query = `
INSERT INTO saved_articles
	   (author, title, subtitle, featured_image, date, body_raw, type,
	    topics, urlsegment, original_url, generated_ai_content,
	    questions_and_answers, user_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`

	var id int64
	err = q.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query,
			article.Author, article.Title, article.Subtitle, article.FeaturedImage,
			article.Date, article.BodyRaw, article.Type, topicsRaw,
			article.URLSegment, article.OriginalURL, article.GeneratedAIContent,
			qaRaw, article.UserID,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("Insert: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (q *scopedQueries) UpdateQuestionsAndAnswers(ctx context.Context, id string, qa []entity.QuestionAnswer) (int64, error) {
	numericID, err := parseID(id)
	if err != nil {
		return 0, fmt.Errorf("UpdateQuestionsAndAnswers: %w", err)
	}
	qaRaw, err := json.Marshal(qa)
	if err != nil {
		return 0, fmt.Errorf("UpdateQuestionsAndAnswers: encode: %w", err)
	}

	const query = `
UPDATE saved_articles
SET questions_and_answers = $1
WHERE id = $2
RETURNING id`

	var updatedID int64
	err = q.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query, qaRaw, numericID).Scan(&updatedID)
		if err == sql.ErrNoRows {
			return fmt.Errorf("UpdateQuestionsAndAnswers: no row with id %d", numericID)
		}
		if err != nil {
			return fmt.Errorf("UpdateQuestionsAndAnswers: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updatedID, nil
}

func (q *scopedQueries) Delete(ctx context.Context, id string) (int64, error) {
	numericID, err := parseID(id)
	if err != nil {
		return 0, fmt.Errorf("Delete: %w", err)
	}

	const query = `
DELETE FROM saved_articles
WHERE id = $1
RETURNING id`

	var deletedID int64
	err = q.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query, numericID).Scan(&deletedID)
		if err == sql.ErrNoRows {
			return fmt.Errorf("Delete: no row with id %d", numericID)
		}
		if err != nil {
			return fmt.Errorf("Delete: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deletedID, nil
}
