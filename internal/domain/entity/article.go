// Package entity defines the core domain entities and validation logic for the application.
// It contains the saved article entity along with its validation rules.
package entity

import "time"

// QuestionAnswer is a single enrichment Q&A pair attached to an article.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SavedArticle represents an article saved by a user.
// ID and CreatedAt are assigned by the persistence layer and are immutable
// once the row exists.
type SavedArticle struct {
	ID                  int64            `json:"id"`
	Author              string           `json:"author"`
	Title               string           `json:"title"`
	Subtitle            string           `json:"subtitle"`
	FeaturedImage       string           `json:"featured_image"`
	Date                string           `json:"date"`
	BodyRaw             *string          `json:"body_raw"`
	Type                string           `json:"type"`
	Topics              []string         `json:"topics"`
	URLSegment          string           `json:"urlsegment"`
	OriginalURL         string           `json:"original_url"`
	GeneratedAIContent  string           `json:"generated_ai_content"`
	QuestionsAndAnswers []QuestionAnswer `json:"questions_and_answers"`
	UserID              string           `json:"user_id"`
	CreatedAt           time.Time        `json:"created_at"`
}
