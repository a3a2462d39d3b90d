package article

import "newsstash/internal/domain/entity"

// createRequest is the POST /articles payload.
type createRequest struct {
	Author              string                  `json:"author"`
	Title               string                  `json:"title"`
	Subtitle            string                  `json:"subtitle"`
	FeaturedImage       string                  `json:"featured_image"`
	Date                string                  `json:"date"`
	BodyRaw             *string                 `json:"body_raw"`
	Type                string                  `json:"type"`
	Topics              []string                `json:"topics"`
	URLSegment          string                  `json:"urlsegment"`
	OriginalURL         string                  `json:"original_url"`
	GeneratedAIContent  string                  `json:"generated_ai_content"`
	QuestionsAndAnswers []entity.QuestionAnswer `json:"questions_and_answers"`
	UserID              string                  `json:"user_id"`
}

// updateRequest is the PUT /articles/{id} payload. The update surface is
// limited to the enrichment Q&A.
type updateRequest struct {
	QuestionsAndAnswers []entity.QuestionAnswer `json:"questions_and_answers"`
}
