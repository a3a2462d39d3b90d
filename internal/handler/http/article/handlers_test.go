package article_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"newsstash/internal/domain/entity"
	artHTTP "newsstash/internal/handler/http/article"
	"newsstash/internal/handler/http/auth"
	"newsstash/internal/identity"
	"newsstash/internal/repository"
	artUC "newsstash/internal/usecase/article"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ------------------------------ fixtures ------------------------------ */

type fakeQueries struct {
	articles map[string]*entity.SavedArticle
	nextID   int64
}

func (f *fakeQueries) Get(_ context.Context, id string) (*entity.SavedArticle, error) {
	return f.articles[id], nil
}

func (f *fakeQueries) ListByUser(_ context.Context, userID string) ([]*entity.SavedArticle, error) {
	result := []*entity.SavedArticle{}
	for _, a := range f.articles {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeQueries) FindByTitleAndUser(_ context.Context, title, userID string) ([]*entity.SavedArticle, error) {
	result := []*entity.SavedArticle{}
	for _, a := range f.articles {
		if a.Title == title && a.UserID == userID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeQueries) Insert(_ context.Context, a *entity.SavedArticle) (int64, error) {
	f.nextID++
	return f.nextID, nil
}

func (f *fakeQueries) UpdateQuestionsAndAnswers(_ context.Context, id string, qa []entity.QuestionAnswer) (int64, error) {
	a, ok := f.articles[id]
	if !ok {
		return 0, errNoRow
	}
	a.QuestionsAndAnswers = qa
	return a.ID, nil
}

func (f *fakeQueries) Delete(_ context.Context, id string) (int64, error) {
	a, ok := f.articles[id]
	if !ok {
		return 0, errNoRow
	}
	delete(f.articles, id)
	return a.ID, nil
}

var errNoRow = &noRowError{}

type noRowError struct{}

func (*noRowError) Error() string { return "no row with requested id" }

type fakeStore struct{ queries *fakeQueries }

func (f *fakeStore) Scoped(string) repository.ArticleQueries { return f.queries }

func testLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

type allowProvider struct{}

func (allowProvider) Authenticate(_ context.Context, token string) (*identity.Identity, error) {
	return &identity.Identity{UserID: "user-1", Role: "authenticated"}, nil
}

func newMux(t *testing.T, queries *fakeQueries) *http.ServeMux {
	t.Helper()
	svc := &artUC.Service{
		Store:   &fakeStore{queries: queries},
		Timeout: time.Second,
	}
	mux := http.NewServeMux()
	artHTTP.Register(mux, svc, auth.Guard(allowProvider{}, testLogger()))
	return mux
}

func seeded() *fakeQueries {
	return &fakeQueries{
		nextID: 1,
		articles: map[string]*entity.SavedArticle{
			"1": {ID: 1, Title: "First", UserID: "user-1"},
		},
	}
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer token-1")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

/* ------------------------------ tests ------------------------------ */

func TestGetArticle(t *testing.T) {
	mux := newMux(t, seeded())

	rec := do(mux, http.MethodGet, "/articles/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got entity.SavedArticle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "First", got.Title)
}

func TestGetArticleNotFound(t *testing.T) {
	mux := newMux(t, seeded())

	rec := do(mux, http.MethodGet, "/articles/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		StatusCode int    `json:"statusCode"`
		Error      string `json:"error"`
		Message    string `json:"message"`
		Path       string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.StatusCode)
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "Article with id 42 not found", body.Message)
	assert.Equal(t, "/articles/42", body.Path)
}

func TestListArticles(t *testing.T) {
	mux := newMux(t, seeded())

	rec := do(mux, http.MethodGet, "/articles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []entity.SavedArticle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "user-1", got[0].UserID)
}

func TestCreateArticle(t *testing.T) {
	mux := newMux(t, seeded())

	rec := do(mux, http.MethodPost, "/articles",
		`{"title":"Second","user_id":"user-1","original_url":"https://example.com/p"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var result artUC.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Article #2 created successfully", result.Message)
}

func TestCreateArticleDuplicate(t *testing.T) {
	mux := newMux(t, seeded())

	rec := do(mux, http.MethodPost, "/articles", `{"title":"First","user_id":"user-1"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Article already exists")
}

func TestCreateArticleOwnershipMismatch(t *testing.T) {
	mux := newMux(t, seeded())

	rec := do(mux, http.MethodPost, "/articles", `{"title":"Other","user_id":"user-2"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "User ID mismatch")
}

func TestCreateArticleValidation(t *testing.T) {
	mux := newMux(t, seeded())

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "missing title", body: `{"user_id":"user-1"}`, want: "title is required"},
		{name: "missing user id", body: `{"title":"X"}`, want: "User ID is required"},
		{name: "bad url", body: `{"title":"X","user_id":"user-1","original_url":"ftp://x"}`, want: "original_url"},
		{name: "bad date", body: `{"title":"X","user_id":"user-1","date":"yesterday"}`, want: "date"},
		{name: "malformed json", body: `{`, want: "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, http.MethodPost, "/articles", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestUpdateArticle(t *testing.T) {
	queries := seeded()
	mux := newMux(t, queries)

	rec := do(mux, http.MethodPut, "/articles/1",
		`{"questions_and_answers":[{"question":"q","answer":"a"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result artUC.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Article #1 updated successfully", result.Message)
	assert.Len(t, queries.articles["1"].QuestionsAndAnswers, 1)
}

func TestUpdateArticleMissingTarget(t *testing.T) {
	mux := newMux(t, seeded())

	rec := do(mux, http.MethodPut, "/articles/42", `{"questions_and_answers":[]}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "no row with requested id")
}

func TestDeleteArticle(t *testing.T) {
	queries := seeded()
	mux := newMux(t, queries)

	rec := do(mux, http.MethodDelete, "/articles/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result artUC.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Article #1 deleted successfully", result.Message)
	assert.Empty(t, queries.articles)
}

func TestRoutesRequireToken(t *testing.T) {
	mux := newMux(t, seeded())

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token provided")
}
