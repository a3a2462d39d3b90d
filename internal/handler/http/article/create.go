package article

import (
	"encoding/json"
	"net/http"

	"newsstash/internal/apperror"
	"newsstash/internal/domain/entity"
	"newsstash/internal/handler/http/auth"
	"newsstash/internal/handler/http/respond"
	artUC "newsstash/internal/usecase/article"
)

type CreateHandler struct{ Svc *artUC.Service }

// validateCreate checks the payload fields that have a syntactic contract.
// Optional URL and date fields are only validated when present.
func validateCreate(req *createRequest) error {
	if req.Title == "" {
		return apperror.BadRequest("title is required")
	}
	if req.UserID == "" {
		return apperror.BadRequest("User ID is required")
	}
	if req.FeaturedImage != "" {
		if err := entity.ValidateURL("featured_image", req.FeaturedImage); err != nil {
			return apperror.BadRequest(err.Error())
		}
	}
	if req.OriginalURL != "" {
		if err := entity.ValidateURL("original_url", req.OriginalURL); err != nil {
			return apperror.BadRequest(err.Error())
		}
	}
	if req.Date != "" {
		if err := entity.ValidateDate("date", req.Date); err != nil {
			return apperror.BadRequest(err.Error())
		}
	}
	return nil
}

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		respond.Error(w, r, apperror.Unauthorized("Invalid token"))
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, apperror.BadRequest("invalid request body"))
		return
	}
	if err := validateCreate(&req); err != nil {
		respond.Error(w, r, err)
		return
	}

	result, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Author:              req.Author,
		Title:               req.Title,
		Subtitle:            req.Subtitle,
		FeaturedImage:       req.FeaturedImage,
		Date:                req.Date,
		BodyRaw:             req.BodyRaw,
		Type:                req.Type,
		Topics:              req.Topics,
		URLSegment:          req.URLSegment,
		OriginalURL:         req.OriginalURL,
		GeneratedAIContent:  req.GeneratedAIContent,
		QuestionsAndAnswers: req.QuestionsAndAnswers,
		UserID:              req.UserID,
	}, id.UserID, auth.TokenFromContext(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, result)
}
