package article

import (
	"encoding/json"
	"net/http"

	"newsstash/internal/apperror"
	"newsstash/internal/handler/http/auth"
	"newsstash/internal/handler/http/pathutil"
	"newsstash/internal/handler/http/respond"
	artUC "newsstash/internal/usecase/article"
)

type UpdateHandler struct{ Svc *artUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.Error(w, r, apperror.BadRequest("Article ID is required"))
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, apperror.BadRequest("invalid request body"))
		return
	}

	result, err := h.Svc.Update(r.Context(), id, req.QuestionsAndAnswers, auth.TokenFromContext(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, result)
}
