package article

import (
	"net/http"

	"newsstash/internal/apperror"
	"newsstash/internal/handler/http/auth"
	"newsstash/internal/handler/http/pathutil"
	"newsstash/internal/handler/http/respond"
	artUC "newsstash/internal/usecase/article"
)

type DeleteHandler struct{ Svc *artUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.Error(w, r, apperror.BadRequest("Article ID is required"))
		return
	}

	result, err := h.Svc.Delete(r.Context(), id, auth.TokenFromContext(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, result)
}
