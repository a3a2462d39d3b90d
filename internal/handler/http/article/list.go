package article

import (
	"net/http"

	"newsstash/internal/apperror"
	"newsstash/internal/handler/http/auth"
	"newsstash/internal/handler/http/respond"
	artUC "newsstash/internal/usecase/article"
)

// ListHandler returns every article owned by the authenticated caller.
type ListHandler struct{ Svc *artUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		respond.Error(w, r, apperror.Unauthorized("Invalid token"))
		return
	}

	articles, err := h.Svc.GetArticlesByUserID(r.Context(), id.UserID, auth.TokenFromContext(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, articles)
}
