// Package article exposes the saved-article HTTP endpoints.
package article

import (
	"net/http"

	artUC "newsstash/internal/usecase/article"
)

// Register registers the article routes on mux. guard wraps every route;
// the whole surface is authenticated.
func Register(mux *http.ServeMux, svc *artUC.Service, guard func(http.Handler) http.Handler) {
	mux.Handle("GET    /articles", guard(ListHandler{svc}))
	mux.Handle("GET    /articles/", guard(GetHandler{svc}))

	mux.Handle("POST   /articles", guard(CreateHandler{svc}))
	mux.Handle("PUT    /articles/", guard(UpdateHandler{svc}))
	mux.Handle("DELETE /articles/", guard(DeleteHandler{svc}))
}
