package http

import (
	"net/http"

	"newsstash/internal/apperror"
	"newsstash/internal/handler/http/respond"
	"newsstash/internal/infra/chat"
)

// aiChatResponse is the body of a successful chat passthrough.
type aiChatResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AIChatHandler forwards a question to the configured chat completion
// provider and returns the answer verbatim.
type AIChatHandler struct {
	Provider chat.Provider
}

func (h AIChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	question := r.URL.Query().Get("question")
	if question == "" {
		respond.Error(w, r, apperror.BadRequest("question is required"))
		return
	}

	answer, err := h.Provider.Ask(r.Context(), question)
	if err != nil {
		RecordChatRequest(false)
		respond.Error(w, r, apperror.Internal(err))
		return
	}

	RecordChatRequest(true)
	respond.JSON(w, http.StatusOK, aiChatResponse{Status: "ok", Message: answer})
}
