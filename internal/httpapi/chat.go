package httpapi

import (
	"net/http"

	"github.com/studio101-core/server/internal/assistant"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (h *handler) postChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.assistant.Handle(r.Context(), sessionFrom(r), req.Message))
}

type transcript struct {
	SessionID string              `json:"sessionId"`
	Messages  []assistant.Message `json:"messages"`
}

func (h *handler) getTranscript(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	writeJSON(w, http.StatusOK, transcript{SessionID: s.ID, Messages: s.Messages()})
}
