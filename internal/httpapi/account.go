package httpapi

import (
	"net/http"

	"github.com/studio101-core/server/internal/assistant"
	"github.com/studio101-core/server/internal/auth"
	errx "github.com/studio101-core/server/internal/core/error"
	"github.com/studio101-core/server/internal/order"
)

func (h *handler) listMyPayments(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	if user == nil {
		writeError(w, r, errx.New(nil, http.StatusUnauthorized, assistant.MsgLoginRequired))
		return
	}
	payments, err := h.history.ListPayments(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if payments == nil {
		payments = []order.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}
