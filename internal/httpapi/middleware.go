package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/studio101-core/server/internal/assistant"
	"github.com/studio101-core/server/internal/auth"
)

const (
	SessionCookie = "chat_session_id"

	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserName  = "X-User-Name"
)

type sessionKey struct{}

// withSession loads the visitor's session from the cookie, creating one when
// the cookie is missing or malformed, and syncs the signed-in user from the
// gateway headers.
func (h *handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var stored string
		if c, err := r.Cookie(SessionCookie); err == nil {
			stored = c.Value
		}
		id := assistant.LoadOrNewSessionID(stored, h.now())
		s, _ := h.sessions.GetOrCreate(id)
		if id != stored {
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   h.cookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		user := userFromHeaders(r.Header)
		s.SetUser(user)

		ctx := context.WithValue(r.Context(), sessionKey{}, s)
		ctx = auth.WithUser(ctx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromHeaders(hdr http.Header) *auth.User {
	id := strings.TrimSpace(hdr.Get(HeaderUserID))
	if id == "" {
		return nil
	}
	return &auth.User{
		ID:          id,
		Email:       strings.TrimSpace(hdr.Get(HeaderUserEmail)),
		DisplayName: strings.TrimSpace(hdr.Get(HeaderUserName)),
	}
}

func sessionFrom(r *http.Request) *assistant.Session {
	s, _ := r.Context().Value(sessionKey{}).(*assistant.Session)
	return s
}
