package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/cardlinkhq/cardlink-server/sessions"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the validated caller context
	ContextKeySession ContextKey = "session_context"
)

// RequireSession validates the bearer session token and injects the caller
// context. Missing, unknown, and expired tokens all get the same response.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.writeErrorTag(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		sessionCtx, err := s.authority.Validate(token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeySession, sessionCtx)
		next(w, r.WithContext(ctx))
	}
}

// sessionContext pulls the validated caller context injected by
// RequireSession. Nil means the route was wired without it.
func sessionContext(r *http.Request) *sessions.Context {
	sessionCtx, _ := r.Context().Value(ContextKeySession).(*sessions.Context)
	return sessionCtx
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
