package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/izthiaka/loumaa/internal/model"
	"github.com/izthiaka/loumaa/internal/token"
)

type contextKey struct{}

var userContextKey = contextKey{}

// RequireAuth guards a route with bearer authentication. The token must
// verify and still match the caller's live session record, so a logged-out
// token is rejected even before its expiry.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawToken, ok := bearerToken(r)
		if !ok {
			h.respond(w, http.StatusUnauthorized, token.ErrInvalidToken.Error(), nil)
			return
		}

		user, err := h.auth.Authenticate(r.Context(), rawToken)
		if err != nil {
			h.fail(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func userFrom(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}
