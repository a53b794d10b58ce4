package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

const (
	userIDKey ctxKey = "userID"
	isRootKey ctxKey = "isRoot"
)

// UserIDFromContext returns the authenticated user ID from context.
// The second return is false for unauthenticated requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// isRootFromContext reports whether the authenticated user is root.
func isRootFromContext(ctx context.Context) bool {
	isRoot, ok := ctx.Value(isRootKey).(bool)
	return ok && isRoot
}

// setUser stores the authenticated user's identity in context.
func setUser(ctx context.Context, userID string, isRoot bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, isRootKey, isRoot)
}

// authMiddleware validates Bearer tokens and stores the user identity in
// context. Requests without a valid token continue anonymously; handlers
// reject them where authentication is required.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			user, _, err := auth.VerifyAccessToken(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := setUser(r.Context(), user.ID, user.IsRoot)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
