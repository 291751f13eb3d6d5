package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vedran77/circle/internal/domain"
)

type contextKey string

const UserKey contextKey = "user"

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth rejects requests without a valid bearer token and stores the resolved
// user in the request context.
func Auth(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				writeReason(w, http.StatusUnauthorized, "Token is missing, invalid or expired")
				return
			}

			user, err := authn.Authenticate(r.Context(), tokenStr)
			if err != nil {
				if domain.KindOf(err) == domain.KindUnauthenticated {
					writeReason(w, http.StatusUnauthorized, err.Error())
				} else {
					LoggerFrom(r.Context()).ErrorContext(r.Context(), "authenticate", "error", err)
					writeReason(w, http.StatusInternalServerError, "Something went wrong")
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user. Only valid behind Auth.
func GetUser(ctx context.Context) *domain.User {
	return ctx.Value(UserKey).(*domain.User)
}

func writeReason(w http.ResponseWriter, status int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"reason": reason})
}
