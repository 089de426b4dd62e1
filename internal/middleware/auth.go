package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/crucial707/account-service/internal/metrics"
	"github.com/crucial707/account-service/internal/respond"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type key string

const userIDKey key = "user_id"

// TokenHeader is the plain header clients may send the access token in.
// "Authorization: Bearer <token>" is accepted as well.
const TokenHeader = "token"

// TokenVerifier resolves a bearer token to its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate verifies the request token and stores its subject in the context.
// Requests without a valid token get a 401 envelope and never reach next.
func Authenticate(tokens TokenVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				metrics.IncTokenVerification(metrics.ResultRejected)
				respond.Error(w, http.StatusUnauthorized, respond.CodeInvalidToken, "missing token")
				return
			}

			subject, err := tokens.Verify(raw)
			if err != nil {
				metrics.IncTokenVerification(metrics.ResultRejected)
				log.Warn("token rejected",
					"request_id", chimw.GetReqID(r.Context()),
					"path", r.URL.Path,
					"error", err)
				respond.Error(w, http.StatusUnauthorized, respond.CodeInvalidToken, "invalid token")
				return
			}

			metrics.IncTokenVerification(metrics.ResultOK)
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), subject)))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(TokenHeader)); v != "" {
		return v
	}
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > len("Bearer ") && strings.EqualFold(authHeader[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns the subject stored by Authenticate.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
