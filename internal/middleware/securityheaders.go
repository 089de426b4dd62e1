package middleware

import (
	"net/http"
)

// SecurityHeaders marks every response as non-cacheable JSON that must not be framed or sniffed.
// Tokens travel in response bodies, so no-store applies to all routes. hsts adds
// Strict-Transport-Security for TLS deployments.
func SecurityHeaders(hsts bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Cache-Control", "no-store")
			if hsts {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
