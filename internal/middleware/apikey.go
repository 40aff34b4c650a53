// Package middleware holds the HTTP middleware chain: API key gate, request
// IDs, per-client rate limiting and request timing logs.
package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// RequireAPIKey returns a middleware that gates requests on the X-API-KEY
// header matching secret. With an empty secret the gate is disabled and the
// middleware passes everything through.
func RequireAPIKey(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-API-KEY")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"code":    http.StatusUnauthorized,
					"message": "unauthorized: missing or invalid API key",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
