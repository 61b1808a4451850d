package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/Lixing-Zhang/conference-checkout/internal/config"
)

// APIKeyAuth validates the "api_key" header against the configured storefront keys
func APIKeyAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("api_key")

			if apiKey == "" {
				http.Error(w, "Unauthorized: API key required", http.StatusUnauthorized)
				return
			}

			if !validAPIKey(apiKey, cfg.APIKeys) {
				http.Error(w, "Forbidden: Invalid API key", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func validAPIKey(apiKey string, keys []string) bool {
	for _, validKey := range keys {
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(validKey)) == 1 {
			return true
		}
	}
	return false
}
