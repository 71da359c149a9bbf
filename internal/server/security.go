package server

import (
	"net/http"
	"slices"
	"strings"
)

// SecurityConfig holds the header and CORS policy applied to every route.
type SecurityConfig struct {
	// EnableCORS turns on Access-Control-* headers.
	EnableCORS bool
	// AllowedOrigins lists origins allowed by CORS; "*" allows any origin.
	AllowedOrigins []string
	// AllowedMethods lists methods advertised in CORS responses.
	AllowedMethods []string
}

// DefaultSecurityConfig returns the policy used by the metrics server:
// CORS open to any origin for read-only methods.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}
}

// SecurityMiddleware sets standard security headers, applies the CORS
// policy and answers OPTIONS preflight requests with 204 No Content.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin, ok := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "3600")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// allowedOrigin returns the value for Access-Control-Allow-Origin.
func allowedOrigin(allowed []string, origin string) (string, bool) {
	if slices.Contains(allowed, "*") {
		return "*", true
	}
	if origin != "" && slices.Contains(allowed, origin) {
		return origin, true
	}
	return "", false
}
