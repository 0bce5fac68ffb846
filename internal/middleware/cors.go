package middleware

import (
	"net/http"
	"strings"
)

// CORS sets CORS headers for allowed origins and answers preflight requests.
// An allowlist containing "*" admits every origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make(map[string]struct{})
	allowAll := false
	for _, o := range allowedOrigins {
		trimmed := strings.TrimSpace(o)
		if trimmed == "*" {
			allowAll = true
		}
		if trimmed != "" {
			origins[trimmed] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				_, ok := origins[origin]
				if allowAll || ok {
					h := w.Header()
					if allowAll {
						h.Set("Access-Control-Allow-Origin", "*")
					} else {
						h.Set("Access-Control-Allow-Origin", origin)
						h.Add("Vary", "Origin")
					}
					h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
					h.Set("Access-Control-Allow-Headers", "Content-Type")
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
