package middleware

import (
	"net/http"
	"strings"
)

// OriginPolicy holds the configured browser-origin allow list. HTTP CORS
// and the websocket upgrader consult the same policy so the two transports
// cannot drift apart.
type OriginPolicy struct {
	allowAll bool
	origins  map[string]bool
}

// NewOriginPolicy parses the comma-separated origin list from config;
// "*" allows everything (development default).
func NewOriginPolicy(allowedOrigins string) *OriginPolicy {
	p := &OriginPolicy{origins: make(map[string]bool)}
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			p.allowAll = true
		} else if o != "" {
			p.origins[o] = true
		}
	}
	return p
}

// Allows reports whether the given Origin header value is acceptable.
// An empty origin means the caller is not a browser making a cross-origin
// request, so it passes.
func (p *OriginPolicy) Allows(origin string) bool {
	if origin == "" {
		return true
	}
	return p.allowAll || p.origins[origin]
}

// CORSWithOrigins builds a CORS middleware from the shared origin policy.
func CORSWithOrigins(allowedOrigins string) func(http.Handler) http.Handler {
	policy := NewOriginPolicy(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && policy.Allows(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
				w.Header().Set("Access-Control-Max-Age", "86400")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
