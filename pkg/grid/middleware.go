package grid

import (
	"crypto/subtle"
	"errors"
	"net"
	"net/http"
	"strings"
)

// authMiddleware rejects requests that do not carry the configured access
// token.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.authorize(r) {
			respondError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authorize validates the request's access token. The comparison is constant
// time so the token cannot be recovered through timing probes.
func (s *Server) authorize(r *http.Request) bool {
	if s.cfg.AuthToken == "" {
		return true
	}
	token := extractAccessToken(r)
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AuthToken)) == 1
}

// extractAccessToken reads the bearer header, falling back to the
// access_token query parameter for WebSocket clients that cannot set
// headers.
func extractAccessToken(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return strings.TrimSpace(r.URL.Query().Get("access_token"))
}

// isOriginAllowed gates WebSocket upgrades. Requests without an Origin
// header come from non-browser clients and pass; browser origins must match
// one of the configured patterns.
func (s *Server) isOriginAllowed(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	for _, pattern := range s.originPatterns {
		if pattern.Match(origin) {
			return true
		}
	}
	return false
}

func isLoopbackBindAddress(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return false
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	host = strings.TrimSpace(host)
	if host == "" {
		return false
	}
	switch strings.ToLower(host) {
	case "localhost":
		return true
	case "0.0.0.0", "::":
		return false
	default:
		ip := net.ParseIP(host)
		if ip == nil {
			return false
		}
		return ip.IsLoopback()
	}
}
