package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
)

// AuthMiddleware handles Basic authentication for the CCS API. Scoreboard
// tooling sends the credential either as an Authorization header or, for
// clients that cannot set headers on stream connections, as an ?auth= query
// parameter carrying the same base64 credential.
type AuthMiddleware struct {
	credential string
}

// NewAuthMiddleware creates a new AuthMiddleware for the configured feed
// username and password.
func NewAuthMiddleware(username, password string) *AuthMiddleware {
	return &AuthMiddleware{
		credential: base64.StdEncoding.EncodeToString([]byte(username + ":" + password)),
	}
}

// Authenticate validates the request credential before calling the next
// handler.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.authorized(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) authorized(r *http.Request) bool {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Basic") {
		credential := strings.TrimSpace(strings.TrimPrefix(authHeader, "Basic"))
		return m.matches(credential)
	}

	if authQuery := r.URL.Query().Get("auth"); authQuery != "" {
		if decoded, err := url.QueryUnescape(authQuery); err == nil {
			return m.matches(decoded)
		}
	}

	return false
}

func (m *AuthMiddleware) matches(credential string) bool {
	return subtle.ConstantTimeCompare([]byte(credential), []byte(m.credential)) == 1
}
