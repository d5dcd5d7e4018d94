package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/psaab/pnfcli/pkg/auth"
)

// AuthConfig holds the credentials accepted by the API.
type AuthConfig struct {
	// Users maps a username to its password, either a bcrypt hash (as
	// written by "enable secret") or plain text.
	Users  map[string]string
	Tokens []string // accepted as "Bearer <token>" or X-API-Key
}

// publicPaths answer without credentials so that probes and scrapers
// need no configuration.
var publicPaths = map[string]bool{"/health": true, "/metrics": true}

// authMiddleware wraps next with Basic, Bearer and X-API-Key checks.
func authMiddleware(cfg AuthConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if publicPaths[r.URL.Path] || cfg.allows(r) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="pnfcli API"`)
		writeError(w, http.StatusUnauthorized, "authentication required")
	})
}

func (cfg AuthConfig) allows(r *http.Request) bool {
	if key := r.Header.Get("X-API-Key"); key != "" && cfg.validToken(key) {
		return true
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return cfg.validToken(token)
	}
	user, pass, ok := r.BasicAuth()
	if !ok {
		return false
	}
	stored, exists := cfg.Users[user]
	if !exists {
		return false
	}
	if auth.IsHashed(stored) {
		return auth.CheckSecret(stored, pass)
	}
	return subtle.ConstantTimeCompare([]byte(pass), []byte(stored)) == 1
}

func (cfg AuthConfig) validToken(token string) bool {
	for _, t := range cfg.Tokens {
		if subtle.ConstantTimeCompare([]byte(token), []byte(t)) == 1 {
			return true
		}
	}
	return false
}
