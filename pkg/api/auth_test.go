package api

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/psaab/pnfcli/pkg/auth"
)

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestAuthMiddleware(t *testing.T) {
	hashed, err := auth.HashSecret("enable-me")
	if err != nil {
		t.Fatal(err)
	}
	cfg := AuthConfig{
		Users:  map[string]string{"admin": "secret123", "ops": hashed},
		Tokens: []string{"tok-abc-123"},
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := authMiddleware(cfg, ok)

	tests := []struct {
		name   string
		path   string
		header map[string]string
		want   int
	}{
		{
			name: "health bypass",
			path: "/health",
			want: http.StatusOK,
		},
		{
			name: "metrics bypass",
			path: "/metrics",
			want: http.StatusOK,
		},
		{
			name: "no auth",
			path: "/api/v1/status",
			want: http.StatusUnauthorized,
		},
		{
			name:   "valid basic auth",
			path:   "/api/v1/status",
			header: map[string]string{"Authorization": basicAuth("admin", "secret123")},
			want:   http.StatusOK,
		},
		{
			name:   "valid basic auth against bcrypt hash",
			path:   "/api/v1/config/startup",
			header: map[string]string{"Authorization": basicAuth("ops", "enable-me")},
			want:   http.StatusOK,
		},
		{
			name:   "wrong password against bcrypt hash",
			path:   "/api/v1/config/startup",
			header: map[string]string{"Authorization": basicAuth("ops", "nope")},
			want:   http.StatusUnauthorized,
		},
		{
			name:   "invalid basic auth password",
			path:   "/api/v1/status",
			header: map[string]string{"Authorization": basicAuth("admin", "wrong")},
			want:   http.StatusUnauthorized,
		},
		{
			name:   "unknown user",
			path:   "/api/v1/status",
			header: map[string]string{"Authorization": basicAuth("nobody", "secret123")},
			want:   http.StatusUnauthorized,
		},
		{
			name:   "valid bearer token",
			path:   "/api/v1/status",
			header: map[string]string{"Authorization": "Bearer tok-abc-123"},
			want:   http.StatusOK,
		},
		{
			name:   "invalid bearer token",
			path:   "/api/v1/status",
			header: map[string]string{"Authorization": "Bearer wrong-token"},
			want:   http.StatusUnauthorized,
		},
		{
			name:   "valid X-API-Key",
			path:   "/api/v1/status",
			header: map[string]string{"X-API-Key": "tok-abc-123"},
			want:   http.StatusOK,
		},
		{
			name:   "invalid X-API-Key",
			path:   "/api/v1/status",
			header: map[string]string{"X-API-Key": "bad-key"},
			want:   http.StatusUnauthorized,
		},
		{
			name:   "malformed basic auth",
			path:   "/api/v1/status",
			header: map[string]string{"Authorization": "Basic !!!notbase64"},
			want:   http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("got status %d, want %d", w.Code, tt.want)
			}

			if tt.want == http.StatusUnauthorized {
				if wa := w.Header().Get("WWW-Authenticate"); wa == "" {
					t.Error("expected WWW-Authenticate header on 401")
				}
			}
		})
	}
}
