package server

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
)

// serve runs one request through SecurityMiddleware and reports whether the
// wrapped handler was reached.
func serve(cfg SecurityConfig, method, origin string) (*httptest.ResponseRecorder, bool) {
	reached := false
	h := SecurityMiddleware(cfg, func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusTeapot)
	})
	req := httptest.NewRequest(method, "/metrics", http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec, reached
}

func TestDefaultSecurityConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultSecurityConfig()
	if !cfg.EnableCORS || !slices.Equal(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("unexpected CORS defaults: %+v", cfg)
	}
	if !slices.Equal(cfg.AllowedMethods, []string{http.MethodGet, http.MethodOptions}) {
		t.Errorf("AllowedMethods = %v, want [GET OPTIONS]", cfg.AllowedMethods)
	}
}

func TestSecurityMiddleware_Headers(t *testing.T) {
	t.Parallel()
	rec, reached := serve(DefaultSecurityConfig(), http.MethodGet, "")
	if !reached || rec.Code != http.StatusTeapot {
		t.Fatalf("wrapped handler not reached (code %d)", rec.Code)
	}
	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "no-referrer",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
		"Cache-Control":           "no-store",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestSecurityMiddleware_CORS(t *testing.T) {
	t.Parallel()
	listed := SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"http://grafana.test"}, AllowedMethods: []string{http.MethodGet}}
	tests := []struct {
		name        string
		cfg         SecurityConfig
		method      string
		origin      string
		wantOrigin  string
		wantReached bool
	}{
		{"no origin", DefaultSecurityConfig(), http.MethodGet, "", "", true},
		{"wildcard", DefaultSecurityConfig(), http.MethodGet, "http://x.test", "http://x.test", true},
		{"disabled", SecurityConfig{AllowedOrigins: []string{"*"}}, http.MethodGet, "http://x.test", "", true},
		{"listed origin", listed, http.MethodGet, "http://grafana.test", "http://grafana.test", true},
		{"unlisted origin", listed, http.MethodGet, "http://x.test", "", true},
		{"preflight", DefaultSecurityConfig(), http.MethodOptions, "http://x.test", "http://x.test", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, reached := serve(tt.cfg, tt.method, tt.origin)
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.wantOrigin != "" && rec.Header().Get("Access-Control-Allow-Methods") == "" {
				t.Error("Access-Control-Allow-Methods should be set")
			}
			if reached != tt.wantReached {
				t.Errorf("handler reached = %v, want %v", reached, tt.wantReached)
			}
			if !tt.wantReached && rec.Code != http.StatusNoContent {
				t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
			}
		})
	}
}
