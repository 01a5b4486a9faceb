package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubSession bool

func (s stubSession) Authenticated() bool { return bool(s) }

func TestGuard(t *testing.T) {
	tests := []struct {
		name         string
		authed       bool
		path         string
		wantStatus   int
		wantLocation string
	}{
		{"anonymous root goes to login", false, "/", http.StatusSeeOther, "/login"},
		{"authed root goes to events", true, "/", http.StatusSeeOther, "/events"},
		{"anonymous login passes", false, "/login", http.StatusOK, ""},
		{"anonymous register passes", false, "/register", http.StatusOK, ""},
		{"authed login bounces to events", true, "/login", http.StatusSeeOther, "/events"},
		{"authed register bounces to events", true, "/register", http.StatusSeeOther, "/events"},
		{"anonymous events redirects to login", false, "/events", http.StatusSeeOther, "/login"},
		{"authed events passes", true, "/events", http.StatusOK, ""},
		{"anonymous users redirects to login", false, "/users", http.StatusSeeOther, "/login"},
		{"anonymous api gets 401", false, "/api/events", http.StatusUnauthorized, ""},
		{"authed api passes", true, "/api/events", http.StatusOK, ""},
		{"static always passes", false, "/static/app.css", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := Guard(stubSession(tt.authed))(next)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/events", nil))

	for _, header := range []string{"Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options", "Referrer-Policy"} {
		if rec.Header().Get(header) == "" {
			t.Errorf("missing %s header", header)
		}
	}
}

func TestCSRFExemptsJSON(t *testing.T) {
	key := make([]byte, 32)
	handler := CSRF(key)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// JSON requests bypass CSRF entirely
	req := httptest.NewRequest("POST", "/api/events/search", nil)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("JSON request status = %d, want 200", rec.Code)
	}

	// Form posts without a token are rejected
	req = httptest.NewRequest("POST", "/events/create", nil)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("tokenless form status = %d, want 403", rec.Code)
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("inner"), mw("outer"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
