package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testSessions(t *testing.T) *SessionStore {
	t.Helper()
	sessions, err := NewSessionStore(Config{SessionSecret: "test-secret"})
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	return sessions
}

func loginRequest(t *testing.T, sessions *SessionStore, method, path string) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := sessions.Create(rec); err != nil {
		t.Fatalf("create session: %v", err)
	}
	req := httptest.NewRequest(method, path, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tests := []struct {
		name     string
		cfg      Config
		password string
		want     bool
	}{
		{"plaintext match", Config{AdminPassword: "s3cret"}, "s3cret", true},
		{"plaintext mismatch", Config{AdminPassword: "s3cret"}, "wrong", false},
		{"bcrypt match", Config{AdminPasswordHash: hash}, "s3cret", true},
		{"bcrypt mismatch", Config{AdminPasswordHash: hash}, "wrong", false},
		{"hash wins over plaintext", Config{AdminPassword: "other", AdminPasswordHash: hash}, "s3cret", true},
		{"nothing configured", Config{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.CheckPassword(tt.password); got != tt.want {
				t.Errorf("CheckPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestSessionRoundTrip(t *testing.T) {
	sessions := testSessions(t)
	req := loginRequest(t, sessions, http.MethodGet, "/admin")

	if err := sessions.Validate(req); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestValidateRejectsMissingCookie(t *testing.T) {
	sessions := testSessions(t)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)

	if err := sessions.Validate(req); err == nil {
		t.Error("expected error for missing cookie")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issued := testSessions(t)
	req := loginRequest(t, issued, http.MethodGet, "/admin")

	other, err := NewSessionStore(Config{SessionSecret: "different-secret"})
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	if err := other.Validate(req); err == nil {
		t.Error("expected error for token signed with another secret")
	}
}

func TestValidateRejectsExpiredSession(t *testing.T) {
	sessions := testSessions(t)
	req := loginRequest(t, sessions, http.MethodGet, "/admin")

	sessions.now = func() time.Time { return time.Now().Add(sessionExpiry + time.Minute) }
	if err := sessions.Validate(req); err == nil {
		t.Error("expected error for expired session")
	}
}

func TestDestroyClearsCookie(t *testing.T) {
	sessions := testSessions(t)
	rec := httptest.NewRecorder()
	sessions.Destroy(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != cookieName || cookies[0].MaxAge != -1 {
		t.Errorf("cookies = %+v, want cleared %s", cookies, cookieName)
	}
}

func TestRequireAdmin(t *testing.T) {
	sessions := testSessions(t)
	handler := RequireAdmin(sessions, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		method     string
		path       string
		withCookie bool
		wantStatus int
	}{
		{"public page", http.MethodGet, "/destinations/kenya", false, http.StatusOK},
		{"public api read", http.MethodGet, "/api/search?q=safari", false, http.StatusOK},
		{"login page", http.MethodGet, "/admin/login", false, http.StatusOK},
		{"login api", http.MethodPost, "/api/admin/login", false, http.StatusOK},
		{"admin page redirects", http.MethodGet, "/admin/destinations", false, http.StatusSeeOther},
		{"admin page with session", http.MethodGet, "/admin/destinations", true, http.StatusOK},
		{"write api rejected", http.MethodPost, "/api/destinations", false, http.StatusUnauthorized},
		{"write api with session", http.MethodPost, "/api/destinations", true, http.StatusOK},
		{"audit log rejected", http.MethodGet, "/api/admin/log", false, http.StatusUnauthorized},
		{"delete rejected", http.MethodDelete, "/api/tags/safari", false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.withCookie {
				req = loginRequest(t, sessions, tt.method, tt.path)
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRedirectCarriesOriginalPath(t *testing.T) {
	sessions := testSessions(t)
	handler := RequireAdmin(sessions, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/admin/audit-log", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/admin/login?from=") || !strings.Contains(loc, "audit-log") {
		t.Errorf("location = %q, want login redirect with from", loc)
	}
}
