package auth

import (
	"net/http"
	"net/url"
	"strings"
)

// RequireAdmin is middleware that protects the admin UI and mutating API
// routes. Unauthenticated admin page requests are redirected to the login
// page with the original path in ?from=; unauthenticated API requests get a
// plain 401. Everything outside the protected surface passes through.
func RequireAdmin(sessions *SessionStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case isAdminPagePath(r.URL.Path):
			if err := sessions.Validate(r); err != nil {
				http.Redirect(w, r, "/admin/login?from="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
				return
			}
		case isProtectedAPIPath(r.URL.Path, r.Method):
			if err := sessions.Validate(r); err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isAdminPagePath(path string) bool {
	if path == "/admin/login" {
		return false
	}
	return path == "/admin" || strings.HasPrefix(path, "/admin/")
}

// isProtectedAPIPath reports whether an API request needs a session. Reads
// are public except the audit log; writes are admin-only except login.
func isProtectedAPIPath(path, method string) bool {
	if !strings.HasPrefix(path, "/api/") {
		return false
	}
	if path == "/api/admin/login" {
		return false
	}
	if strings.HasPrefix(path, "/api/admin/") {
		return true
	}
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}
