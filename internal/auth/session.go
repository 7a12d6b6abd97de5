package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionExpiry = 24 * time.Hour
	cookieName    = "gtt_session"
	sessionRole   = "admin"
)

// SessionStore issues and validates signed admin session cookies. Sessions
// are stateless JWTs with a fixed expiry, so logout only clears the cookie.
type SessionStore struct {
	secret []byte
	now    func() time.Time
}

// NewSessionStore creates a session store from the given config.
func NewSessionStore(cfg Config) (*SessionStore, error) {
	secret, err := cfg.sessionSecret()
	if err != nil {
		return nil, err
	}
	return &SessionStore{secret: secret, now: time.Now}, nil
}

// Create issues a new admin session and sets the cookie.
func (s *SessionStore) Create(w http.ResponseWriter) error {
	now := s.now()
	expiresAt := now.Add(sessionExpiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sessionRole,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("signing session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Validate checks the session cookie and returns an error if the request is
// not an authenticated admin.
func (s *SessionStore) Validate(r *http.Request) error {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return fmt.Errorf("no session cookie")
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != sessionRole {
		return fmt.Errorf("invalid session claims")
	}

	return nil
}

// Destroy clears the session cookie.
func (s *SessionStore) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
