// Package flash keeps user-facing messages across a redirect. Messages are
// added while handling a form post and removed the first time they are read.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"bibiartisan/internal/domain"
)

// Store holds pending messages for one visitor
type Store interface {
	Add(w http.ResponseWriter, r *http.Request, msgs ...domain.Message) error
	Pop(w http.ResponseWriter, r *http.Request) ([]domain.Message, error)
}

const cookieName = "messages"

// CookieStore keeps messages in a base64 JSON cookie
type CookieStore struct {
	ttl    time.Duration
	secure bool
}

// NewCookieStore creates a cookie-backed store. Secure marks the cookie HTTPS-only.
func NewCookieStore(ttl time.Duration, secure bool) *CookieStore {
	return &CookieStore{ttl: ttl, secure: secure}
}

var _ Store = (*CookieStore)(nil)

// Add appends msgs to any messages already pending on the request
func (s *CookieStore) Add(w http.ResponseWriter, r *http.Request, msgs ...domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	pending, _ := decodeCookie(r)
	pending = append(pending, msgs...)

	data, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	http.SetCookie(w, s.cookie(base64.RawURLEncoding.EncodeToString(data), int(s.ttl.Seconds())))
	return nil
}

// Pop returns pending messages and clears the cookie. A malformed cookie is dropped.
func (s *CookieStore) Pop(w http.ResponseWriter, r *http.Request) ([]domain.Message, error) {
	if _, err := r.Cookie(cookieName); err != nil {
		return nil, nil
	}
	http.SetCookie(w, s.cookie("", -1))
	msgs, err := decodeCookie(r)
	if err != nil {
		return nil, nil
	}
	return msgs, nil
}

func (s *CookieStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func decodeCookie(r *http.Request) ([]domain.Message, error) {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return nil, err
	}
	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil, err
	}
	var msgs []domain.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
