package auth

import (
	"net/http"
	"time"
)

// CookieOptions describes how the transport should deliver the token. The
// core never writes headers itself.
type CookieOptions struct {
	Name     string
	Path     string
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
	MaxAge   time.Duration
}

// NewCookieOptions returns http-only, root-scoped options whose lifetime
// matches the token validity.
func NewCookieOptions(name string, secure bool, validity time.Duration) CookieOptions {
	return CookieOptions{
		Name:     name,
		Path:     "/",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   validity,
	}
}

// Cookie materializes the options for value, expiring at now+MaxAge.
func (o CookieOptions) Cookie(value string, now time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     o.Name,
		Value:    value,
		Path:     o.Path,
		HttpOnly: o.HTTPOnly,
		Secure:   o.Secure,
		SameSite: o.SameSite,
		MaxAge:   int(o.MaxAge.Seconds()),
		Expires:  now.Add(o.MaxAge),
	}
}

// Expired returns a cookie that makes the browser drop the token.
func (o CookieOptions) Expired() *http.Cookie {
	return &http.Cookie{
		Name:     o.Name,
		Value:    "",
		Path:     o.Path,
		HttpOnly: o.HTTPOnly,
		Secure:   o.Secure,
		SameSite: o.SameSite,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	}
}
