package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCookieOptions(t *testing.T) {
	o := NewCookieOptions("authToken", true, 24*time.Hour)

	assert.Equal(t, "/", o.Path)
	assert.True(t, o.HTTPOnly)
	assert.True(t, o.Secure)
	assert.Equal(t, http.SameSiteLaxMode, o.SameSite)

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	c := o.Cookie("tok", now)
	assert.Equal(t, "authToken", c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, 86400, c.MaxAge)
	assert.Equal(t, now.Add(24*time.Hour), c.Expires)
}

func TestCookieOptions_Expired(t *testing.T) {
	c := NewCookieOptions("authToken", false, time.Hour).Expired()

	assert.Equal(t, "authToken", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.Equal(t, "/", c.Path)
}
