// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the credkeeper server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: SQLite ("file:...") or PostgreSQL ("postgres://...") DSN.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: lifetime of issued tokens and of the auth cookie.
//   - CookieName / CookieSecure: how the token cookie is delivered.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	CookieName            string
	CookieSecure          bool
	LogLevel              string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3000"
	c.DatabaseDSN = "file:db.sqlite?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.CookieName = "authToken"
	c.CookieSecure = false
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
