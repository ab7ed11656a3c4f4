// Package common defines shared constants and sentinel errors used across
// the storage, service and transport layers of credkeeper. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")

	// Service-level errors. These are the only values the transport layer
	// needs to classify; everything else collapses into ErrorInternal.
	ErrorInternal         = errors.New("internal error")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Hashing boundary errors.
	ErrInvalidInput = errors.New("invalid input")

	// Token errors.
	ErrSigning      = errors.New("token signing error")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
