// Package auth holds the credential primitives of the server: password
// hashing and signed token issuance.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs HS256 tokens whose payload is exactly the subject plus
// iat and exp. The key is fixed at construction and never exposed.
type TokenIssuer struct {
	secretKey        []byte
	validityDuration time.Duration
	now              func() time.Time
}

// NewTokenIssuer fails with common.ErrSigning when the key is missing or the
// validity is not positive. Callers treat this as a startup failure.
func NewTokenIssuer(secretKey string, validityDuration time.Duration) (*TokenIssuer, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("%w: empty secret key", common.ErrSigning)
	}
	if validityDuration <= 0 {
		return nil, fmt.Errorf("%w: non-positive token validity %s", common.ErrSigning, validityDuration)
	}

	return &TokenIssuer{
		secretKey:        []byte(secretKey),
		validityDuration: validityDuration,
		now:              time.Now,
	}, nil
}

// ValidityDuration is the lifetime of every issued token.
func (i *TokenIssuer) ValidityDuration() time.Duration {
	return i.validityDuration
}

func (i *TokenIssuer) Issue(userID string) (string, error) {
	issuedAt := i.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.validityDuration)),
	})

	tokenString, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrSigning, err)
	}

	return tokenString, nil
}

// Verify checks signature, algorithm and expiry and returns the subject.
// Expired tokens yield common.ErrTokenExpired, anything else wrong yields
// common.ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
