package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atikxb/manufacturing-company-server-side/internal/clock"
	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

// tokenTTL is fixed per issuance; expiry is not negotiable by callers.
const tokenTTL = 24 * time.Hour

// Issuer creates and verifies the bearer credentials that identify callers.
// Tokens are HS256-signed JWTs whose subject is the account email.
type Issuer struct {
	secret []byte
	clock  clock.Clock
}

func NewIssuer(secret string, clk clock.Clock) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		clock:  clk,
	}
}

// Issue returns a signed token for the given email, valid for 24 hours.
func (i *Issuer) Issue(email string) (string, error) {
	if email == "" {
		return "", domain.ErrEmailRequired
	}

	now := i.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded email.
// Any verification failure is reported as domain.ErrInvalidToken; the caller
// does not learn why a credential was rejected.
func (i *Issuer) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", domain.ErrUnauthenticated
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
