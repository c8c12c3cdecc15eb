// Package jwtmw provides JWT token generation and the Gin auth middleware.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// emailTokenScope marks tokens minted for email confirmation so an access
// token can never be replayed against the confirm endpoint.
const emailTokenScope = "email"

// ErrInvalidEmailToken is returned when an email-confirmation token fails
// verification or carries the wrong scope.
var ErrInvalidEmailToken = errors.New("invalid email token")

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(userID uint, email string) (string, error)

	// GenerateEmailToken creates a signed email-confirmation token.
	GenerateEmailToken(email string) (string, error)

	// ParseEmailToken verifies an email-confirmation token and returns
	// the email address it was issued for.
	ParseEmailToken(token string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
	emailTTL   time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret,
// access-token expiration, and email-token expiration.
func NewGenerator(secret string, expiration, emailTTL time.Duration) Generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		emailTTL:   emailTTL,
	}
}

// GenerateToken creates a signed access token with standard claims.
func (g *generator) GenerateToken(userID uint, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"exp":   time.Now().Add(g.expiration).Unix(),
		"iat":   time.Now().Unix(),
		"email": email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// GenerateEmailToken creates a scoped token used in confirmation links.
func (g *generator) GenerateEmailToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   email,
		"scope": emailTokenScope,
		"exp":   time.Now().Add(g.emailTTL).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign email token: %w", err)
	}

	return signed, nil
}

// ParseEmailToken verifies the signature and scope of a confirmation token.
func (g *generator) ParseEmailToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidEmailToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidEmailToken
	}
	if scope, _ := claims["scope"].(string); scope != emailTokenScope {
		return "", ErrInvalidEmailToken
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", ErrInvalidEmailToken
	}

	return email, nil
}
