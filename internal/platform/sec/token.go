// Copyright (c) 2026 Gamedex. All rights reserved.
// Author: minh.nguyenvu.dev@gmail.com

/*
Package sec implements the token-based guard for catalog mutation endpoints.

Gamedex has no end-user accounts; the only protected surface is the set of
administrative write operations (create, update, delete). Those are guarded by
short HS256 bearer tokens minted out-of-band and verified here.
*/
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/minhngvu/gamedex/internal/platform/constants"
)

// AdminClaims is the verified identity attached to an authenticated request.
type AdminClaims struct {
	// Subject identifies the operator the token was issued to.
	Subject string
}

// TokenService signs and verifies admin bearer tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService builds a [TokenService] from the shared signing secret.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, errors.New("sec: admin token secret must be at least 32 bytes")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Sign issues a token for the given subject with the given lifetime.
// Used by operator tooling and tests; the API server only verifies.
func (s *TokenService) Sign(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    constants.AuthIssuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, returning the admin claims.
func (s *TokenService) Verify(raw string) (*AdminClaims, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(raw, claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method %q", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithIssuer(constants.AuthIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("sec: token verification failed: %w", err)
	}

	return &AdminClaims{Subject: claims.Subject}, nil
}
