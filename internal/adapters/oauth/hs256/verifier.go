// Package hs256 verifies provider-issued JWTs signed with a shared secret.
// Deployments whose identity provider hands out HS256 access tokens use this
// instead of the Google verifier.
package hs256

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
)

type Verifier struct {
	secret []byte
}

func NewVerifier(secret []byte) ports.TokenVerifier {
	return &Verifier{secret: secret}
}

func (v *Verifier) Verify(_ context.Context, tokenString string) (*ports.TokenPayload, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, errors.New("subject not found in claims")
	}
	return &ports.TokenPayload{Subject: subject}, nil
}
