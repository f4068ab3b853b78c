package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/domain"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
)

const verifyTimeout = 5 * time.Second

type tokenResolver struct {
	verifier ports.TokenVerifier
}

// NewTokenResolver returns the verified-credential variant: the bearer token
// is checked against the identity provider and the token subject becomes the
// caller's identity.
func NewTokenResolver(verifier ports.TokenVerifier) ports.IdentityResolver {
	return &tokenResolver{verifier: verifier}
}

func (t *tokenResolver) Resolve(r *http.Request) (string, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return "", domain.ErrInvalidIdentity
	}

	// The provider call is outbound; bound it so a slow provider cannot
	// hang the request.
	ctx, cancel := context.WithTimeout(r.Context(), verifyTimeout)
	defer cancel()

	payload, err := t.verifier.Verify(ctx, token)
	if err != nil {
		return "", fmt.Errorf("token verification failed: %w", err)
	}
	if payload.Subject == "" {
		return "", domain.ErrInvalidIdentity
	}
	return payload.Subject, nil
}
