package identity

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/domain"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
)

type stubVerifier struct {
	payload     *ports.TokenPayload
	err         error
	gotToken    string
	hadDeadline bool
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (*ports.TokenPayload, error) {
	s.gotToken = token
	_, s.hadDeadline = ctx.Deadline()
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func TestTokenResolverResolvesSubject(t *testing.T) {
	verifier := &stubVerifier{payload: &ports.TokenPayload{Subject: "user-123"}}
	resolver := NewTokenResolver(verifier)

	r := httptest.NewRequest("GET", "/results/boston", nil)
	r.Header.Set("Authorization", "Bearer some-token")

	identity, err := resolver.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, "user-123", identity)
	assert.Equal(t, "some-token", verifier.gotToken)
	assert.True(t, verifier.hadDeadline, "provider calls must carry a bounded timeout")
}

func TestTokenResolverRejectsMissingBearer(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bare token", "some-token"},
		{"empty bearer", "Bearer "},
	}

	resolver := NewTokenResolver(&stubVerifier{payload: &ports.TokenPayload{Subject: "x"}})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/vote", nil)
			if tt.value != "" {
				r.Header.Set("Authorization", tt.value)
			}

			_, err := resolver.Resolve(r)
			assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
		})
	}
}

func TestTokenResolverPropagatesVerifierFailure(t *testing.T) {
	verifyErr := errors.New("signature mismatch")
	resolver := NewTokenResolver(&stubVerifier{err: verifyErr})

	r := httptest.NewRequest("POST", "/vote", nil)
	r.Header.Set("Authorization", "Bearer bad-token")

	_, err := resolver.Resolve(r)
	assert.ErrorIs(t, err, verifyErr)
}

func TestTokenResolverSurfacesProviderTimeout(t *testing.T) {
	resolver := NewTokenResolver(&stubVerifier{err: context.DeadlineExceeded})

	r := httptest.NewRequest("POST", "/vote", nil)
	r.Header.Set("Authorization", "Bearer slow-token")

	_, err := resolver.Resolve(r)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTokenResolverRejectsEmptySubject(t *testing.T) {
	resolver := NewTokenResolver(&stubVerifier{payload: &ports.TokenPayload{}})

	r := httptest.NewRequest("POST", "/vote", nil)
	r.Header.Set("Authorization", "Bearer some-token")

	_, err := resolver.Resolve(r)
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}
