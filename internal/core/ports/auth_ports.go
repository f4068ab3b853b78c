package ports

import (
	"context"
	"net/http"
)

type TokenPayload struct {
	Subject string
}

// TokenVerifier checks a bearer credential against the external identity
// provider and yields its stable subject.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*TokenPayload, error)
}

// IdentityResolver produces a stable identity string for the caller of r, or
// fails with an error that the HTTP layer reports as UNAUTHORIZED. Exactly
// one implementation is active per deployment.
type IdentityResolver interface {
	Resolve(r *http.Request) (string, error)
}
