package google

import (
	"context"
	"errors"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
	"google.golang.org/api/idtoken"
)

type Verifier struct {
	clientID string
}

func NewVerifier(clientID string) ports.TokenVerifier {
	return &Verifier{clientID: clientID}
}

func (v *Verifier) Verify(ctx context.Context, token string) (*ports.TokenPayload, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, err
	}
	if payload.Subject == "" {
		return nil, errors.New("subject not found in token")
	}
	return &ports.TokenPayload{Subject: payload.Subject}, nil
}
