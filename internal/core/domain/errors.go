package domain

import "errors"

var (
	ErrAlreadyVoted    = errors.New("already voted today")
	ErrInvalidCity     = errors.New("city is required")
	ErrInvalidIdentity = errors.New("missing or invalid identity")
	ErrInternal        = errors.New("internal server error")
)
