package token

import "errors"

var (
	// ErrTokenDoesNotExist covers both unknown and expired tokens, callers
	// must not be able to tell the two apart.
	ErrTokenDoesNotExist = errors.New("token does not exist or has expired")
	ErrDeliveryFailed    = errors.New("could not deliver token")
)
