package authservice

import "errors"

var (
	// ErrInvalidRole is returned when the requested role is not a known value.
	ErrInvalidRole = errors.New("invalid role")

	// ErrCredsDisabled is returned when NATS credential minting is not configured.
	ErrCredsDisabled = errors.New("credential minting is not configured")

	// ErrMissingInstance is returned when the credentials request names no instance.
	ErrMissingInstance = errors.New("instance name is required")
)
