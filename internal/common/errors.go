// Package common defines shared constants and sentinel errors used across
// the layers of the reform guide server. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorNameTaken     = errors.New("name already taken")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors. Expired, tampered and malformed tokens all collapse into
	// ErrInvalidToken.
	ErrInvalidToken = errors.New("invalid token")

	// Reform guide pipeline errors.
	ErrNoDetection = errors.New("no garment detected")
	ErrBlobExists  = errors.New("blob already exists")
)
