package apperrors

import (
	"errors"
	"fmt"
)

// Common error types for the card server. Every protected operation returns
// one of these sentinels (possibly wrapped); the HTTP layer maps them to
// status codes without inspecting anything else.
var (
	// Authentication / authorization errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Challenge errors
	ErrNoPendingChallenge = errors.New("no pending challenge")
	ErrChallengeExpired   = errors.New("challenge expired")
	ErrInvalidCode        = errors.New("invalid code")

	// Wallet errors
	ErrProviderNotConfigured = errors.New("wallet provider not configured")
	ErrKeyImport             = errors.New("key import failed")
	ErrSigningFailed         = errors.New("signing failed")

	// General errors
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrServer     = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
