package auth

import "errors"

// Sentinel errors the token verifier returns. The API middleware maps
// these onto 401 responses without leaking parser detail.
var (
	// ErrInvalidToken covers malformed tokens and signature mismatches.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken means the exp claim is in the past.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid means the nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken means a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrEmptySubject rejects minting a token with a blank subject.
	ErrEmptySubject = errors.New("token subject cannot be empty")
)
