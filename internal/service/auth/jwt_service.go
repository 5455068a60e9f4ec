package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
// There are no user accounts; a token's subject is the name of the host
// profile it was minted for, carried through to request logging.
type JWTService interface {
	// GenerateToken creates a signed JWT for the given subject.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns the claims if the token is valid, or an error if validation
	// fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the claims carried by a validated token.
type Claims struct {
	// Subject names the host profile the token was minted for.
	Subject string `json:"sub,omitempty"`

	// Standard registered JWT claims
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
