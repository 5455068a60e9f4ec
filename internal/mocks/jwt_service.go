package mocks

import (
	"context"

	"github.com/phrazzld/deckorder-api/internal/service/auth"
)

// MockJWTService is a function-field double for auth.JWTService. Tests
// either assign the Fn hooks or, for the common fixed-result case, set
// the default fields directly.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, subject string) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Defaults returned when the corresponding Fn hook is unset.
	Token       string
	Err         error
	ValidateErr error
	Claims      *auth.Claims
}

func (m *MockJWTService) GenerateToken(ctx context.Context, subject string) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, subject)
	}
	return m.Token, m.Err
}

func (m *MockJWTService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

var _ auth.JWTService = (*MockJWTService)(nil)
