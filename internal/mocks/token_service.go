package mocks

import (
	"context"
	"time"

	"github.com/festivore/festival-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// Function fields for customizable behavior
	GenerateTokenFn func(ctx context.Context, identity auth.Identity) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values returned when no function field is set
	Token    string
	Claims   *auth.Claims
	Err      error
	Lifetime time.Duration

	// Call recording
	LastIdentity auth.Identity
}

// NewMockTokenService creates a mock with a fixed token and lifetime
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{
		Token:    "mock-token",
		Lifetime: time.Hour,
	}
}

// GenerateToken implements the TokenService interface
func (m *MockTokenService) GenerateToken(ctx context.Context, identity auth.Identity) (string, error) {
	m.LastIdentity = identity

	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, identity)
	}

	if m.Err != nil {
		return "", m.Err
	}

	return m.Token, nil
}

// ValidateToken implements the TokenService interface
func (m *MockTokenService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	if m.Claims != nil {
		return m.Claims, nil
	}

	return nil, auth.ErrInvalidToken
}

// TokenLifetime implements the TokenService interface
func (m *MockTokenService) TokenLifetime() time.Duration {
	return m.Lifetime
}
