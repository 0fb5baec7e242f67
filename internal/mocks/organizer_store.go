package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/festivore/festival-api/internal/domain"
	"github.com/festivore/festival-api/internal/store"
)

// MockOrganizerProfileStore implements store.OrganizerProfileStore for testing
type MockOrganizerProfileStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, profile *domain.OrganizerProfile) error
	GetByUserIDFn func(ctx context.Context, userID uuid.UUID) (*domain.OrganizerProfile, error)

	// Data for default implementation, keyed by owning user ID
	Profiles map[uuid.UUID]*domain.OrganizerProfile

	// Call recording
	CreateCallCount int
}

// NewMockOrganizerProfileStore creates a new mock store with initialized defaults
func NewMockOrganizerProfileStore() *MockOrganizerProfileStore {
	return &MockOrganizerProfileStore{
		Profiles: make(map[uuid.UUID]*domain.OrganizerProfile),
	}
}

// Create implements the OrganizerProfileStore interface
func (m *MockOrganizerProfileStore) Create(ctx context.Context, profile *domain.OrganizerProfile) error {
	m.CreateCallCount++

	if m.CreateFn != nil {
		return m.CreateFn(ctx, profile)
	}

	if _, exists := m.Profiles[profile.UserID]; exists {
		return store.ErrProfileExists
	}

	m.Profiles[profile.UserID] = profile
	return nil
}

// GetByUserID implements the OrganizerProfileStore interface
func (m *MockOrganizerProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.OrganizerProfile, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}

	profile, exists := m.Profiles[userID]
	if !exists {
		return nil, store.ErrProfileNotFound
	}

	return profile, nil
}

// WithTx implements the OrganizerProfileStore interface for transaction support
func (m *MockOrganizerProfileStore) WithTx(tx *sql.Tx) store.OrganizerProfileStore {
	// For mock purposes, just return the same mock
	return m
}
