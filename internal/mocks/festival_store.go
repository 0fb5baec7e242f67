package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/festivore/festival-api/internal/domain"
	"github.com/festivore/festival-api/internal/store"
)

// MockFestivalStore implements store.FestivalStore for testing
type MockFestivalStore struct {
	// Function fields for customizable behavior
	CreateFn           func(ctx context.Context, event *domain.FestivalEvent) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.FestivalEvent, error)
	GetPublishedByIDFn func(ctx context.Context, id uuid.UUID) (*domain.FestivalEvent, error)
	UpdateFn           func(ctx context.Context, event *domain.FestivalEvent) error
	DeleteFn           func(ctx context.Context, id uuid.UUID) error
	ListPublishedFn    func(ctx context.Context, filter store.FestivalFilter, sort store.FestivalSort, page store.Page) ([]*domain.FestivalEvent, int, error)
	ListByOwnerFn      func(ctx context.Context, organizerProfileID uuid.UUID) ([]*domain.FestivalEvent, error)

	// Data for default implementation
	Festivals map[uuid.UUID]*domain.FestivalEvent

	// Call recording
	CreateCallCount int
	UpdateCallCount int
	DeleteCallCount int
	LastListFilter  store.FestivalFilter
	LastListSort    store.FestivalSort
	LastListPage    store.Page
}

// NewMockFestivalStore creates a new mock store with initialized defaults
func NewMockFestivalStore() *MockFestivalStore {
	return &MockFestivalStore{
		Festivals: make(map[uuid.UUID]*domain.FestivalEvent),
	}
}

// Create implements the FestivalStore interface
func (m *MockFestivalStore) Create(ctx context.Context, event *domain.FestivalEvent) error {
	m.CreateCallCount++

	if m.CreateFn != nil {
		return m.CreateFn(ctx, event)
	}

	m.Festivals[event.ID] = event
	return nil
}

// GetByID implements the FestivalStore interface
func (m *MockFestivalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.FestivalEvent, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	event, exists := m.Festivals[id]
	if !exists {
		return nil, store.ErrFestivalNotFound
	}

	return event, nil
}

// GetPublishedByID implements the FestivalStore interface
func (m *MockFestivalStore) GetPublishedByID(ctx context.Context, id uuid.UUID) (*domain.FestivalEvent, error) {
	if m.GetPublishedByIDFn != nil {
		return m.GetPublishedByIDFn(ctx, id)
	}

	event, exists := m.Festivals[id]
	if !exists || !event.IsPublished {
		return nil, store.ErrFestivalNotFound
	}

	return event, nil
}

// Update implements the FestivalStore interface
func (m *MockFestivalStore) Update(ctx context.Context, event *domain.FestivalEvent) error {
	m.UpdateCallCount++

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, event)
	}

	if _, exists := m.Festivals[event.ID]; !exists {
		return store.ErrFestivalNotFound
	}

	m.Festivals[event.ID] = event
	return nil
}

// Delete implements the FestivalStore interface
func (m *MockFestivalStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCallCount++

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Festivals[id]; !exists {
		return store.ErrFestivalNotFound
	}

	delete(m.Festivals, id)
	return nil
}

// ListPublished implements the FestivalStore interface
func (m *MockFestivalStore) ListPublished(ctx context.Context, filter store.FestivalFilter, sort store.FestivalSort, page store.Page) ([]*domain.FestivalEvent, int, error) {
	m.LastListFilter = filter
	m.LastListSort = sort
	m.LastListPage = page

	if m.ListPublishedFn != nil {
		return m.ListPublishedFn(ctx, filter, sort, page)
	}

	var matched []*domain.FestivalEvent
	for _, event := range m.Festivals {
		if event.IsPublished {
			matched = append(matched, event)
		}
	}

	return matched, len(matched), nil
}

// ListByOwner implements the FestivalStore interface
func (m *MockFestivalStore) ListByOwner(ctx context.Context, organizerProfileID uuid.UUID) ([]*domain.FestivalEvent, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, organizerProfileID)
	}

	var owned []*domain.FestivalEvent
	for _, event := range m.Festivals {
		if event.OrganizerProfileID == organizerProfileID {
			owned = append(owned, event)
		}
	}

	return owned, nil
}

// WithTx implements the FestivalStore interface for transaction support
func (m *MockFestivalStore) WithTx(tx *sql.Tx) store.FestivalStore {
	// For mock purposes, just return the same mock
	return m
}
