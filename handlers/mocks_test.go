package handlers

import (
	"context"

	internal_store "github.com/MileWise/milewise-backend/internal/store"
	"github.com/MileWise/milewise-backend/types"
	"github.com/stretchr/testify/mock"
)

// MockWalletStore implements internal_store.WalletStore for handler tests.
type MockWalletStore struct {
	mock.Mock
}

var _ internal_store.WalletStore = (*MockWalletStore)(nil)

func (m *MockWalletStore) CreateEntry(ctx context.Context, userID string, create types.WalletEntryCreate) (*types.WalletEntry, error) {
	args := m.Called(ctx, userID, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.WalletEntry), args.Error(1)
}

func (m *MockWalletStore) GetEntry(ctx context.Context, id string) (*types.WalletEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.WalletEntry), args.Error(1)
}

func (m *MockWalletStore) ListEntries(ctx context.Context, userID string) ([]types.WalletEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.WalletEntry), args.Error(1)
}

func (m *MockWalletStore) UpdateEntry(ctx context.Context, id string, userID string, update types.WalletEntryUpdate) (*types.WalletEntry, error) {
	args := m.Called(ctx, id, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.WalletEntry), args.Error(1)
}

func (m *MockWalletStore) DeleteEntry(ctx context.Context, id string, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockItineraryStore implements internal_store.ItineraryStore for handler tests.
type MockItineraryStore struct {
	mock.Mock
}

var _ internal_store.ItineraryStore = (*MockItineraryStore)(nil)

func (m *MockItineraryStore) CreateItinerary(ctx context.Context, userID string, create types.ItineraryCreate) (*types.Itinerary, error) {
	args := m.Called(ctx, userID, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Itinerary), args.Error(1)
}

func (m *MockItineraryStore) GetItinerary(ctx context.Context, id string) (*types.Itinerary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Itinerary), args.Error(1)
}

func (m *MockItineraryStore) ListItineraries(ctx context.Context, userID string) ([]types.Itinerary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Itinerary), args.Error(1)
}

func (m *MockItineraryStore) DeleteItinerary(ctx context.Context, id string, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
