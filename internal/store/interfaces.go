package store

import (
	"context"

	"github.com/MileWise/milewise-backend/types"
)

// WalletStore handles wallet-entry data operations
type WalletStore interface {
	CreateEntry(ctx context.Context, userID string, create types.WalletEntryCreate) (*types.WalletEntry, error)
	GetEntry(ctx context.Context, id string) (*types.WalletEntry, error)
	ListEntries(ctx context.Context, userID string) ([]types.WalletEntry, error)
	UpdateEntry(ctx context.Context, id string, userID string, update types.WalletEntryUpdate) (*types.WalletEntry, error)
	DeleteEntry(ctx context.Context, id string, userID string) error
}

// ItineraryStore handles saved-itinerary data operations
type ItineraryStore interface {
	CreateItinerary(ctx context.Context, userID string, create types.ItineraryCreate) (*types.Itinerary, error)
	GetItinerary(ctx context.Context, id string) (*types.Itinerary, error)
	ListItineraries(ctx context.Context, userID string) ([]types.Itinerary, error)
	DeleteItinerary(ctx context.Context, id string, userID string) error
}
