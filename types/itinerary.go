package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItineraryTotals holds the aggregate cost of a saved itinerary. Cash and fees
// are stored as exact decimals; points are whole units.
type ItineraryTotals struct {
	Cash   decimal.Decimal `json:"cash"`
	Points float64         `json:"points"`
	Fees   decimal.Decimal `json:"fees"`
}

// Itinerary is a saved booking plan: which flights cover which legs, plus the
// aggregate totals at save time. The per-flight payment method is not stored;
// the booking-step analyzer recomputes it from the current wallet on demand.
type Itinerary struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	TripID      string           `json:"tripId,omitempty"`
	Name        string           `json:"name,omitempty"`
	Assignments map[int][]string `json:"assignments"` // legIndex -> flight IDs
	Totals      ItineraryTotals  `json:"totals"`
	Travelers   int              `json:"travelers"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ItineraryCreate is the request body for saving an itinerary.
type ItineraryCreate struct {
	TripID      string           `json:"tripId,omitempty"`
	Name        string           `json:"name,omitempty" binding:"omitempty,max=255"`
	Assignments map[int][]string `json:"assignments" binding:"required"`
	Totals      ItineraryTotals  `json:"totals"`
	Travelers   int              `json:"travelers" binding:"required,min=1"`
}
