package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/MileWise/milewise-backend/errors"
	internal_store "github.com/MileWise/milewise-backend/internal/store"
	"github.com/MileWise/milewise-backend/logger"
	"github.com/MileWise/milewise-backend/types"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Ensure pgItineraryStore implements internal_store.ItineraryStore.
var _ internal_store.ItineraryStore = (*pgItineraryStore)(nil)

type pgItineraryStore struct {
	pool PgxPool
}

// NewPgItineraryStore creates a new PostgreSQL itinerary store.
func NewPgItineraryStore(pool PgxPool) internal_store.ItineraryStore {
	return &pgItineraryStore{pool: pool}
}

// Money totals are NUMERIC columns; they are selected as text and parsed back
// into decimals so no float rounding sneaks in on the way through.
const itineraryColumns = `id, user_id, trip_id, name, assignments, totals_cash::text, totals_points, totals_fees::text, travelers, created_at, updated_at`

func scanItinerary(row pgx.Row) (*types.Itinerary, error) {
	var (
		it              types.Itinerary
		assignmentsJSON []byte
		cashStr         string
		feesStr         string
	)
	err := row.Scan(
		&it.ID,
		&it.UserID,
		&it.TripID,
		&it.Name,
		&assignmentsJSON,
		&cashStr,
		&it.Totals.Points,
		&feesStr,
		&it.Travelers,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(assignmentsJSON, &it.Assignments); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary assignments: %w", err)
	}
	if it.Totals.Cash, err = decimal.NewFromString(cashStr); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary cash total: %w", err)
	}
	if it.Totals.Fees, err = decimal.NewFromString(feesStr); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary fees total: %w", err)
	}
	return &it, nil
}

// CreateItinerary implements internal_store.ItineraryStore.
func (s *pgItineraryStore) CreateItinerary(ctx context.Context, userID string, create types.ItineraryCreate) (*types.Itinerary, error) {
	log := logger.GetLogger()

	assignmentsJSON, err := json.Marshal(create.Assignments)
	if err != nil {
		return nil, fmt.Errorf("failed to encode itinerary assignments: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
        INSERT INTO itineraries (user_id, trip_id, name, assignments, totals_cash, totals_points, totals_fees, travelers)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING `+itineraryColumns,
		userID,
		create.TripID,
		create.Name,
		assignmentsJSON,
		create.Totals.Cash.String(),
		create.Totals.Points,
		create.Totals.Fees.String(),
		create.Travelers,
	)

	it, err := scanItinerary(row)
	if err != nil {
		log.Errorw("Failed to create itinerary", "userId", userID, "tripId", create.TripID, "error", err)
		return nil, fmt.Errorf("failed to insert itinerary: %w", err)
	}

	log.Infow("Created itinerary", "itineraryId", it.ID, "userId", userID, "tripId", it.TripID)
	return it, nil
}

// GetItinerary implements internal_store.ItineraryStore.
func (s *pgItineraryStore) GetItinerary(ctx context.Context, id string) (*types.Itinerary, error) {
	log := logger.GetLogger()

	row := s.pool.QueryRow(ctx, `
        SELECT `+itineraryColumns+`
        FROM itineraries
        WHERE id = $1`, id)

	it, err := scanItinerary(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Warnw("Itinerary not found", "itineraryId", id)
			return nil, apperrors.ItineraryNotFound(id)
		}
		log.Errorw("Failed to get itinerary", "itineraryId", id, "error", err)
		return nil, fmt.Errorf("failed to execute GetItinerary query: %w", err)
	}
	return it, nil
}

// ListItineraries implements internal_store.ItineraryStore.
func (s *pgItineraryStore) ListItineraries(ctx context.Context, userID string) ([]types.Itinerary, error) {
	log := logger.GetLogger()

	rows, err := s.pool.Query(ctx, `
        SELECT `+itineraryColumns+`
        FROM itineraries
        WHERE user_id = $1
        ORDER BY created_at DESC`, userID)
	if err != nil {
		log.Errorw("Failed to list itineraries", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to execute ListItineraries query: %w", err)
	}
	defer rows.Close()

	var itineraries []types.Itinerary
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		itineraries = append(itineraries, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading itineraries: %w", err)
	}
	return itineraries, nil
}

// DeleteItinerary implements internal_store.ItineraryStore.
func (s *pgItineraryStore) DeleteItinerary(ctx context.Context, id string, userID string) error {
	log := logger.GetLogger()

	tag, err := s.pool.Exec(ctx, `
        DELETE FROM itineraries
        WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Errorw("Failed to delete itinerary", "itineraryId", id, "error", err)
		return fmt.Errorf("failed to execute DeleteItinerary query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Warnw("Itinerary not found during delete", "itineraryId", id, "userId", userID)
		return apperrors.ItineraryNotFound(id)
	}

	log.Infow("Deleted itinerary", "itineraryId", id, "userId", userID)
	return nil
}
