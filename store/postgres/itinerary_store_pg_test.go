package postgres

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/MileWise/milewise-backend/errors"
	"github.com/MileWise/milewise-backend/types"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itineraryCols = []string{"id", "user_id", "trip_id", "name", "assignments", "totals_cash", "totals_points", "totals_fees", "travelers", "created_at", "updated_at"}

func itineraryRow(mock pgxmock.PgxPoolIface, id string) *pgxmock.Rows {
	now := time.Now()
	return mock.NewRows(itineraryCols).
		AddRow(id, "user-1", "trip-1", "Tokyo in May", []byte(`{"0":["f1"],"1":["f2"]}`), "450.00", 60000.0, "56.00", 2, now, now)
}

func TestItineraryStoreCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPgItineraryStore(mock)

	mock.ExpectQuery("INSERT INTO itineraries").
		WithArgs("user-1", "trip-1", "Tokyo in May", []byte(`{"0":["f1"],"1":["f2"]}`), "450", 60000.0, "56", 2).
		WillReturnRows(itineraryRow(mock, "it-1"))

	it, err := store.CreateItinerary(context.Background(), "user-1", types.ItineraryCreate{
		TripID:      "trip-1",
		Name:        "Tokyo in May",
		Assignments: map[int][]string{0: {"f1"}, 1: {"f2"}},
		Totals: types.ItineraryTotals{
			Cash:   decimal.NewFromInt(450),
			Points: 60000,
			Fees:   decimal.NewFromInt(56),
		},
		Travelers: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "it-1", it.ID)
	assert.Equal(t, map[int][]string{0: {"f1"}, 1: {"f2"}}, it.Assignments)
	assert.True(t, it.Totals.Cash.Equal(decimal.NewFromInt(450)))
	assert.True(t, it.Totals.Fees.Equal(decimal.NewFromInt(56)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryStoreGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPgItineraryStore(mock)

	mock.ExpectQuery("SELECT .* FROM itineraries").
		WithArgs("missing").
		WillReturnRows(mock.NewRows(itineraryCols))

	it, err := store.GetItinerary(context.Background(), "missing")
	assert.Nil(t, it)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ItineraryNotFoundError, appErr.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryStoreList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPgItineraryStore(mock)

	mock.ExpectQuery("SELECT .* FROM itineraries").
		WithArgs("user-1").
		WillReturnRows(itineraryRow(mock, "it-1"))

	itineraries, err := store.ListItineraries(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, itineraries, 1)
	assert.Equal(t, "Tokyo in May", itineraries[0].Name)
	assert.Equal(t, 2, itineraries[0].Travelers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryStoreDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPgItineraryStore(mock)

	mock.ExpectExec("DELETE FROM itineraries").
		WithArgs("it-1", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, store.DeleteItinerary(context.Background(), "it-1", "user-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
