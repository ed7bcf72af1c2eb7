package service_test

import (
	"strings"
	"testing"

	bookingservice "github.com/MileWise/milewise-backend/models/booking/service"
	"github.com/MileWise/milewise-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strategyByMode(strategies []types.BookingStrategy, mode types.StrategyMode) *types.BookingStrategy {
	for i := range strategies {
		if strategies[i].Mode == mode {
			return &strategies[i]
		}
	}
	return nil
}

func TestOptimizeTripAllCashSingleFlight(t *testing.T) {
	svc := newBookingService()

	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs: []types.Leg{{From: "SFO", To: "JFK"}},
		Flights: []types.Flight{{
			ID:          "f1",
			LegIndex:    0,
			PaymentType: types.PaymentTypeCash,
			CashAmount:  450,
		}},
		Travelers: 1,
	})

	require.Len(t, out, 3)
	for _, strat := range out {
		require.Len(t, strat.Bookings, 1)
		assert.Equal(t, types.PayMethodCash, strat.Bookings[0].Method)
		assert.Equal(t, 450.0, strat.Bookings[0].CashCost)
		assert.Equal(t, 450.0, strat.TotalCash)
		assert.Equal(t, 0.0, strat.TotalPoints)
		assert.Equal(t, 0.0, strat.SavingsVsCash)
	}

	// Fixed output order: best value, lowest cash, all cash.
	assert.Equal(t, types.StrategyModeBestCpp, out[0].Mode)
	assert.Equal(t, types.StrategyModeMinCash, out[1].Mode)
	assert.Equal(t, types.StrategyModeAllCash, out[2].Mode)

	// With identical totals both tags land on the first strategy.
	assert.Contains(t, out[0].Tags, types.StrategyTagBestValue)
	assert.Contains(t, out[0].Tags, types.StrategyTagLowestCash)
	assert.Empty(t, out[1].Tags)
	assert.Empty(t, out[2].Tags)
}

func TestOptimizeTripDirectMilesAward(t *testing.T) {
	svc := newBookingService()

	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs:      []types.Leg{{From: "SFO", To: "EWR"}},
		Flights:   []types.Flight{unitedAwardFlight()},
		Wallet:    []types.WalletEntry{unitedMiles(100000)},
		Travelers: 1,
	})

	require.Len(t, out, 3)
	for _, mode := range []types.StrategyMode{types.StrategyModeBestCpp, types.StrategyModeMinCash} {
		strat := strategyByMode(out, mode)
		require.NotNil(t, strat)
		require.Len(t, strat.Bookings, 1)
		assert.Equal(t, types.PayMethodDirectMiles, strat.Bookings[0].Method)
		assert.Equal(t, 60000.0, strat.Bookings[0].PointsCost)
		assert.Equal(t, 56.0, strat.Bookings[0].CashCost)
		assert.Equal(t, 1.41, strat.EstimatedCpp)
	}

	// No cash price exists, so even the all-cash baseline books the award.
	allCash := strategyByMode(out, types.StrategyModeAllCash)
	require.NotNil(t, allCash)
	require.Len(t, allCash.Bookings, 1)
	assert.Equal(t, types.PayMethodDirectMiles, allCash.Bookings[0].Method)
}

func TestOptimizeTripTransferChosenWhenMilesFallShort(t *testing.T) {
	svc := newBookingService()

	// 40000 United miles cannot book the 60000-mile award, so the Chase
	// transfer — quoted at the full award — is the one affordable points route.
	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs:      []types.Leg{{From: "SFO", To: "EWR"}},
		Flights:   []types.Flight{unitedAwardFlight()},
		Wallet:    []types.WalletEntry{unitedMiles(40000), chasePoints(70000)},
		Travelers: 1,
	})

	require.NotEmpty(t, out)
	for _, mode := range []types.StrategyMode{types.StrategyModeBestCpp, types.StrategyModeMinCash} {
		strat := strategyByMode(out, mode)
		require.NotNil(t, strat)
		require.Len(t, strat.Bookings, 1)
		booking := strat.Bookings[0]
		assert.Equal(t, types.PayMethodTransfer, booking.Method)
		assert.Equal(t, "w-chase", booking.PointsProgram)
		assert.Equal(t, 60000.0, booking.PointsCost)
	}
}

func TestOptimizeTripShortfallFallsBackWithWarning(t *testing.T) {
	svc := newBookingService()

	// Not enough United miles and not enough Chase points to top up.
	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs:      []types.Leg{{From: "SFO", To: "EWR"}},
		Flights:   []types.Flight{unitedAwardFlight()},
		Wallet:    []types.WalletEntry{unitedMiles(40000), chasePoints(5000)},
		Travelers: 1,
	})

	require.NotEmpty(t, out)
	best := strategyByMode(out, types.StrategyModeBestCpp)
	require.NotNil(t, best)
	// The flight is still booked, with a warning naming the shortfall.
	require.Len(t, best.Bookings, 1)
	require.NotEmpty(t, best.Warnings)
	found := false
	for _, w := range best.Warnings {
		if strings.Contains(w, "Insufficient balance") {
			found = true
		}
	}
	assert.True(t, found, "expected an insufficient-balance warning, got %v", best.Warnings)
}

func TestOptimizeTripTravelerMultiplier(t *testing.T) {
	svc := newBookingService()

	// Two travelers double the award to 120000; 100000 United miles no
	// longer cover it, so the full award transfers in from Chase.
	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs:      []types.Leg{{From: "SFO", To: "EWR"}},
		Flights:   []types.Flight{unitedAwardFlight()},
		Wallet:    []types.WalletEntry{unitedMiles(100000), chasePoints(130000)},
		Travelers: 2,
	})

	best := strategyByMode(out, types.StrategyModeBestCpp)
	require.NotNil(t, best)
	require.Len(t, best.Bookings, 1)
	assert.Equal(t, types.PayMethodTransfer, best.Bookings[0].Method)
	assert.Equal(t, 120000.0, best.Bookings[0].PointsCost)
	assert.Equal(t, 112.0, best.Bookings[0].CashCost)
}

func TestOptimizeTripTransferBonus(t *testing.T) {
	svc := newBookingService()

	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs:            []types.Leg{{From: "SFO", To: "EWR"}},
		Flights:         []types.Flight{unitedAwardFlight()},
		Wallet:          []types.WalletEntry{chasePoints(60000)},
		Travelers:       1,
		TransferBonuses: map[string]float64{"Chase Ultimate Rewards": 25},
	})

	best := strategyByMode(out, types.StrategyModeBestCpp)
	require.NotNil(t, best)
	require.Len(t, best.Bookings, 1)
	booking := best.Bookings[0]
	assert.Equal(t, types.PayMethodTransfer, booking.Method)
	// +25% on 1:1 means 48000 points yield the 60000 miles, and the
	// bonus-adjusted ratio is reported literally.
	assert.Equal(t, 48000.0, booking.PointsCost)
	assert.Contains(t, booking.Description, "(1:1.25)")
}

func TestOptimizeTripWalletConservation(t *testing.T) {
	svc := newBookingService()

	flightA := unitedAwardFlight()
	flightA.ID = "f-a"
	flightB := unitedAwardFlight()
	flightB.ID = "f-b"
	flightB.LegIndex = 1

	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs:      []types.Leg{{From: "SFO", To: "EWR"}, {From: "EWR", To: "SFO"}},
		Flights:   []types.Flight{flightA, flightB},
		Wallet:    []types.WalletEntry{unitedMiles(150000)},
		Travelers: 1,
	})

	for _, strat := range out {
		reserved := map[string]float64{}
		for _, b := range strat.Bookings {
			if types.IsWalletBacked(b.PointsProgram) {
				reserved[b.PointsProgram] += b.PointsCost
			}
		}
		// 2 x 60000 fits inside the 150000 balance; a build must never
		// double-count the shared balance.
		assert.LessOrEqual(t, reserved["w-united"], 150000.0, "mode %s", strat.Mode)
	}
}

func TestOptimizeTripSharedMilesNotDoubleSpent(t *testing.T) {
	svc := newBookingService()

	flightA := unitedAwardFlight()
	flightA.ID = "f-a"
	flightB := unitedAwardFlight()
	flightB.ID = "f-b"
	flightB.LegIndex = 1

	// 120000 miles are needed but the wallet holds 40000 miles + 100000
	// bank points. At most one flight can be covered; the other must be
	// flagged, never financed twice from the same balances.
	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs:      []types.Leg{{From: "SFO", To: "EWR"}, {From: "EWR", To: "SFO"}},
		Flights:   []types.Flight{flightA, flightB},
		Wallet:    []types.WalletEntry{unitedMiles(40000), chasePoints(100000)},
		Travelers: 1,
	})

	require.NotEmpty(t, out)
	for _, strat := range out {
		reserved := map[string]float64{}
		for _, b := range strat.Bookings {
			if types.IsWalletBacked(b.PointsProgram) {
				reserved[b.PointsProgram] += b.PointsCost
			}
		}
		assert.LessOrEqual(t, reserved["w-chase"], 100000.0, "mode %s", strat.Mode)
		// Transfers always carry the full award price, so a second flight
		// can never ride on a quote that presumed the United balance.
		for _, b := range strat.Bookings {
			if b.Method == types.PayMethodTransfer {
				assert.Equal(t, 60000.0, b.PointsCost, "mode %s", strat.Mode)
			}
		}
	}

	best := strategyByMode(out, types.StrategyModeBestCpp)
	require.NotNil(t, best)
	require.Len(t, best.Bookings, 2)
	byFlight := map[string]types.FlightBooking{}
	for _, b := range best.Bookings {
		byFlight[b.FlightID] = b
	}
	assert.Equal(t, types.PayMethodTransfer, byFlight["f-a"].Method)
	assert.Equal(t, "w-chase", byFlight["f-a"].PointsProgram)
	assert.Equal(t, 60000.0, byFlight["f-a"].PointsCost)

	// The second flight is still booked, but with an explicit warning.
	found := false
	for _, w := range best.Warnings {
		if strings.Contains(w, "Insufficient balance") {
			found = true
		}
	}
	assert.True(t, found, "expected an insufficient-balance warning, got %v", best.Warnings)
}

func TestOptimizeTripTransferWhenMilesSplitAcrossAccounts(t *testing.T) {
	svc := newBookingService()

	// Two 30000-mile accounts sum to the award, but no single account can
	// book it. The Chase transfer covers it outright and must be chosen.
	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs:    []types.Leg{{From: "SFO", To: "EWR"}},
		Flights: []types.Flight{unitedAwardFlight()},
		Wallet: []types.WalletEntry{
			{ID: "w-united-a", CurrencyType: types.CurrencyTypeAirlineMiles, Program: "United MileagePlus", Balance: 30000},
			{ID: "w-united-b", CurrencyType: types.CurrencyTypeAirlineMiles, Program: "United MileagePlus", Balance: 30000},
			chasePoints(100000),
		},
		Travelers: 1,
	})

	best := strategyByMode(out, types.StrategyModeBestCpp)
	require.NotNil(t, best)
	require.Len(t, best.Bookings, 1)
	booking := best.Bookings[0]
	assert.Equal(t, types.PayMethodTransfer, booking.Method)
	assert.Equal(t, "w-chase", booking.PointsProgram)
	assert.Equal(t, 60000.0, booking.PointsCost)
	assert.Empty(t, best.Warnings)
}

func TestOptimizeTripDeterminism(t *testing.T) {
	svc := newBookingService()

	in := bookingservice.OptimizeInput{
		Legs: []types.Leg{{From: "SFO", To: "LHR"}, {From: "LHR", To: "SFO"}},
		Flights: []types.Flight{
			{ID: "f1", LegIndex: 0, BookingSite: "united.com", PaymentType: types.PaymentTypePoints, PointsAmount: 60000, FeesAmount: 56},
			{ID: "f2", LegIndex: 1, BookingSite: "ba.com", PaymentType: types.PaymentTypePoints, PointsAmount: 50000, FeesAmount: 210, CashAmount: 900},
			{ID: "f3", LegIndex: 1, PaymentType: types.PaymentTypeCash, CashAmount: 180},
		},
		Wallet: []types.WalletEntry{
			unitedMiles(40000),
			chasePoints(90000),
			{ID: "w-amex", CurrencyType: types.CurrencyTypeBankPoints, Program: "Amex", Balance: 70000},
		},
		Travelers: 2,
	}

	first := svc.OptimizeTrip(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, svc.OptimizeTrip(in))
	}
}

func TestOptimizeTripCashBaselineMonotonicity(t *testing.T) {
	svc := newBookingService()

	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs: []types.Leg{{From: "SFO", To: "JFK"}},
		Flights: []types.Flight{{
			ID:          "f1",
			LegIndex:    0,
			BookingSite: "delta.com",
			PaymentType: types.PaymentTypeCash,
			CashAmount:  450,
		}},
		Wallet:    []types.WalletEntry{chasePoints(80000)},
		Travelers: 1,
	})

	allCash := strategyByMode(out, types.StrategyModeAllCash)
	require.NotNil(t, allCash)
	for _, strat := range out {
		assert.GreaterOrEqual(t, strat.TotalCash, 0.0)
		assert.LessOrEqual(t, strat.TotalCash, allCash.TotalCash)
		assert.GreaterOrEqual(t, strat.SavingsVsCash, 0.0)
	}

	// The Chase portal covers the full fare at 1.25cpp, zeroing the cash
	// outlay for the value-seeking modes.
	best := strategyByMode(out, types.StrategyModeBestCpp)
	require.NotNil(t, best)
	assert.Equal(t, types.PayMethodPortal, best.Bookings[0].Method)
	assert.Equal(t, 0.0, best.TotalCash)
	assert.Equal(t, 450.0, best.SavingsVsCash)
}

func TestOptimizeTripNoFlightLeftUnbooked(t *testing.T) {
	svc := newBookingService()

	// Leg 0 is a connecting itinerary of two flights; both must be booked in
	// every strategy even though the wallet covers neither.
	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs: []types.Leg{{From: "SFO", To: "SIN"}},
		Flights: []types.Flight{
			{ID: "f1", LegIndex: 0, BookingSite: "united.com", PaymentType: types.PaymentTypePoints, PointsAmount: 90000, FeesAmount: 40},
			{ID: "f2", LegIndex: 0, BookingSite: "singaporeair.com", PaymentType: types.PaymentTypePoints, PointsAmount: 70000, FeesAmount: 120},
		},
		Wallet:    []types.WalletEntry{unitedMiles(10000)},
		Travelers: 1,
	})

	require.NotEmpty(t, out)
	for _, strat := range out {
		ids := map[string]bool{}
		for _, b := range strat.Bookings {
			ids[b.FlightID] = true
		}
		assert.True(t, ids["f1"], "mode %s left f1 unbooked", strat.Mode)
		assert.True(t, ids["f2"], "mode %s left f2 unbooked", strat.Mode)
	}
}

func TestOptimizeTripEmptyLegWarnsAndContinues(t *testing.T) {
	svc := newBookingService()

	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs: []types.Leg{{From: "SFO", To: "JFK"}, {From: "JFK", To: "SFO"}},
		Flights: []types.Flight{{
			ID:          "f1",
			LegIndex:    0,
			PaymentType: types.PaymentTypeCash,
			CashAmount:  450,
		}},
		Travelers: 1,
	})

	require.NotEmpty(t, out)
	for _, strat := range out {
		require.Len(t, strat.Bookings, 1)
		require.NotEmpty(t, strat.Warnings)
		assert.Contains(t, strat.Warnings[0], "leg 2")
	}
}

func TestOptimizeTripNoFlights(t *testing.T) {
	svc := newBookingService()

	out := svc.OptimizeTrip(bookingservice.OptimizeInput{
		Legs:      []types.Leg{{From: "SFO", To: "JFK"}},
		Travelers: 1,
	})
	assert.Empty(t, out)
}
