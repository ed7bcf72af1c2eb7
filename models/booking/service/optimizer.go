// Package service implements the multi-currency booking optimizer: given a
// trip's legs, the flight options attached to each leg, and a wallet of
// reward balances, it computes complete, internally consistent strategies for
// paying for the whole trip and ranks them by value.
package service

import (
	"fmt"

	"github.com/MileWise/milewise-backend/pkg/transfer"
	"github.com/MileWise/milewise-backend/types"
)

// Service computes booking strategies and itinerary booking steps. It is
// pure in-memory computation: no I/O, no hidden state, deterministic for
// identical inputs, and safe for concurrent use.
type Service struct {
	graph *transfer.Graph
}

// NewService creates a booking service over the given transfer graph. A nil
// graph selects the embedded catalog.
func NewService(graph *transfer.Graph) *Service {
	if graph == nil {
		graph = transfer.Default()
	}
	return &Service{graph: graph}
}

// OptimizeInput carries one optimizer invocation. Legs, flights, and wallet
// are owned by the caller and are never mutated. TransferBonuses maps a bank
// program name to a promotional transfer bonus percentage (e.g. 25 for +25%).
type OptimizeInput struct {
	Legs            []types.Leg
	Flights         []types.Flight
	Wallet          []types.WalletEntry
	Travelers       int
	TransferBonuses map[string]float64
}

var strategyModes = []types.StrategyMode{
	types.StrategyModeBestCpp,
	types.StrategyModeMinCash,
	types.StrategyModeAllCash,
}

// OptimizeTrip runs the strategy builder once per selection mode over a
// shared set of per-leg payment options, tags the best-value and lowest-cash
// results, and returns them in a fixed order: best value, lowest cash, all
// cash. Modes that produce no bookings are omitted; a trip with no flights
// yields an empty slice.
func (s *Service) OptimizeTrip(in OptimizeInput) []types.BookingStrategy {
	if len(in.Flights) == 0 {
		return []types.BookingStrategy{}
	}
	travelers := in.Travelers
	if travelers < 1 {
		travelers = 1
	}

	wallet := s.resolveWallet(in.Wallet)
	bonuses := s.resolveBonuses(in.TransferBonuses)

	byLeg := make([][]FlightOptions, len(in.Legs))
	var baseWarnings []string
	for i := range in.Flights {
		f := in.Flights[i]
		if f.LegIndex < 0 || f.LegIndex >= len(in.Legs) {
			baseWarnings = append(baseWarnings, fmt.Sprintf("Flight %s references a leg outside this trip and was skipped", f.ID))
			continue
		}
		res := s.resolveOptions(&f, wallet, travelers, bonuses)
		byLeg[f.LegIndex] = append(byLeg[f.LegIndex], FlightOptions{Flight: f, Options: res.Options})
		baseWarnings = append(baseWarnings, res.Warnings...)
	}

	input := buildInput{legs: in.Legs, byLeg: byLeg, wallet: wallet, baseWarnings: baseWarnings}

	var strategies []*types.BookingStrategy
	for _, mode := range strategyModes {
		if strat := s.buildStrategy(input, mode); strat != nil {
			strategies = append(strategies, strat)
		}
	}
	tagStrategies(strategies)

	out := make([]types.BookingStrategy, 0, len(strategies))
	for _, strat := range strategies {
		out = append(out, *strat)
	}
	return out
}

// resolveBonuses normalizes promo-bonus keys (free-text bank program names)
// onto catalog IDs. Unresolvable keys are dropped silently, consistent with
// the matcher's non-match semantics.
func (s *Service) resolveBonuses(bonuses map[string]float64) map[transfer.ProgramID]float64 {
	if len(bonuses) == 0 {
		return nil
	}
	out := make(map[transfer.ProgramID]float64, len(bonuses))
	for name, pct := range bonuses {
		if id, ok := s.graph.ResolveProgram(name); ok {
			out[id] = pct
		}
	}
	return out
}

// tagStrategies marks the highest-cpp strategy "Best Value" and the
// lowest-cash strategy "Lowest Cash". One strategy may carry both tags. Ties
// keep the earliest strategy in mode order, so tagging is deterministic.
func tagStrategies(strategies []*types.BookingStrategy) {
	if len(strategies) == 0 {
		return
	}
	bestValue, lowestCash := strategies[0], strategies[0]
	for _, strat := range strategies[1:] {
		if strat.EstimatedCpp > bestValue.EstimatedCpp {
			bestValue = strat
		}
		if strat.TotalCash < lowestCash.TotalCash {
			lowestCash = strat
		}
	}
	bestValue.Tags = append(bestValue.Tags, types.StrategyTagBestValue)
	lowestCash.Tags = append(lowestCash.Tags, types.StrategyTagLowestCash)
}
