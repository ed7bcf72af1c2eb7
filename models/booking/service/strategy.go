package service

import (
	"fmt"
	"sort"

	"github.com/MileWise/milewise-backend/types"
)

// FlightOptions pairs one candidate flight with its resolved payment options.
// All flights assigned to a leg are booked together: they represent a
// connecting itinerary, not alternatives.
type FlightOptions struct {
	Flight  types.Flight
	Options []types.PayOption
}

type buildInput struct {
	legs         []types.Leg
	byLeg        [][]FlightOptions
	wallet       []walletSource
	baseWarnings []string
}

// buildStrategy walks every leg and every flight within it, selects one
// payment option per flight under the given mode, and accumulates totals.
// Returns nil when no flight could be booked at all.
func (s *Service) buildStrategy(in buildInput, mode types.StrategyMode) *types.BookingStrategy {
	usage := make(WalletUsage)
	entries := make(map[string]*types.WalletEntry, len(in.wallet))
	for i := range in.wallet {
		entries[in.wallet[i].entry.ID] = &in.wallet[i].entry
	}

	strat := &types.BookingStrategy{
		Mode:     mode,
		Warnings: append([]string(nil), in.baseWarnings...),
		Tags:     []string{},
	}

	for legIdx, leg := range in.legs {
		flights := in.byLeg[legIdx]
		if len(flights) == 0 {
			strat.Warnings = append(strat.Warnings, fmt.Sprintf("No flight selected for leg %d (%s → %s)", legIdx+1, leg.From, leg.To))
			continue
		}
		for _, fo := range flights {
			if len(fo.Options) == 0 {
				strat.Warnings = append(strat.Warnings, fmt.Sprintf("No payment options for flight on leg %d (%s → %s)", legIdx+1, leg.From, leg.To))
				continue
			}
			chosen, warning := pickPayOption(fo.Options, entries, usage, mode)
			if warning != "" {
				strat.Warnings = append(strat.Warnings, warning)
			}
			if types.IsWalletBacked(chosen.PointsProgram) {
				usage.Reserve(chosen.PointsProgram, chosen.PointsCost)
			}
			strat.Bookings = append(strat.Bookings, types.FlightBooking{
				FlightID:      fo.Flight.ID,
				LegIndex:      legIdx,
				Method:        chosen.Method,
				CashCost:      chosen.CashCost,
				PointsCost:    chosen.PointsCost,
				PointsProgram: chosen.PointsProgram,
				Description:   chosen.Description,
			})
			strat.TotalCash += chosen.CashCost
			strat.TotalPoints += chosen.PointsCost
			strat.EstimatedValue += chosen.EstimatedCashValue
		}
	}

	if len(strat.Bookings) == 0 {
		return nil
	}

	if strat.TotalPoints > 0 {
		strat.EstimatedCpp = cppValue(strat.EstimatedValue, strat.TotalCash, strat.TotalPoints)
	}
	strat.SavingsVsCash = savingsVsCash(strat, in.byLeg)
	return strat
}

// savingsVsCash compares the strategy's cash outlay against what the same
// flights would have cost in pure cash, using each flight's own cash option
// as the baseline (or its chosen cost when no cash option exists). Floored at
// zero.
func savingsVsCash(strat *types.BookingStrategy, byLeg [][]FlightOptions) float64 {
	baseline := 0.0
	for _, b := range strat.Bookings {
		cashCost, ok := flightCashBaseline(byLeg, b.LegIndex, b.FlightID)
		if !ok {
			cashCost = b.CashCost
		}
		baseline += cashCost
	}
	savings := round2(baseline - strat.TotalCash)
	if savings < 0 {
		return 0
	}
	return savings
}

func flightCashBaseline(byLeg [][]FlightOptions, legIdx int, flightID string) (float64, bool) {
	if legIdx < 0 || legIdx >= len(byLeg) {
		return 0, false
	}
	for _, fo := range byLeg[legIdx] {
		if fo.Flight.ID != flightID {
			continue
		}
		for _, opt := range fo.Options {
			if opt.Method == types.PayMethodCash {
				return opt.CashCost, true
			}
		}
		return 0, false
	}
	return 0, false
}

// pickPayOption selects one option under the mode's policy. A flight is never
// left unbooked: when nothing is affordable the best otherwise-preferred
// option is named in a warning and the flight falls back to cash, or failing
// that, the first option as listed.
func pickPayOption(options []types.PayOption, entries map[string]*types.WalletEntry, usage WalletUsage, mode types.StrategyMode) (types.PayOption, string) {
	affordable := make([]types.PayOption, 0, len(options))
	for _, opt := range options {
		if isAffordable(opt, entries, usage) {
			affordable = append(affordable, opt)
		}
	}

	if len(affordable) == 0 {
		best := options[0]
		for _, opt := range options[1:] {
			if opt.Cpp > best.Cpp {
				best = opt
			}
		}
		warning := fmt.Sprintf("Insufficient balance for preferred option: %s (short %s points)",
			best.Description, formatPoints(pointsShort(best, entries, usage)))
		for _, opt := range options {
			if opt.Method == types.PayMethodCash {
				return opt, warning
			}
		}
		return options[0], warning
	}

	switch mode {
	case types.StrategyModeAllCash:
		for _, opt := range affordable {
			if opt.Method == types.PayMethodCash {
				return opt, ""
			}
		}
		for _, opt := range affordable {
			if opt.Method == types.PayMethodPortal {
				return opt, ""
			}
		}
		return affordable[0], ""

	case types.StrategyModeMinCash:
		ranked := make([]types.PayOption, len(affordable))
		copy(ranked, affordable)
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].CashCost != ranked[j].CashCost {
				return ranked[i].CashCost < ranked[j].CashCost
			}
			return ranked[i].Cpp > ranked[j].Cpp
		})
		return ranked[0], ""

	default: // StrategyModeBestCpp
		var best *types.PayOption
		for i := range affordable {
			opt := &affordable[i]
			if opt.Method == types.PayMethodCash || opt.Cpp <= 0 {
				continue
			}
			if best == nil || opt.Cpp > best.Cpp {
				best = opt
			}
		}
		if best != nil {
			return *best, ""
		}
		var cheapest *types.PayOption
		for i := range affordable {
			opt := &affordable[i]
			if opt.Method != types.PayMethodCash {
				continue
			}
			if cheapest == nil || opt.CashCost < cheapest.CashCost {
				cheapest = opt
			}
		}
		if cheapest != nil {
			return *cheapest, ""
		}
		return affordable[0], ""
	}
}

// isAffordable: options with no wallet source behind them are always
// affordable; wallet-backed options need enough unreserved balance.
func isAffordable(opt types.PayOption, entries map[string]*types.WalletEntry, usage WalletUsage) bool {
	if !types.IsWalletBacked(opt.PointsProgram) {
		return true
	}
	entry, ok := entries[opt.PointsProgram]
	if !ok {
		return false
	}
	return usage.Remaining(entry) >= opt.PointsCost
}

func pointsShort(opt types.PayOption, entries map[string]*types.WalletEntry, usage WalletUsage) float64 {
	if !types.IsWalletBacked(opt.PointsProgram) {
		return opt.PointsCost
	}
	entry, ok := entries[opt.PointsProgram]
	if !ok {
		return opt.PointsCost
	}
	return opt.PointsCost - usage.Remaining(entry)
}
