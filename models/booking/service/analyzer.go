package service

import (
	"fmt"
	"sort"

	"github.com/MileWise/milewise-backend/types"
)

// AnalyzeItinerary turns one fixed leg→flight assignment into a linear list
// of human-readable booking steps: pay cash, use direct miles, transfer bank
// points, or a shortfall for anything no wallet source can cover. One usage
// overlay spans the whole plan, so two flights can never claim the same
// balance. The resolution runs against the current wallet each time; nothing
// is cached or ranked.
func (s *Service) AnalyzeItinerary(assignments map[int][]string, flights []types.Flight, wallet []types.WalletEntry, travelers int) []types.BookingStep {
	if travelers < 1 {
		travelers = 1
	}

	byID := make(map[string]*types.Flight, len(flights))
	for i := range flights {
		byID[flights[i].ID] = &flights[i]
	}

	legIndexes := make([]int, 0, len(assignments))
	for legIdx := range assignments {
		legIndexes = append(legIndexes, legIdx)
	}
	sort.Ints(legIndexes)

	sources := s.resolveWallet(wallet)
	usage := make(WalletUsage)
	steps := []types.BookingStep{}

	for _, legIdx := range legIndexes {
		for _, flightID := range assignments[legIdx] {
			flight, ok := byID[flightID]
			if !ok {
				steps = append(steps, types.BookingStep{
					LegIndex:    legIdx,
					FlightID:    flightID,
					Type:        types.StepTypeShortfall,
					Description: fmt.Sprintf("Flight %s is no longer attached to this trip", flightID),
				})
				continue
			}
			steps = append(steps, s.flightSteps(legIdx, flight, sources, usage, travelers)...)
		}
	}
	return steps
}

func (s *Service) flightSteps(legIdx int, flight *types.Flight, sources []walletSource, usage WalletUsage, travelers int) []types.BookingStep {
	t := float64(travelers)

	if flight.PaymentType != types.PaymentTypePoints || flight.PointsAmount <= 0 {
		total := flight.CashAmount*t + flight.FeesAmount*t
		desc := fmt.Sprintf("Pay $%.2f", total)
		if flight.BookingSite != "" {
			desc += " on " + flight.BookingSite
		}
		return []types.BookingStep{{
			LegIndex:    legIdx,
			FlightID:    flight.ID,
			Type:        types.StepTypeCash,
			Description: desc,
			CashUsed:    total,
		}}
	}

	need := flight.PointsAmount * t
	fees := flight.FeesAmount * t
	program := s.resolveAwardProgram(flight.BookingSite)

	var steps []types.BookingStep
	feesNoted := false

	noteFees := func(step types.BookingStep) types.BookingStep {
		if !feesNoted && fees > 0 {
			step.CashUsed = fees
			step.Description += fmt.Sprintf(" + $%.2f in taxes and fees", fees)
			feesNoted = true
		}
		return step
	}

	if program.resolved {
		// Direct miles first, partially consuming balances in wallet order.
		for i := range sources {
			src := &sources[i]
			if src.entry.CurrencyType != types.CurrencyTypeAirlineMiles || !src.matchesProgram(program.id, program.name) {
				continue
			}
			take := usage.Remaining(&src.entry)
			if take > need {
				take = need
			}
			if take <= 0 {
				continue
			}
			usage.Reserve(src.entry.ID, take)
			steps = append(steps, noteFees(types.BookingStep{
				LegIndex:    legIdx,
				FlightID:    flight.ID,
				Type:        types.StepTypeDirectMiles,
				Description: fmt.Sprintf("Use %s %s miles", formatPoints(take), program.name),
				PointsUsed:  take,
				Program:     src.entry.Program,
			}))
			need -= take
			if need <= 0 {
				break
			}
		}

		// Cover any remainder by transferring bank points in.
		if need > 0 {
			for _, edge := range s.graph.SourcesInto(program.id) {
				for i := range sources {
					src := &sources[i]
					if src.entry.CurrencyType != types.CurrencyTypeBankPoints || !src.matchesProgram(edge.ID, edge.Name) {
						continue
					}
					avail := edge.Ratio.Yield(usage.Remaining(&src.entry))
					take := avail
					if take > need {
						take = need
					}
					if take <= 0 {
						continue
					}
					bankUsed := edge.Ratio.PointsRequired(take)
					usage.Reserve(src.entry.ID, bankUsed)
					steps = append(steps, noteFees(types.BookingStep{
						LegIndex:    legIdx,
						FlightID:    flight.ID,
						Type:        types.StepTypeTransfer,
						Description: fmt.Sprintf("Transfer %s %s points to %s (%s) for %s miles", formatPoints(bankUsed), src.entry.Program, program.name, edge.Ratio, formatPoints(take)),
						PointsUsed:  bankUsed,
						Program:     src.entry.Program,
					}))
					need -= take
					if need <= 0 {
						break
					}
				}
				if need <= 0 {
					break
				}
			}
		}
	}

	if need > 0 {
		steps = append(steps, types.BookingStep{
			LegIndex:    legIdx,
			FlightID:    flight.ID,
			Type:        types.StepTypeShortfall,
			Description: fmt.Sprintf("Short %s %s miles; no wallet source can cover the remainder", formatPoints(need), program.name),
			PointsUsed:  need,
		})
	}
	return steps
}
