package service

import (
	"fmt"
	"math"
	"strconv"

	"github.com/MileWise/milewise-backend/pkg/transfer"
	"github.com/MileWise/milewise-backend/types"
)

// fallbackCpp is the assumed value of one point, in cents, when a flight has
// no cash price to anchor its estimated cash value and the wallet entry
// carries no redemption value of its own.
const fallbackCpp = 1.5

// Resolution carries the payment options computed for one flight together
// with any warnings produced along the way. Resolution never fails: degraded
// inputs yield degraded options plus a warning, not an error.
type Resolution struct {
	Options  []types.PayOption
	Warnings []string
}

// priceAlternative is one independently bookable price of a flight: the base
// price or a single cabin-class tier. Tiers are never combined with the base
// price or with each other.
type priceAlternative struct {
	payment types.PaymentType
	cash    float64
	points  float64
	fees    float64
	tier    string // empty for the base price
}

func priceAlternatives(f *types.Flight) []priceAlternative {
	alts := make([]priceAlternative, 0, 1+len(f.PricingTiers))
	alts = append(alts, priceAlternative{
		payment: f.PaymentType,
		cash:    f.CashAmount,
		points:  f.PointsAmount,
		fees:    f.FeesAmount,
	})
	for _, t := range f.PricingTiers {
		alts = append(alts, priceAlternative{
			payment: t.PaymentType,
			cash:    t.CashAmount,
			points:  t.PointsAmount,
			fees:    t.FeesAmount,
			tier:    t.Label,
		})
	}
	return alts
}

// ResolvePayOptions enumerates every feasible way to pay for one flight:
// cash, direct airline miles, bank-point transfers, and fixed-rate portal
// redemptions, across the base price and every pricing tier. Insufficient
// balances do not suppress options; the shortfall is noted in the description
// and feasibility is the strategy builder's concern.
func (s *Service) ResolvePayOptions(flight *types.Flight, wallet []types.WalletEntry, travelers int) Resolution {
	if travelers < 1 {
		travelers = 1
	}
	return s.resolveOptions(flight, s.resolveWallet(wallet), travelers, nil)
}

// awardProgram is a flight's booking site resolved onto the catalog, done
// once per flight rather than once per tier.
type awardProgram struct {
	id       transfer.ProgramID
	name     string
	site     string
	resolved bool
}

func (s *Service) resolveAwardProgram(bookingSite string) awardProgram {
	id, ok := s.graph.ResolveBookingSite(bookingSite)
	if ok {
		return awardProgram{id: id, name: s.graph.ProgramName(id), site: bookingSite, resolved: true}
	}
	name := bookingSite
	if name == "" {
		name = "airline"
	}
	return awardProgram{name: name, site: bookingSite}
}

func (s *Service) resolveOptions(flight *types.Flight, wallet []walletSource, travelers int, bonuses map[transfer.ProgramID]float64) Resolution {
	var res Resolution
	program := s.resolveAwardProgram(flight.BookingSite)
	if !program.resolved && flight.PaymentType == types.PaymentTypePoints && flight.PointsAmount > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Could not identify an award program for %q; treating its miles as unmatched", flight.BookingSite))
	}
	for _, alt := range priceAlternatives(flight) {
		opts := s.optionsForPrice(alt, program, wallet, travelers, bonuses)
		if alt.tier != "" {
			for i := range opts {
				opts[i].TierLabel = alt.tier
				opts[i].Description = "[" + alt.tier + "] " + opts[i].Description
			}
		}
		res.Options = append(res.Options, opts...)
	}
	return res
}

func (s *Service) optionsForPrice(alt priceAlternative, program awardProgram, wallet []walletSource, travelers int, bonuses map[transfer.ProgramID]float64) []types.PayOption {
	var opts []types.PayOption

	t := float64(travelers)
	cash := alt.cash * t
	fees := alt.fees * t
	points := alt.points * t

	if alt.cash > 0 {
		desc := fmt.Sprintf("Pay $%.2f cash", cash)
		if program.site != "" {
			desc += " on " + program.site
		}
		opts = append(opts, types.PayOption{
			Method:             types.PayMethodCash,
			CashCost:           cash,
			PointsProgram:      types.WalletSourceNone,
			EstimatedCashValue: cash,
			Description:        desc,
		})
	}

	if alt.payment == types.PaymentTypePoints && alt.points > 0 {
		// estValue anchors on the cash price when there is one; otherwise the
		// award miles are valued at the source entry's own redemption value,
		// or the fallback rate when none is set.
		estValue := func(src *walletSource) float64 {
			if alt.cash > 0 {
				return cash
			}
			cpp := fallbackCpp
			if src != nil && src.entry.RedemptionValue != nil && *src.entry.RedemptionValue > 0 {
				cpp = *src.entry.RedemptionValue
			}
			return points * cpp / 100
		}

		matched := false
		if program.resolved {
			for i := range wallet {
				src := &wallet[i]
				if src.entry.CurrencyType != types.CurrencyTypeAirlineMiles || !src.matchesProgram(program.id, program.name) {
					continue
				}
				opts = append(opts, directMilesOption(src, points, fees, estValue(src), program.name))
				matched = true
			}

			// Every transfer quotes the full award so the option stands on
			// its own bank source alone. Miles the wallet happens to hold are
			// never presumed spent here; combining balances across accounts
			// is the analyzer's job, against its shared usage overlay.
			for _, edge := range s.graph.SourcesInto(program.id) {
				ratio := edge.Ratio.WithBonus(bonuses[edge.ID])
				for i := range wallet {
					src := &wallet[i]
					if src.entry.CurrencyType != types.CurrencyTypeBankPoints || !src.matchesProgram(edge.ID, edge.Name) {
						continue
					}
					opts = append(opts, transferOption(src, edge.Name, program.name, ratio, points, fees, estValue(nil)))
					matched = true
				}
			}
		}

		if !matched {
			// The flight must never be silently excluded from optimization:
			// emit a points option with no wallet source behind it.
			opts = append(opts, types.PayOption{
				Method:             types.PayMethodDirectMiles,
				CashCost:           fees,
				PointsCost:         points,
				PointsProgram:      types.WalletSourceUnmatched,
				EstimatedCashValue: estValue(nil),
				Cpp:                cppValue(estValue(nil), fees, points),
				Description:        fmt.Sprintf("Requires %s %s miles (not in your wallet) + $%.2f in taxes and fees", formatPoints(points), program.name, fees),
			})
		}
	}

	if alt.cash > 0 {
		for i := range wallet {
			src := &wallet[i]
			if src.entry.CurrencyType != types.CurrencyTypeBankPoints || src.program == "" {
				continue
			}
			rate, ok := s.graph.PortalRate(src.program)
			if !ok {
				continue
			}
			opts = append(opts, portalOption(src, s.graph.ProgramName(src.program), rate, cash))
		}
	}

	return opts
}

func directMilesOption(src *walletSource, points, fees, estValue float64, programName string) types.PayOption {
	desc := fmt.Sprintf("Book with %s %s miles + $%.2f in taxes and fees", formatPoints(points), programName, fees)
	if src.entry.Balance < points {
		desc += fmt.Sprintf(" (need %s more miles)", formatPoints(points-src.entry.Balance))
	}
	return types.PayOption{
		Method:             types.PayMethodDirectMiles,
		CashCost:           fees,
		PointsCost:         points,
		PointsProgram:      src.entry.ID,
		EstimatedCashValue: estValue,
		Cpp:                cppValue(estValue, fees, points),
		Description:        desc,
	}
}

func transferOption(src *walletSource, bankName, programName string, ratio transfer.Ratio, points, fees, estValue float64) types.PayOption {
	required := ratio.PointsRequired(points)
	desc := fmt.Sprintf("Transfer %s %s points to %s (%s), then book with %s miles + $%.2f in taxes and fees",
		formatPoints(required), bankName, programName, ratio, formatPoints(points), fees)
	if src.entry.Balance < required {
		desc += fmt.Sprintf(" (need %s more points)", formatPoints(required-src.entry.Balance))
	}
	return types.PayOption{
		Method:             types.PayMethodTransfer,
		CashCost:           fees,
		PointsCost:         required,
		PointsProgram:      src.entry.ID,
		EstimatedCashValue: estValue,
		Cpp:                cppValue(estValue, fees, required),
		Description:        desc,
	}
}

func portalOption(src *walletSource, bankName string, rate, cash float64) types.PayOption {
	required := math.Ceil(cash / (rate / 100))
	desc := fmt.Sprintf("Redeem %s %s points through the %s travel portal at %s cpp", formatPoints(required), bankName, bankName, strconv.FormatFloat(rate, 'f', -1, 64))
	if src.entry.Balance < required {
		desc += fmt.Sprintf(" (need %s more points)", formatPoints(required-src.entry.Balance))
	}
	return types.PayOption{
		Method:             types.PayMethodPortal,
		PointsCost:         required,
		PointsProgram:      src.entry.ID,
		EstimatedCashValue: cash,
		Cpp:                cppValue(cash, 0, required),
		Description:        desc,
	}
}

// cppValue is the value-ranking metric: cents of cash value extracted per
// point spent, after netting out the cash cost of the option.
func cppValue(estValue, cashCost, pointsCost float64) float64 {
	if pointsCost <= 0 {
		return 0
	}
	return round2((estValue - cashCost) / pointsCost * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
