package transfer

import (
	"math"
	"strconv"
)

// Ratio is a transfer ratio: From bank units become To partner units.
type Ratio struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// String renders the ratio the way users see it on transfer pages, e.g.
// "1:1" or "1000:800".
func (r Ratio) String() string {
	return formatRatioPart(r.From) + ":" + formatRatioPart(r.To)
}

// WithBonus returns the ratio adjusted by a promotional bonus percentage on
// the receiving side. A 1:1 ratio with a 25% bonus becomes 1:1.25.
func (r Ratio) WithBonus(bonusPct float64) Ratio {
	if bonusPct == 0 {
		return r
	}
	return Ratio{From: r.From, To: r.To * (1 + bonusPct/100)}
}

// PointsRequired returns the bank points needed to yield at least `need`
// partner units at this ratio, rounded up to a whole point.
func (r Ratio) PointsRequired(need float64) float64 {
	if need <= 0 || r.To <= 0 {
		return 0
	}
	return math.Ceil(need * r.From / r.To)
}

// Yield returns the partner units produced by transferring `bankPoints` at
// this ratio, rounded down to a whole unit.
func (r Ratio) Yield(bankPoints float64) float64 {
	if bankPoints <= 0 || r.From <= 0 {
		return 0
	}
	return math.Floor(bankPoints * r.To / r.From)
}

func formatRatioPart(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
