package types

type PayMethod string

const (
	PayMethodCash        PayMethod = "cash"
	PayMethodDirectMiles PayMethod = "direct_miles"
	PayMethodTransfer    PayMethod = "transfer"
	PayMethodPortal      PayMethod = "portal"
)

// Sentinel wallet-source IDs. Options carrying one of these draw on no wallet
// entry and are always affordable; reservation is skipped for them.
const (
	WalletSourceNone      = "none"
	WalletSourceUnmatched = "not_in_wallet"
)

// IsWalletBacked reports whether a wallet-source ID refers to a real wallet
// entry rather than a sentinel.
func IsWalletBacked(sourceID string) bool {
	return sourceID != "" && sourceID != WalletSourceNone && sourceID != WalletSourceUnmatched
}

// PayOption is one feasible way to pay for a single flight (or one of its
// pricing tiers). Options are ephemeral: computed per optimizer run, never
// persisted.
type PayOption struct {
	Method             PayMethod `json:"method"`
	CashCost           float64   `json:"cashCost"`
	PointsCost         float64   `json:"pointsCost"`
	PointsProgram      string    `json:"pointsProgram"` // source wallet entry ID, or a sentinel
	EstimatedCashValue float64   `json:"estimatedCashValue"`
	Cpp                float64   `json:"cpp"`
	Description        string    `json:"description"`
	TierLabel          string    `json:"tierLabel,omitempty"`
}

// FlightBooking is one resolved line item inside a strategy: which flight on
// which leg, and the concrete payment chosen for it.
type FlightBooking struct {
	FlightID      string    `json:"flightId"`
	LegIndex      int       `json:"legIndex"`
	Method        PayMethod `json:"method"`
	CashCost      float64   `json:"cashCost"`
	PointsCost    float64   `json:"pointsCost"`
	PointsProgram string    `json:"pointsProgram"`
	Description   string    `json:"description"`
}

type StrategyMode string

const (
	StrategyModeBestCpp StrategyMode = "best_cpp"
	StrategyModeMinCash StrategyMode = "min_cash"
	StrategyModeAllCash StrategyMode = "all_cash"
)

// Strategy tags assigned by the optimizer after ranking.
const (
	StrategyTagBestValue  = "Best Value"
	StrategyTagLowestCash = "Lowest Cash"
)

// BookingStrategy is one complete way to pay for the whole trip. Strategies
// are created fresh on each optimizer run and are self-describing for direct
// rendering.
type BookingStrategy struct {
	Mode           StrategyMode    `json:"mode"`
	Bookings       []FlightBooking `json:"bookings"`
	TotalCash      float64         `json:"totalCash"`
	TotalPoints    float64         `json:"totalPoints"`
	EstimatedValue float64         `json:"estimatedValue"`
	EstimatedCpp   float64         `json:"estimatedCpp"`
	SavingsVsCash  float64         `json:"savingsVsCash"`
	Warnings       []string        `json:"warnings"`
	Tags           []string        `json:"tags"`
}

type StepType string

const (
	StepTypeCash        StepType = "cash"
	StepTypeDirectMiles StepType = "direct_miles"
	StepTypeTransfer    StepType = "transfer"
	StepTypeShortfall   StepType = "shortfall"
)

// BookingStep is one human-readable instruction in the "how to book" view of
// a saved itinerary.
type BookingStep struct {
	LegIndex    int      `json:"legIndex"`
	FlightID    string   `json:"flightId"`
	Type        StepType `json:"type"`
	Description string   `json:"description"`
	PointsUsed  float64  `json:"pointsUsed,omitempty"`
	CashUsed    float64  `json:"cashUsed,omitempty"`
	Program     string   `json:"program,omitempty"`
}
