package types

import "time"

type PaymentType string

const (
	PaymentTypeCash   PaymentType = "cash"
	PaymentTypePoints PaymentType = "points"
)

// IsValid checks if the payment type is one of the supported values.
func (pt PaymentType) IsValid() bool {
	switch pt {
	case PaymentTypeCash, PaymentTypePoints:
		return true
	default:
		return false
	}
}

// Leg is one directional segment of the trip itinerary as planned by the user.
// Legs are ordered and immutable for the duration of an optimizer run.
type Leg struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Segment is one physical flight within a Flight option. Segment fields are
// display-only: the optimizer never reads them.
type Segment struct {
	FlightCode       string    `json:"flightCode"`
	Airline          string    `json:"airline"`
	DepartureAirport string    `json:"departureAirport"`
	ArrivalAirport   string    `json:"arrivalAirport"`
	DepartureTime    time.Time `json:"departureTime"`
	ArrivalTime      time.Time `json:"arrivalTime"`
	Duration         string    `json:"duration,omitempty"`
}

// PricingTier is an alternate cabin-class price attached to the same physical
// flight. Each tier is evaluated as an independent booking alternative and is
// never combined with the base price or another tier.
type PricingTier struct {
	Label        string      `json:"label"`
	PaymentType  PaymentType `json:"paymentType"`
	CashAmount   float64     `json:"cashAmount,omitempty"`
	PointsAmount float64     `json:"pointsAmount,omitempty"`
	FeesAmount   float64     `json:"feesAmount,omitempty"`
}

// Flight is one bookable option a user has attached to a leg.
type Flight struct {
	ID           string        `json:"id"`
	LegIndex     int           `json:"legIndex"`
	Segments     []Segment     `json:"segments,omitempty"`
	BookingSite  string        `json:"bookingSite,omitempty"`
	PaymentType  PaymentType   `json:"paymentType"`
	CashAmount   float64       `json:"cashAmount,omitempty"`
	PointsAmount float64       `json:"pointsAmount,omitempty"`
	FeesAmount   float64       `json:"feesAmount,omitempty"`
	PricingTiers []PricingTier `json:"pricingTiers,omitempty"`
}
