package types

import "time"

type CurrencyType string

const (
	CurrencyTypeBankPoints   CurrencyType = "bank_points"
	CurrencyTypeAirlineMiles CurrencyType = "airline_miles"
	CurrencyTypeCashback     CurrencyType = "cashback"
	CurrencyTypeCash         CurrencyType = "cash"
)

// IsValid checks if the currency type is a supported wallet currency.
func (ct CurrencyType) IsValid() bool {
	switch ct {
	case CurrencyTypeBankPoints, CurrencyTypeAirlineMiles, CurrencyTypeCashback, CurrencyTypeCash:
		return true
	default:
		return false
	}
}

// String provides a string representation of the currency type.
func (ct CurrencyType) String() string {
	return string(ct)
}

// WalletEntry is one reward-currency balance owned by a user. The program name
// is free text; it is normalized against the transfer catalog at the matching
// boundary, never mutated here. Entries are read-only inputs to the optimizer.
type WalletEntry struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId,omitempty"`
	CurrencyType CurrencyType `json:"currency_type"`
	Program      string       `json:"program"`
	Balance      float64      `json:"balance"`
	// RedemptionValue is cents-per-point, set for cashback entries only.
	RedemptionValue *float64  `json:"redemption_value,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

// WalletEntryCreate is the request body for adding a wallet entry.
type WalletEntryCreate struct {
	CurrencyType    CurrencyType `json:"currency_type" binding:"required"`
	Program         string       `json:"program" binding:"required,max=255"`
	Balance         float64      `json:"balance" binding:"min=0"`
	RedemptionValue *float64     `json:"redemption_value,omitempty"`
}

// WalletEntryUpdate is the request body for updating a wallet entry.
// Nil fields are left unchanged.
type WalletEntryUpdate struct {
	Program         *string  `json:"program,omitempty" binding:"omitempty,max=255"`
	Balance         *float64 `json:"balance,omitempty" binding:"omitempty,min=0"`
	RedemptionValue *float64 `json:"redemption_value,omitempty"`
}
