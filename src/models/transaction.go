package models

import "time"

// MPaymentMethod is the normalized payment method enum.
type MPaymentMethod string

const (
	PaymentCash          MPaymentMethod = "cash"
	PaymentCreditCard    MPaymentMethod = "credit_card"
	PaymentDigitalWallet MPaymentMethod = "digital_wallet"
	PaymentUnknown       MPaymentMethod = "unknown"
)

// MTransaction is one cleaned, typed sale. Constructed only by the cleaner
// and never mutated afterwards. Total always equals Quantity*UnitPrice within
// the configured tolerance (the cleaner recomputes it otherwise).
type MTransaction struct {
	ID            string         `json:"id"`
	Item          string         `json:"item"`
	Quantity      int            `json:"quantity"`
	UnitPrice     float64        `json:"unit_price"`
	Total         float64        `json:"total"`
	PaymentMethod MPaymentMethod `json:"payment_method"`
	Location      string         `json:"location"` // "" when the source had none
	Timestamp     time.Time      `json:"timestamp"`
}

// Day returns the calendar day the transaction belongs to.
func (t *MTransaction) Day() time.Time {
	y, m, d := t.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Timestamp.Location())
}
