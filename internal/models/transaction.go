package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is a single ledger entry. Amount is in cents; negative
// amounts are spendings, positive amounts are earnings.
type Transaction struct {
	ID        uuid.UUID `json:"id"`
	Amount    int64     `json:"amount"`
	Date      time.Time `json:"date"`
	ReasonID  uuid.UUID `json:"reason_id"`
	Note      *string   `json:"note,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated on reads joined with the reasons table.
	ReasonText string `json:"reason_text,omitempty"`
}
