package models

import (
	"time"

	"github.com/google/uuid"
)

// Reason is a user-defined category label attached to transactions.
// Text is unique per ledger.
type Reason struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}
