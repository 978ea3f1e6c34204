package models

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken represents a bearer token invalidated before its natural
// expiry. TokenHash is the sha256 digest of the raw token string.
type RevokedToken struct {
	ID        uuid.UUID `json:"id"`
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"` // natural expiry, used for retention cleanup
	CreatedAt time.Time `json:"created_at"`
}
