package models

import (
	"time"

	"github.com/google/uuid"
)

// SigninKey is the credential mailed to a user. It stays redeemable for
// the configured window after CreatedAt and blocks re-issuance for the
// same email while live.
type SigninKey struct {
	ID        uuid.UUID `json:"id"`
	Key       uuid.UUID `json:"key"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ExpiredAt reports whether the key's validity window had closed at the
// given cutoff. A key created exactly at the cutoff is already expired.
func (k *SigninKey) ExpiredAt(cutoff time.Time) bool {
	return !k.CreatedAt.After(cutoff)
}
