package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/vespaiach/ledger-api/internal/models"
	"github.com/vespaiach/ledger-api/internal/utils"
)

// RevokedTokenRepository keeps the hashes of tokens invalidated before
// their natural expiry. The authenticator consults it on every request
// that presents a bearer token.
type RevokedTokenRepository interface {
	Create(ctx context.Context, t *models.RevokedToken) error
	// IsRevoked hashes rawToken and reports whether a matching row exists.
	IsRevoked(ctx context.Context, rawToken string) (bool, error)
	// CleanupExpired removes rows whose token would have expired anyway.
	CleanupExpired(ctx context.Context) error
}

type revokedTokenRepo struct {
	db DB
}

func NewRevokedTokenRepository(db DB) RevokedTokenRepository {
	return &revokedTokenRepo{db: db}
}

func (r *revokedTokenRepo) Create(ctx context.Context, t *models.RevokedToken) error {
	q := `
        INSERT INTO revoked_tokens (id, token_hash, expires_at, created_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (token_hash) DO NOTHING
    `
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, q, t.ID, t.TokenHash, t.ExpiresAt)
	return err
}

func (r *revokedTokenRepo) IsRevoked(ctx context.Context, rawToken string) (bool, error) {
	q := `SELECT 1 FROM revoked_tokens WHERE token_hash = $1`
	var one int
	err := r.db.QueryRow(ctx, q, utils.HashToken(rawToken)).Scan(&one)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *revokedTokenRepo) CleanupExpired(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < NOW()`)
	return err
}
