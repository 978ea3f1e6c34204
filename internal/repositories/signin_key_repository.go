package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/vespaiach/ledger-api/internal/models"
)

// SigninKeyRepository persists the sign-in keys mailed out by the
// sign-in flow.
//
// GetLatestActive is the anti-spam throttle query: it returns the most
// recent key for an email created at or after the cutoff, or nil when no
// live key exists.
type SigninKeyRepository interface {
	Create(ctx context.Context, key *models.SigninKey) error
	GetByKey(ctx context.Context, key uuid.UUID) (*models.SigninKey, error)
	GetLatestActive(ctx context.Context, email string, cutoff time.Time) (*models.SigninKey, error)
	CleanupExpired(ctx context.Context, cutoff time.Time) error
}

type signinKeyRepo struct {
	db DB
}

func NewSigninKeyRepository(db DB) SigninKeyRepository {
	return &signinKeyRepo{db: db}
}

func (r *signinKeyRepo) Create(ctx context.Context, key *models.SigninKey) error {
	q := `
        INSERT INTO signin_keys (id, key, email, created_at)
        VALUES ($1, $2, $3, $4)
    `
	_, err := r.db.Exec(ctx, q, key.ID, key.Key, key.Email, key.CreatedAt)
	return err
}

func (r *signinKeyRepo) GetByKey(ctx context.Context, key uuid.UUID) (*models.SigninKey, error) {
	row := r.db.QueryRow(ctx, baseSelectSigninKey()+` WHERE key = $1`, key)
	return scanSigninKey(row)
}

func (r *signinKeyRepo) GetLatestActive(ctx context.Context, email string, cutoff time.Time) (*models.SigninKey, error) {
	q := baseSelectSigninKey() + `
        WHERE email = $1 AND created_at >= $2
        ORDER BY created_at DESC
        LIMIT 1
    `
	row := r.db.QueryRow(ctx, q, email, cutoff)
	return scanSigninKey(row)
}

func (r *signinKeyRepo) CleanupExpired(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.Exec(ctx, `DELETE FROM signin_keys WHERE created_at <= $1`, cutoff)
	return err
}

func baseSelectSigninKey() string {
	return `
        SELECT id, key, email, created_at
        FROM signin_keys`
}

func scanSigninKey(row pgx.Row) (*models.SigninKey, error) {
	var k models.SigninKey
	if err := row.Scan(&k.ID, &k.Key, &k.Email, &k.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &k, nil
}
