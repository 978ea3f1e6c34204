package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
)

// RateLimitRepository backs the sign-in email throttles with windowed
// counters. A counter whose window has lapsed is reset in place by the
// next increment, so stale rows never block a caller.
type RateLimitRepository interface {
	// IncrementAndCheck bumps the counter for key and reports whether the
	// caller is still within limit for the current window.
	IncrementAndCheck(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	// CleanupExpired drops counters whose window has lapsed.
	CleanupExpired(ctx context.Context) error
}

type rateLimitRepo struct {
	db DB
}

func NewRateLimitRepository(db DB) RateLimitRepository {
	return &rateLimitRepo{db: db}
}

func (r *rateLimitRepo) IncrementAndCheck(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	// Single round trip: the upsert either starts a fresh window or bumps
	// the live one, and returns the count it settled on.
	q := `
        INSERT INTO signin_rate_counters (key, count, window_ends_at)
        VALUES ($1, 1, NOW() + $2::interval)
        ON CONFLICT (key) DO UPDATE
        SET count = CASE
                WHEN signin_rate_counters.window_ends_at < NOW() THEN 1
                ELSE signin_rate_counters.count + 1
            END,
            window_ends_at = CASE
                WHEN signin_rate_counters.window_ends_at < NOW() THEN NOW() + $2::interval
                ELSE signin_rate_counters.window_ends_at
            END
        RETURNING count
    `

	var count int
	if err := r.db.QueryRow(ctx, q, key, window).Scan(&count); err != nil && err != pgx.ErrNoRows {
		return false, err
	}
	return count <= limit, nil
}

func (r *rateLimitRepo) CleanupExpired(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM signin_rate_counters WHERE window_ends_at < NOW()`)
	return err
}
