package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgconn"

	"github.com/vespaiach/ledger-api/internal/config"
	"github.com/vespaiach/ledger-api/internal/repositories"
	"github.com/vespaiach/ledger-api/internal/utils"
)

const cleanupRetryDelay = 3 * time.Second

// CleanupService removes rows that no longer matter: sign-in keys past
// their window, revocation records past the token's natural expiry, and
// expired rate-limit counters. Scheduled nightly from main.
type CleanupService interface {
	CleanupDaily(ctx context.Context) error
}

type cleanupService struct {
	keyRepo       repositories.SigninKeyRepository
	revokedRepo   repositories.RevokedTokenRepository
	rateLimitRepo repositories.RateLimitRepository
	cfg           *config.Config
}

func NewCleanupService(
	keyRepo repositories.SigninKeyRepository,
	revokedRepo repositories.RevokedTokenRepository,
	rateLimitRepo repositories.RateLimitRepository,
	cfg *config.Config,
) CleanupService {
	return &cleanupService{
		keyRepo:       keyRepo,
		revokedRepo:   revokedRepo,
		rateLimitRepo: rateLimitRepo,
		cfg:           cfg,
	}
}

// runWithRetry executes op(ctx) and, if it returns a transient network
// error (EOF, pgconn safe-to-retry, or the common closed-connection
// message), waits a moment then retries once.
func (s *cleanupService) runWithRetry(
	ctx context.Context,
	op func(context.Context) error,
) error {
	if err := op(ctx); err != nil {
		if errors.Is(err, io.EOF) || pgconn.SafeToRetry(err) ||
			strings.Contains(err.Error(), "connection was closed") {
			utils.Logger.WithError(err).Warn("cleanup hit transient DB error; retrying once")
			time.Sleep(cleanupRetryDelay)
			return op(ctx)
		}
		return err
	}
	return nil
}

func (s *cleanupService) CleanupDaily(ctx context.Context) error {
	logger := utils.Logger

	keyCutoff := time.Now().Add(-s.cfg.SigninKeyAvailableTime)
	if err := s.runWithRetry(ctx, func(ctx context.Context) error {
		return s.keyRepo.CleanupExpired(ctx, keyCutoff)
	}); err != nil {
		logger.WithError(err).Error("Failed to cleanup expired signin_keys")
		return err
	}

	if err := s.runWithRetry(ctx, s.revokedRepo.CleanupExpired); err != nil {
		logger.WithError(err).Error("Failed to cleanup expired revoked_tokens")
		return err
	}

	if err := s.runWithRetry(ctx, s.rateLimitRepo.CleanupExpired); err != nil {
		logger.WithError(err).Error("Failed to cleanup expired signin_rate_counters")
		return err
	}

	logger.Info("Daily cleanup completed successfully.")
	return nil
}
