package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vespaiach/ledger-api/internal/config"
	"github.com/vespaiach/ledger-api/internal/models"
	"github.com/vespaiach/ledger-api/internal/repositories"
	"github.com/vespaiach/ledger-api/internal/utils"
)

// Soft outcomes returned by Initiate. They are display-safe strings, not
// errors; callers must not treat them as failures.
const (
	OutcomeSent         = "sent"
	OutcomeInvalidEmail = "invalid email address"
	OutcomeNotAllowed   = "the email address isn't allowed to sign in"
	OutcomeAlreadySent  = "an instruction has been sent to your email address"
)

// SigninService orchestrates the passwordless sign-in lifecycle: key
// issuance + mail dispatch on Initiate, key redemption + token issuance
// on Redeem, and token revocation on Revoke (signout).
type SigninService interface {
	// Initiate validates the email, applies the allow-list and throttles,
	// and when permitted creates a sign-in key and mails it out. The
	// returned string is one of the Outcome constants.
	Initiate(ctx context.Context, email, clientIP string) (string, error)

	// Redeem exchanges a sign-in key for a signed bearer token. Unknown
	// and out-of-window keys both fail with utils.ErrInvalidOrExpiredKey.
	Redeem(ctx context.Context, key string) (string, error)

	// Revoke invalidates a bearer token before its natural expiry.
	Revoke(ctx context.Context, rawToken string) error
}

type signinService struct {
	keyRepo     repositories.SigninKeyRepository
	revokedRepo repositories.RevokedTokenRepository
	rateLimiter RateLimiterService
	tokenSvc    TokenService
	mailer      Mailer
	cfg         *config.Config
}

func NewSigninService(
	keyRepo repositories.SigninKeyRepository,
	revokedRepo repositories.RevokedTokenRepository,
	rateLimiter RateLimiterService,
	tokenSvc TokenService,
	mailer Mailer,
	cfg *config.Config,
) SigninService {
	return &signinService{
		keyRepo:     keyRepo,
		revokedRepo: revokedRepo,
		rateLimiter: rateLimiter,
		tokenSvc:    tokenSvc,
		mailer:      mailer,
		cfg:         cfg,
	}
}

// ---------------------------------------------------------------------
// Initiate
// ---------------------------------------------------------------------

func (s *signinService) Initiate(ctx context.Context, email, clientIP string) (string, error) {
	if !utils.IsValidEmailSyntax(email) {
		return OutcomeInvalidEmail, nil
	}

	if !s.cfg.IsEmailAuthorized(email) {
		return OutcomeNotAllowed, nil
	}

	// One live key per email. A key created inside the validity window
	// blocks re-issuance until it ages out.
	cutoff := time.Now().Add(-s.cfg.SigninKeyAvailableTime)
	existing, err := s.keyRepo.GetLatestActive(ctx, email, cutoff)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return OutcomeAlreadySent, nil
	}

	if err := s.rateLimiter.CheckEmailRateLimits(ctx, clientIP, email); err != nil {
		return "", err
	}

	record := &models.SigninKey{
		ID:        uuid.New(),
		Key:       uuid.New(),
		Email:     email,
		CreatedAt: time.Now(),
	}

	// Persistence and mail dispatch run as two independent tasks; the
	// flow joins both but does not roll back the insert when the mail
	// fails, and does not surface the mail failure to the caller.
	var (
		wg                 sync.WaitGroup
		createErr, mailErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		createErr = s.keyRepo.Create(ctx, record)
	}()
	go func() {
		defer wg.Done()
		mailErr = s.mailer.SendSigninKey(ctx, email, record.Key.String())
	}()
	wg.Wait()

	if createErr != nil {
		return "", createErr
	}
	if mailErr != nil {
		utils.Logger.WithError(mailErr).Errorf("Sign-in mail to %s failed; key %s remains redeemable", email, record.Key)
	}

	return OutcomeSent, nil
}

// ---------------------------------------------------------------------
// Redeem
// ---------------------------------------------------------------------

func (s *signinService) Redeem(ctx context.Context, key string) (string, error) {
	parsed, err := uuid.Parse(key)
	if err != nil {
		return "", utils.ErrInvalidOrExpiredKey
	}

	record, err := s.keyRepo.GetByKey(ctx, parsed)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", utils.ErrInvalidOrExpiredKey
	}

	// The boundary is exclusive of validity: a key created exactly at the
	// cutoff is already expired.
	cutoff := time.Now().Add(-s.cfg.SigninKeyAvailableTime)
	if record.ExpiredAt(cutoff) {
		return "", utils.ErrInvalidOrExpiredKey
	}

	// The key is intentionally not consumed here: each redemption inside
	// the window mints a fresh token with a fresh expiry.
	return s.tokenSvc.Sign(record.Email)
}

// ---------------------------------------------------------------------
// Revoke
// ---------------------------------------------------------------------

func (s *signinService) Revoke(ctx context.Context, rawToken string) error {
	// ExpiresAt is an upper bound on the token's remaining life; the
	// cleanup job uses it to drop rows that no longer matter.
	return s.revokedRepo.Create(ctx, &models.RevokedToken{
		ID:        uuid.New(),
		TokenHash: utils.HashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.SigninTokenAvailableTime),
	})
}
