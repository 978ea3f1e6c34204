package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vespaiach/ledger-api/internal/config"
)

// TokenService signs and verifies the self-contained bearer tokens issued
// after a sign-in key is redeemed. The server keeps no session state for
// them beyond the revocation list.
type TokenService interface {
	// Sign issues a token carrying the email claim, expiring after the
	// configured token lifetime.
	Sign(email string) (string, error)
	// Verify checks signature and expiry and returns the email claim.
	Verify(raw string) (string, error)
}

type tokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

func NewTokenService(cfg *config.Config) TokenService {
	return &tokenService{
		secret: cfg.SigninJWTSecret,
		method: cfg.SigninJWTAlgorithm,
		ttl:    cfg.SigninTokenAvailableTime,
	}
}

func (s *tokenService) Sign(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

func (s *tokenService) Verify(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return "", errors.New("missing expiration claim")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return "", jwt.ErrTokenExpired
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("missing email claim")
	}
	return email, nil
}
