package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenSignVerify(t *testing.T) {
	t.Run("RoundTripReturnsEmail", func(t *testing.T) {
		svc := NewTokenService(testConfig())

		token, err := svc.Sign("user@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		email, err := svc.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "user@example.com", email)
	})

	t.Run("ExpiredTokenFails", func(t *testing.T) {
		cfg := testConfig()
		cfg.SigninTokenAvailableTime = -1 * time.Minute
		svc := NewTokenService(cfg)

		token, err := svc.Sign("user@example.com")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.Error(t, err)
	})

	t.Run("WrongSecretFails", func(t *testing.T) {
		svc := NewTokenService(testConfig())

		other := testConfig()
		other.SigninJWTSecret = []byte("a-different-secret")

		token, err := NewTokenService(other).Sign("user@example.com")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.Error(t, err)
	})

	t.Run("TamperedTokenFails", func(t *testing.T) {
		svc := NewTokenService(testConfig())

		token, err := svc.Sign("user@example.com")
		require.NoError(t, err)

		_, err = svc.Verify(token + "x")
		require.Error(t, err)
	})

	t.Run("NoneAlgorithmIsRejected", func(t *testing.T) {
		svc := NewTokenService(testConfig())

		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"email": "attacker@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.Error(t, err)
	})

	t.Run("MissingEmailClaimFails", func(t *testing.T) {
		cfg := testConfig()
		svc := NewTokenService(cfg)

		bare := jwt.NewWithClaims(cfg.SigninJWTAlgorithm, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		token, err := bare.SignedString(cfg.SigninJWTSecret)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.Error(t, err)
	})
}
