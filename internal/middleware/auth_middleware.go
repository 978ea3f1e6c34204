package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vespaiach/ledger-api/internal/repositories"
	"github.com/vespaiach/ledger-api/internal/services"
	"github.com/vespaiach/ledger-api/internal/utils"
)

type contextKey string

const contextKeyAuth = contextKey("authContext")

// AuthContext is the per-request authentication state derived by the
// Authenticator. It is constructed fresh for every request and never
// shared between requests.
type AuthContext struct {
	// Token is the raw bearer string from the request, possibly empty.
	Token string
	// Email is the identity claim of a verified token, empty otherwise.
	Email string
	// SignedIn is true iff the token passed the revocation check and
	// signature/expiry verification.
	SignedIn bool
}

// GetAuthContext returns the request's AuthContext. The zero value is
// returned for requests that never went through the Authenticator.
func GetAuthContext(r *http.Request) AuthContext {
	ac, _ := r.Context().Value(contextKeyAuth).(AuthContext)
	return ac
}

// Authenticator derives sign-in state from the Authorization header on
// every request. It never rejects a request itself: a missing, revoked,
// expired, or malformed token simply yields an anonymous context.
// Verification failures are logged and swallowed.
func Authenticator(tokenSvc services.TokenService, revokedRepo repositories.RevokedTokenRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac := AuthContext{Token: extractBearerToken(r)}

			if ac.Token != "" {
				ac.Email, ac.SignedIn = verify(r.Context(), ac.Token, tokenSvc, revokedRepo)
			}

			ctx := context.WithValue(r.Context(), contextKeyAuth, ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth guards the ledger routes: requests without a valid session
// fail hard with 401 before any data access happens.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetAuthContext(r).SignedIn {
			utils.HandleAppError(w, utils.ErrAuthentication)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func verify(
	ctx context.Context,
	token string,
	tokenSvc services.TokenService,
	revokedRepo repositories.RevokedTokenRepository,
) (email string, ok bool) {
	revoked, err := revokedRepo.IsRevoked(ctx, token)
	if err != nil {
		utils.Logger.WithError(err).Error("Revocation check failed; treating request as anonymous")
		return "", false
	}
	if revoked {
		return "", false
	}

	email, err = tokenSvc.Verify(token)
	if err != nil {
		utils.Logger.WithError(err).Debug("Bearer token failed verification")
		return "", false
	}
	return email, true
}

// extractBearerToken strips a literal "Bearer " prefix when present;
// otherwise the whole header value is treated as the token.
func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return h
}
