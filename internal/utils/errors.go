package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	// ErrInvalidOrExpiredKey is returned when a sign-in key is unknown or
	// its validity window has passed.
	ErrInvalidOrExpiredKey = errors.New("invalid_or_expired_key")

	// ErrAuthentication is raised by the authorization guard on requests
	// without a valid session.
	ErrAuthentication = errors.New("authentication_error")

	ErrNotFound = errors.New("not_found")

	// ErrReasonInUse blocks deleting a reason still referenced by transactions.
	ErrReasonInUse = errors.New("reason_in_use")

	// For rate limiting
	ErrRateLimitExceeded = errors.New("rate_limit_exceeded")

	// For external service failures (e.g., SendGrid)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError maps service-layer errors onto HTTP responses. Sentinel
// errors carry a fixed status and code; an AppError carries its own;
// anything unrecognized is a 500 with the error logged.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	case errors.Is(err, ErrAuthentication):
		RespondErrorWithCode(w, http.StatusUnauthorized, ErrCodeAuthentication, "Please sign in", nil)
	case errors.Is(err, ErrNotFound):
		RespondErrorWithCode(w, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
	case errors.Is(err, ErrInvalidOrExpiredKey):
		RespondErrorWithCode(w, http.StatusBadRequest, ErrCodeInvalidOrExpiredKey,
			"The sign-in key is invalid or has expired", nil)
	case errors.Is(err, ErrRateLimitExceeded):
		RespondErrorWithCode(w, http.StatusTooManyRequests, ErrCodeRateLimitExceeded,
			"Too many requests. Please try again later.", nil)
	case errors.Is(err, ErrReasonInUse):
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeConflict,
			"Reason is still referenced by transactions", nil)
	default:
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
