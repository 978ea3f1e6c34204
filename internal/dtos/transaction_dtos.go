package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/vespaiach/ledger-api/internal/models"
)

type CreateTransactionRequest struct {
	Amount     int64     `json:"amount" validate:"required"`
	Date       time.Time `json:"date" validate:"required"`
	ReasonText string    `json:"reason_text" validate:"required,max=255"`
	Note       *string   `json:"note,omitempty" validate:"omitempty,max=1024"`
}

type UpdateTransactionRequest struct {
	Amount     *int64     `json:"amount,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	ReasonText *string    `json:"reason_text,omitempty" validate:"omitempty,min=1,max=255"`
	Note       *string    `json:"note,omitempty" validate:"omitempty,max=1024"`
}

// ListTransactionsQuery mirrors the supported query-string filters.
// RFC 3339 timestamps for dates, cents for amounts, comma-separated
// UUIDs for reasons.
type ListTransactionsQuery struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	AmountFrom *int64
	AmountTo   *int64
	ReasonIDs  []uuid.UUID
	Limit      int
	Offset     int
}

type ListTransactionsResponse struct {
	Transactions []*models.Transaction `json:"transactions"`
	Total        int                   `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}
