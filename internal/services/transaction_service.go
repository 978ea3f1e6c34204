package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vespaiach/ledger-api/internal/models"
	"github.com/vespaiach/ledger-api/internal/repositories"
)

// CreateTransactionInput carries the fields for a new ledger entry.
// ReasonText is resolved to a reason row, creating one on first use.
type CreateTransactionInput struct {
	Amount     int64
	Date       time.Time
	ReasonText string
	Note       *string
}

// UpdateTransactionInput is a partial update; nil fields are left as-is.
type UpdateTransactionInput struct {
	Amount     *int64
	Date       *time.Time
	ReasonText *string
	Note       *string
}

type TransactionService interface {
	Create(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateTransactionInput) (*models.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of transactions matching the filter along with
	// the total match count for pagination.
	List(ctx context.Context, f repositories.TransactionFilter, limit, offset int) ([]*models.Transaction, int, error)
}

type transactionService struct {
	transactionRepo repositories.TransactionRepository
	reasonSvc       ReasonService
}

func NewTransactionService(
	transactionRepo repositories.TransactionRepository,
	reasonSvc ReasonService,
) TransactionService {
	return &transactionService{
		transactionRepo: transactionRepo,
		reasonSvc:       reasonSvc,
	}
}

func (s *transactionService) Create(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	reason, err := s.reasonSvc.GetOrCreate(ctx, in.ReasonText)
	if err != nil {
		return nil, err
	}

	t := &models.Transaction{
		ID:       uuid.New(),
		Amount:   in.Amount,
		Date:     in.Date,
		ReasonID: reason.ID,
		Note:     in.Note,
	}
	if err := s.transactionRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByID(ctx, t.ID)
}

func (s *transactionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, id)
}

func (s *transactionService) Update(ctx context.Context, id uuid.UUID, in UpdateTransactionInput) (*models.Transaction, error) {
	t, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}

	if in.Amount != nil {
		t.Amount = *in.Amount
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
	if in.Note != nil {
		t.Note = in.Note
	}
	if in.ReasonText != nil {
		reason, err := s.reasonSvc.GetOrCreate(ctx, *in.ReasonText)
		if err != nil {
			return nil, err
		}
		t.ReasonID = reason.ID
	}

	if err := s.transactionRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByID(ctx, id)
}

func (s *transactionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.transactionRepo.Delete(ctx, id)
}

func (s *transactionService) List(ctx context.Context, f repositories.TransactionFilter, limit, offset int) ([]*models.Transaction, int, error) {
	total, err := s.transactionRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	list, err := s.transactionRepo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
