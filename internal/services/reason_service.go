package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/vespaiach/ledger-api/internal/models"
	"github.com/vespaiach/ledger-api/internal/repositories"
	"github.com/vespaiach/ledger-api/internal/utils"
)

// ReasonService manages the category labels attached to transactions.
type ReasonService interface {
	List(ctx context.Context) ([]*models.Reason, error)
	// GetOrCreate returns the reason with the given text, creating it on
	// first use. Text is trimmed; matching is exact.
	GetOrCreate(ctx context.Context, text string) (*models.Reason, error)
	Update(ctx context.Context, id uuid.UUID, text string) (*models.Reason, error)
	// Delete removes a reason; it fails with utils.ErrReasonInUse while
	// transactions still reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type reasonService struct {
	reasonRepo      repositories.ReasonRepository
	transactionRepo repositories.TransactionRepository
}

func NewReasonService(
	reasonRepo repositories.ReasonRepository,
	transactionRepo repositories.TransactionRepository,
) ReasonService {
	return &reasonService{
		reasonRepo:      reasonRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *reasonService) List(ctx context.Context) ([]*models.Reason, error) {
	return s.reasonRepo.List(ctx)
}

func (s *reasonService) GetOrCreate(ctx context.Context, text string) (*models.Reason, error) {
	text = strings.TrimSpace(text)

	existing, err := s.reasonRepo.GetByText(ctx, text)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	reason := &models.Reason{
		ID:   uuid.New(),
		Text: text,
	}
	if err := s.reasonRepo.Create(ctx, reason); err != nil {
		return nil, err
	}
	return reason, nil
}

func (s *reasonService) Update(ctx context.Context, id uuid.UUID, text string) (*models.Reason, error) {
	reason, err := s.reasonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reason == nil {
		return nil, nil
	}

	reason.Text = strings.TrimSpace(text)
	if err := s.reasonRepo.Update(ctx, reason); err != nil {
		return nil, err
	}
	return s.reasonRepo.GetByID(ctx, id)
}

func (s *reasonService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.transactionRepo.CountByReasonID(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.ErrReasonInUse
	}
	return s.reasonRepo.Delete(ctx, id)
}
