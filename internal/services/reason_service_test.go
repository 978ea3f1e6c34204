package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vespaiach/ledger-api/internal/models"
	"github.com/vespaiach/ledger-api/internal/repositories"
	"github.com/vespaiach/ledger-api/internal/utils"
)

type mockReasonRepo struct {
	byID map[uuid.UUID]*models.Reason
}

func newMockReasonRepo() *mockReasonRepo {
	return &mockReasonRepo{byID: make(map[uuid.UUID]*models.Reason)}
}

func (m *mockReasonRepo) Create(ctx context.Context, reason *models.Reason) error {
	cp := *reason
	m.byID[reason.ID] = &cp
	return nil
}

func (m *mockReasonRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reason, error) {
	r := m.byID[id]
	if r == nil {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *mockReasonRepo) GetByText(ctx context.Context, text string) (*models.Reason, error) {
	for _, r := range m.byID {
		if r.Text == text {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockReasonRepo) List(ctx context.Context) ([]*models.Reason, error) {
	out := make([]*models.Reason, 0, len(m.byID))
	for _, r := range m.byID {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockReasonRepo) Update(ctx context.Context, reason *models.Reason) error {
	cp := *reason
	m.byID[reason.ID] = &cp
	return nil
}

func (m *mockReasonRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

type mockTransactionRepo struct {
	byID map[uuid.UUID]*models.Transaction
}

func newMockTransactionRepo() *mockTransactionRepo {
	return &mockTransactionRepo{byID: make(map[uuid.UUID]*models.Transaction)}
}

func (m *mockTransactionRepo) Create(ctx context.Context, t *models.Transaction) error {
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *mockTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	t := m.byID[id]
	if t == nil {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *mockTransactionRepo) Update(ctx context.Context, t *models.Transaction) error {
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *mockTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func (m *mockTransactionRepo) List(ctx context.Context, f repositories.TransactionFilter, limit, offset int) ([]*models.Transaction, error) {
	out := make([]*models.Transaction, 0, len(m.byID))
	for _, t := range m.byID {
		if matchesFilter(t, f) {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockTransactionRepo) Count(ctx context.Context, f repositories.TransactionFilter) (int, error) {
	n := 0
	for _, t := range m.byID {
		if matchesFilter(t, f) {
			n++
		}
	}
	return n, nil
}

func (m *mockTransactionRepo) CountByReasonID(ctx context.Context, reasonID uuid.UUID) (int, error) {
	n := 0
	for _, t := range m.byID {
		if t.ReasonID == reasonID {
			n++
		}
	}
	return n, nil
}

func matchesFilter(t *models.Transaction, f repositories.TransactionFilter) bool {
	if f.DateFrom != nil && t.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && t.Date.After(*f.DateTo) {
		return false
	}
	if f.AmountFrom != nil && t.Amount < *f.AmountFrom {
		return false
	}
	if f.AmountTo != nil && t.Amount > *f.AmountTo {
		return false
	}
	if len(f.ReasonIDs) > 0 {
		found := false
		for _, id := range f.ReasonIDs {
			if t.ReasonID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestReasonService(t *testing.T) {
	ctx := context.Background()

	t.Run("GetOrCreateReturnsExistingByText", func(t *testing.T) {
		svc := NewReasonService(newMockReasonRepo(), newMockTransactionRepo())

		first, err := svc.GetOrCreate(ctx, "groceries")
		require.NoError(t, err)

		second, err := svc.GetOrCreate(ctx, "groceries")
		require.NoError(t, err)
		require.Equal(t, first.ID, second.ID)
	})

	t.Run("GetOrCreateTrimsText", func(t *testing.T) {
		svc := NewReasonService(newMockReasonRepo(), newMockTransactionRepo())

		first, err := svc.GetOrCreate(ctx, "groceries")
		require.NoError(t, err)

		second, err := svc.GetOrCreate(ctx, "  groceries  ")
		require.NoError(t, err)
		require.Equal(t, first.ID, second.ID)
	})

	t.Run("UpdateUnknownIDReturnsNil", func(t *testing.T) {
		svc := NewReasonService(newMockReasonRepo(), newMockTransactionRepo())

		reason, err := svc.Update(ctx, uuid.New(), "anything")
		require.NoError(t, err)
		require.Nil(t, reason)
	})

	t.Run("DeleteFailsWhileReferenced", func(t *testing.T) {
		reasonRepo := newMockReasonRepo()
		txRepo := newMockTransactionRepo()
		svc := NewReasonService(reasonRepo, txRepo)

		reason, err := svc.GetOrCreate(ctx, "rent")
		require.NoError(t, err)

		require.NoError(t, txRepo.Create(ctx, &models.Transaction{
			ID:       uuid.New(),
			Amount:   -120000,
			ReasonID: reason.ID,
		}))

		err = svc.Delete(ctx, reason.ID)
		require.ErrorIs(t, err, utils.ErrReasonInUse)

		still, err := reasonRepo.GetByID(ctx, reason.ID)
		require.NoError(t, err)
		require.NotNil(t, still)
	})

	t.Run("DeleteSucceedsWhenUnreferenced", func(t *testing.T) {
		reasonRepo := newMockReasonRepo()
		svc := NewReasonService(reasonRepo, newMockTransactionRepo())

		reason, err := svc.GetOrCreate(ctx, "one-off")
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, reason.ID))

		gone, err := reasonRepo.GetByID(ctx, reason.ID)
		require.NoError(t, err)
		require.Nil(t, gone)
	})
}
