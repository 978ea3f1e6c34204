package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vespaiach/ledger-api/internal/repositories"
)

func newTransactionFixture() (TransactionService, *mockTransactionRepo, *mockReasonRepo) {
	txRepo := newMockTransactionRepo()
	reasonRepo := newMockReasonRepo()
	reasonSvc := NewReasonService(reasonRepo, txRepo)
	return NewTransactionService(txRepo, reasonSvc), txRepo, reasonRepo
}

func strPtr(s string) *string { return &s }

func TestTransactionService(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateResolvesReasonByText", func(t *testing.T) {
		svc, _, reasonRepo := newTransactionFixture()

		tx, err := svc.Create(ctx, CreateTransactionInput{
			Amount:     -4550,
			Date:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			ReasonText: "groceries",
			Note:       strPtr("weekly shop"),
		})
		require.NoError(t, err)
		require.NotNil(t, tx)
		require.Equal(t, int64(-4550), tx.Amount)

		reason, err := reasonRepo.GetByID(ctx, tx.ReasonID)
		require.NoError(t, err)
		require.NotNil(t, reason)
		require.Equal(t, "groceries", reason.Text)
	})

	t.Run("CreateReusesExistingReason", func(t *testing.T) {
		svc, _, _ := newTransactionFixture()

		first, err := svc.Create(ctx, CreateTransactionInput{
			Amount: -100, Date: time.Now(), ReasonText: "coffee",
		})
		require.NoError(t, err)
		second, err := svc.Create(ctx, CreateTransactionInput{
			Amount: -200, Date: time.Now(), ReasonText: "coffee",
		})
		require.NoError(t, err)
		require.Equal(t, first.ReasonID, second.ReasonID)
	})

	t.Run("UpdateAppliesOnlyProvidedFields", func(t *testing.T) {
		svc, _, _ := newTransactionFixture()

		tx, err := svc.Create(ctx, CreateTransactionInput{
			Amount:     -1000,
			Date:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			ReasonText: "groceries",
			Note:       strPtr("original"),
		})
		require.NoError(t, err)

		newAmount := int64(-2500)
		updated, err := svc.Update(ctx, tx.ID, UpdateTransactionInput{Amount: &newAmount})
		require.NoError(t, err)
		require.NotNil(t, updated)
		require.Equal(t, newAmount, updated.Amount)
		require.Equal(t, tx.Date, updated.Date)
		require.Equal(t, tx.ReasonID, updated.ReasonID)
		require.NotNil(t, updated.Note)
		require.Equal(t, "original", *updated.Note)
	})

	t.Run("UpdateReasonTextSwitchesReason", func(t *testing.T) {
		svc, _, _ := newTransactionFixture()

		tx, err := svc.Create(ctx, CreateTransactionInput{
			Amount: -1000, Date: time.Now(), ReasonText: "groceries",
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, tx.ID, UpdateTransactionInput{ReasonText: strPtr("dining out")})
		require.NoError(t, err)
		require.NotNil(t, updated)
		require.NotEqual(t, tx.ReasonID, updated.ReasonID)
	})

	t.Run("UpdateUnknownIDReturnsNil", func(t *testing.T) {
		svc, _, _ := newTransactionFixture()

		updated, err := svc.Update(ctx, uuid.New(), UpdateTransactionInput{Note: strPtr("x")})
		require.NoError(t, err)
		require.Nil(t, updated)
	})

	t.Run("ListReturnsFilteredPageAndTotal", func(t *testing.T) {
		svc, _, _ := newTransactionFixture()

		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			_, err := svc.Create(ctx, CreateTransactionInput{
				Amount:     int64(-100 * (i + 1)),
				Date:       base.AddDate(0, 0, i),
				ReasonText: "groceries",
			})
			require.NoError(t, err)
		}

		from := base.AddDate(0, 0, 2)
		list, total, err := svc.List(ctx, repositories.TransactionFilter{DateFrom: &from}, 50, 0)
		require.NoError(t, err)
		require.Equal(t, 3, total)
		require.Len(t, list, 3)

		min := int64(-250)
		list, total, err = svc.List(ctx, repositories.TransactionFilter{AmountFrom: &min}, 50, 0)
		require.NoError(t, err)
		require.Equal(t, 2, total)
		require.Len(t, list, 2)
	})
}
