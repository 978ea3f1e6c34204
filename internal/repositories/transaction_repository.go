package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/vespaiach/ledger-api/internal/models"
)

// TransactionFilter narrows List/Count. Nil fields mean "no constraint".
type TransactionFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	AmountFrom *int64
	AmountTo   *int64
	ReasonIDs  []uuid.UUID
}

type TransactionRepository interface {
	Create(ctx context.Context, t *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, f TransactionFilter, limit, offset int) ([]*models.Transaction, error)
	Count(ctx context.Context, f TransactionFilter) (int, error)

	CountByReasonID(ctx context.Context, reasonID uuid.UUID) (int, error)
}

type transactionRepo struct {
	db DB
}

func NewTransactionRepository(db DB) TransactionRepository {
	return &transactionRepo{db: db}
}

/* ---------- Create / Update / Delete ---------- */

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction) error {
	q := `
        INSERT INTO transactions (id, amount, date, reason_id, note, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
    `
	_, err := r.db.Exec(ctx, q, t.ID, t.Amount, t.Date, t.ReasonID, t.Note)
	return err
}

func (r *transactionRepo) Update(ctx context.Context, t *models.Transaction) error {
	q := `
        UPDATE transactions
        SET amount = $1, date = $2, reason_id = $3, note = $4, updated_at = NOW()
        WHERE id = $5
    `
	_, err := r.db.Exec(ctx, q, t.Amount, t.Date, t.ReasonID, t.Note, t.ID)
	return err
}

func (r *transactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}

/* ---------- Reads ---------- */

func (r *transactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	row := r.db.QueryRow(ctx, baseSelectTransaction()+` WHERE t.id = $1`, id)
	return scanTransaction(row)
}

func (r *transactionRepo) List(ctx context.Context, f TransactionFilter, limit, offset int) ([]*models.Transaction, error) {
	where, args := buildTransactionWhere(f)
	q := fmt.Sprintf(
		"%s%s ORDER BY t.date DESC, t.id OFFSET $%d LIMIT $%d",
		baseSelectTransaction(), where, len(args)+1, len(args)+2,
	)
	args = append(args, offset, limit)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *transactionRepo) Count(ctx context.Context, f TransactionFilter) (int, error) {
	where, args := buildTransactionWhere(f)
	q := `SELECT COUNT(*) FROM transactions t` + where

	var n int
	if err := r.db.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *transactionRepo) CountByReasonID(ctx context.Context, reasonID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE reason_id = $1`, reasonID,
	).Scan(&n)
	return n, err
}

/* ---------- internals ---------- */

// buildTransactionWhere translates the filter into a WHERE clause with
// positional args, in a fixed field order so queries stay cacheable.
func buildTransactionWhere(f TransactionFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	add := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.DateFrom != nil {
		add("t.date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("t.date <= $%d", *f.DateTo)
	}
	if f.AmountFrom != nil {
		add("t.amount >= $%d", *f.AmountFrom)
	}
	if f.AmountTo != nil {
		add("t.amount <= $%d", *f.AmountTo)
	}
	if len(f.ReasonIDs) > 0 {
		add("t.reason_id = ANY($%d)", f.ReasonIDs)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func baseSelectTransaction() string {
	return `
        SELECT t.id, t.amount, t.date, t.reason_id, t.note, t.updated_at, r.text
        FROM transactions t
        JOIN reasons r ON r.id = t.reason_id`
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	if err := row.Scan(
		&t.ID, &t.Amount, &t.Date, &t.ReasonID, &t.Note, &t.UpdatedAt, &t.ReasonText,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
