package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/vespaiach/ledger-api/internal/models"
)

type ReasonRepository interface {
	Create(ctx context.Context, reason *models.Reason) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reason, error)
	GetByText(ctx context.Context, text string) (*models.Reason, error)
	List(ctx context.Context) ([]*models.Reason, error)
	Update(ctx context.Context, reason *models.Reason) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reasonRepo struct {
	db DB
}

func NewReasonRepository(db DB) ReasonRepository {
	return &reasonRepo{db: db}
}

func (r *reasonRepo) Create(ctx context.Context, reason *models.Reason) error {
	q := `
        INSERT INTO reasons (id, text, updated_at)
        VALUES ($1, $2, NOW())
    `
	_, err := r.db.Exec(ctx, q, reason.ID, reason.Text)
	return err
}

func (r *reasonRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reason, error) {
	row := r.db.QueryRow(ctx, baseSelectReason()+` WHERE id = $1`, id)
	return scanReason(row)
}

func (r *reasonRepo) GetByText(ctx context.Context, text string) (*models.Reason, error) {
	row := r.db.QueryRow(ctx, baseSelectReason()+` WHERE text = $1`, text)
	return scanReason(row)
}

func (r *reasonRepo) List(ctx context.Context) ([]*models.Reason, error) {
	rows, err := r.db.Query(ctx, baseSelectReason()+` ORDER BY text`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Reason
	for rows.Next() {
		rs, err := scanReason(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

func (r *reasonRepo) Update(ctx context.Context, reason *models.Reason) error {
	q := `UPDATE reasons SET text = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, q, reason.Text, reason.ID)
	return err
}

func (r *reasonRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM reasons WHERE id = $1`, id)
	return err
}

func baseSelectReason() string {
	return `
        SELECT id, text, updated_at
        FROM reasons`
}

func scanReason(row pgx.Row) (*models.Reason, error) {
	var rs models.Reason
	if err := row.Scan(&rs.ID, &rs.Text, &rs.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rs, nil
}
