package postgres

import (
	"context"

	"matchgo-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type offerRepo struct {
	db *pgxpool.Pool
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *pgxpool.Pool) domain.OfferRepository {
	return &offerRepo{db: db}
}

// GetByID retrieves an offer by ID
func (r *offerRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	query := `
		SELECT id, company_user_id, job_title, description, application_deadline, has_quiz, created_at
		FROM offers
		WHERE id = $1`

	var offer domain.Offer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&offer.ID, &offer.CompanyUserID, &offer.JobTitle, &offer.Description,
		&offer.ApplicationDeadline, &offer.HasQuiz, &offer.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &offer, nil
}

// SetHasQuiz updates the derived has_quiz flag on an offer
func (r *offerRepo) SetHasQuiz(ctx context.Context, id int64, hasQuiz bool) error {
	query := `UPDATE offers SET has_quiz = $2 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, hasQuiz)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
