package postgres

import (
	"context"
	"time"

	"matchgo-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The (candidate, offer) unique
// constraint surfaces as ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (offer_id, candidate_user_id, status, cv, motivation_letter,
			linkedin, github, phone_number, location, date_of_birth, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, version`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	err := r.db.QueryRow(ctx, query,
		app.OfferID,
		app.CandidateUserID,
		app.Status,
		app.CV,
		app.MotivationLetter,
		app.LinkedIn,
		app.GitHub,
		app.PhoneNumber,
		app.Location,
		app.DateOfBirth,
		app.Email,
		app.CreatedAt,
		app.UpdatedAt,
	).Scan(&app.ID, &app.Version)
	return translateError(err)
}

// GetByID retrieves an application with the joined job title
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT a.id, a.offer_id, a.candidate_user_id, a.status, a.cv, a.motivation_letter,
			a.linkedin, a.github, a.phone_number, a.location, a.date_of_birth, a.email,
			a.version, a.created_at, a.updated_at, o.job_title
		FROM applications a
		JOIN offers o ON a.offer_id = o.id
		WHERE a.id = $1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.OfferID, &app.CandidateUserID, &app.Status, &app.CV, &app.MotivationLetter,
		&app.LinkedIn, &app.GitHub, &app.PhoneNumber, &app.Location, &app.DateOfBirth, &app.Email,
		&app.Version, &app.CreatedAt, &app.UpdatedAt, &app.JobTitle,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &app, nil
}

// GetByOffer retrieves all applications for an offer, newest first
func (r *applicationRepo) GetByOffer(ctx context.Context, offerID int64) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.offer_id, a.candidate_user_id, a.status, a.cv, a.motivation_letter,
			a.linkedin, a.github, a.phone_number, a.location, a.date_of_birth, a.email,
			a.version, a.created_at, a.updated_at, o.job_title
		FROM applications a
		JOIN offers o ON a.offer_id = o.id
		WHERE a.offer_id = $1
		ORDER BY a.created_at DESC`

	return r.queryApplications(ctx, query, offerID)
}

// GetByCandidate retrieves all applications submitted by a candidate
func (r *applicationRepo) GetByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.offer_id, a.candidate_user_id, a.status, a.cv, a.motivation_letter,
			a.linkedin, a.github, a.phone_number, a.location, a.date_of_birth, a.email,
			a.version, a.created_at, a.updated_at, o.job_title
		FROM applications a
		JOIN offers o ON a.offer_id = o.id
		WHERE a.candidate_user_id = $1
		ORDER BY a.created_at DESC`

	return r.queryApplications(ctx, query, candidateID)
}

func (r *applicationRepo) queryApplications(ctx context.Context, query string, arg any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.OfferID, &app.CandidateUserID, &app.Status, &app.CV, &app.MotivationLetter,
			&app.LinkedIn, &app.GitHub, &app.PhoneNumber, &app.Location, &app.DateOfBirth, &app.Email,
			&app.Version, &app.CreatedAt, &app.UpdatedAt, &app.JobTitle,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// CheckExists checks if an application already exists for the offer/candidate pair
func (r *applicationRepo) CheckExists(ctx context.Context, offerID int64, candidateID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE offer_id = $1 AND candidate_user_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, offerID, candidateID).Scan(&exists)
	return exists, err
}

// UpdateStatus sets the status with a compare-and-swap on the version read
// during validation, so two concurrent updates cannot both pass the
// transition check against stale state.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string, version int) error {
	query := `
		UPDATE applications
		SET status = $2, version = version + 1, updated_at = $3
		WHERE id = $1 AND version = $4`

	result, err := r.db.Exec(ctx, query, id, status, time.Now(), version)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

// DeleteByOffer bulk-deletes all applications for an offer and returns the count
func (r *applicationRepo) DeleteByOffer(ctx context.Context, offerID int64) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE offer_id = $1`, offerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
