package postgres

import (
	"context"
	"time"

	"matchgo-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

// NewInterviewRepository creates a new interview repository
func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

// Create inserts a new interview
func (r *interviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	query := `
		INSERT INTO interviews (application_id, scheduled_by, date, meet_link, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	iv.CreatedAt = time.Now()
	err := r.db.QueryRow(ctx, query,
		iv.ApplicationID,
		iv.ScheduledBy,
		iv.Date,
		iv.MeetLink,
		iv.Message,
		iv.CreatedAt,
	).Scan(&iv.ID)
	return translateError(err)
}

const interviewSelect = `
	SELECT i.id, i.application_id, i.scheduled_by, i.date, i.meet_link, i.message, i.created_at,
		a.email, o.job_title
	FROM interviews i
	JOIN applications a ON i.application_id = a.id
	JOIN offers o ON a.offer_id = o.id`

func (r *interviewRepo) queryInterviews(ctx context.Context, query string, args ...any) ([]domain.Interview, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		var iv domain.Interview
		if err := rows.Scan(
			&iv.ID, &iv.ApplicationID, &iv.ScheduledBy, &iv.Date, &iv.MeetLink,
			&iv.Message, &iv.CreatedAt, &iv.CandidateEmail, &iv.JobTitle,
		); err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}

// GetByOffer retrieves all interviews whose application belongs to an offer
func (r *interviewRepo) GetByOffer(ctx context.Context, offerID int64) ([]domain.Interview, error) {
	query := interviewSelect + `
	WHERE a.offer_id = $1
	ORDER BY i.date ASC`
	return r.queryInterviews(ctx, query, offerID)
}

// GetByCandidate retrieves a candidate's interviews
func (r *interviewRepo) GetByCandidate(ctx context.Context, candidateID string) ([]domain.Interview, error) {
	query := interviewSelect + `
	WHERE a.candidate_user_id = $1
	ORDER BY i.date ASC`
	return r.queryInterviews(ctx, query, candidateID)
}

// GetByDateRange retrieves a company's interviews within [from, to],
// optionally filtered to a single offer
func (r *interviewRepo) GetByDateRange(ctx context.Context, companyID string, from, to time.Time, offerID *int64) ([]domain.Interview, error) {
	if offerID != nil {
		query := interviewSelect + `
	WHERE o.company_user_id = $1 AND i.date BETWEEN $2 AND $3 AND a.offer_id = $4
	ORDER BY i.date ASC`
		return r.queryInterviews(ctx, query, companyID, from, to, *offerID)
	}

	query := interviewSelect + `
	WHERE o.company_user_id = $1 AND i.date BETWEEN $2 AND $3
	ORDER BY i.date ASC`
	return r.queryInterviews(ctx, query, companyID, from, to)
}
