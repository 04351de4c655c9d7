package postgres

import (
	"context"
	"encoding/json"
	"time"

	"matchgo-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type submissionRepo struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new quiz submission repository
func NewSubmissionRepository(db *pgxpool.Pool) domain.SubmissionRepository {
	return &submissionRepo{db: db}
}

// Create persists a graded submission. Retakes of the same quiz are legal
// once the per-offer cooldown has passed, so there is no uniqueness here.
func (r *submissionRepo) Create(ctx context.Context, s *domain.QuizSubmission) error {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO quiz_submissions (quiz_id, candidate_user_id, answers, total_score, created_at)
		VALUES ($1, $2, $3::jsonb, $4, $5)
		RETURNING id`

	s.CreatedAt = time.Now()
	err = r.db.QueryRow(ctx, query,
		s.QuizID,
		s.CandidateUserID,
		string(answers),
		s.TotalScore,
		s.CreatedAt,
	).Scan(&s.ID)
	return translateError(err)
}

// GetByQuiz retrieves all submissions for a quiz, newest first
func (r *submissionRepo) GetByQuiz(ctx context.Context, quizID int64) ([]domain.QuizSubmission, error) {
	query := `
		SELECT s.id, s.quiz_id, s.candidate_user_id, s.answers, s.total_score, s.created_at, q.title
		FROM quiz_submissions s
		JOIN quizzes q ON s.quiz_id = q.id
		WHERE s.quiz_id = $1
		ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []domain.QuizSubmission
	for rows.Next() {
		var s domain.QuizSubmission
		var answers []byte
		if err := rows.Scan(
			&s.ID, &s.QuizID, &s.CandidateUserID, &answers, &s.TotalScore, &s.CreatedAt, &s.QuizTitle,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answers, &s.Answers); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

// GetLatestForOffer returns the candidate's most recent submission whose
// quiz belongs to the given offer. Drives both the cooldown check and the
// read-time quiz summary on applications.
func (r *submissionRepo) GetLatestForOffer(ctx context.Context, candidateID string, offerID int64) (*domain.QuizSubmission, error) {
	query := `
		SELECT s.id, s.quiz_id, s.candidate_user_id, s.answers, s.total_score, s.created_at, q.title
		FROM quiz_submissions s
		JOIN quizzes q ON s.quiz_id = q.id
		WHERE s.candidate_user_id = $1 AND q.offer_id = $2
		ORDER BY s.created_at DESC
		LIMIT 1`

	var s domain.QuizSubmission
	var answers []byte
	err := r.db.QueryRow(ctx, query, candidateID, offerID).Scan(
		&s.ID, &s.QuizID, &s.CandidateUserID, &answers, &s.TotalScore, &s.CreatedAt, &s.QuizTitle,
	)
	if err != nil {
		return nil, translateError(err)
	}
	if err := json.Unmarshal(answers, &s.Answers); err != nil {
		return nil, err
	}
	return &s, nil
}
