package postgres

import (
	"context"
	"time"

	"matchgo-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type quizRepo struct {
	db *pgxpool.Pool
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db *pgxpool.Pool) domain.QuizRepository {
	return &quizRepo{db: db}
}

const quizColumns = `id, offer_id, title, duration_seconds, total_score, question_count,
	is_active, is_published, version, created_at, updated_at`

func scanQuiz(row interface{ Scan(...any) error }, quiz *domain.Quiz) error {
	return row.Scan(
		&quiz.ID, &quiz.OfferID, &quiz.Title, &quiz.DurationSeconds,
		&quiz.TotalScore, &quiz.QuestionCount, &quiz.IsActive, &quiz.IsPublished,
		&quiz.Version, &quiz.CreatedAt, &quiz.UpdatedAt,
	)
}

// Create inserts a new quiz with zeroed derived stats
func (r *quizRepo) Create(ctx context.Context, quiz *domain.Quiz) error {
	query := `
		INSERT INTO quizzes (offer_id, title, duration_seconds, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, total_score, question_count, is_published, version`

	now := time.Now()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	err := r.db.QueryRow(ctx, query,
		quiz.OfferID,
		quiz.Title,
		quiz.DurationSeconds,
		quiz.IsActive,
		quiz.CreatedAt,
		quiz.UpdatedAt,
	).Scan(&quiz.ID, &quiz.TotalScore, &quiz.QuestionCount, &quiz.IsPublished, &quiz.Version)
	return translateError(err)
}

// GetByID retrieves a quiz by ID
func (r *quizRepo) GetByID(ctx context.Context, id int64) (*domain.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1`

	var quiz domain.Quiz
	if err := scanQuiz(r.db.QueryRow(ctx, query, id), &quiz); err != nil {
		return nil, translateError(err)
	}
	return &quiz, nil
}

// GetByOffer retrieves all quizzes for an offer
func (r *quizRepo) GetByOffer(ctx context.Context, offerID int64) ([]domain.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE offer_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, offerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []domain.Quiz
	for rows.Next() {
		var quiz domain.Quiz
		if err := scanQuiz(rows, &quiz); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, rows.Err()
}

// GetRandomByOffer picks one quiz for the offer uniformly at random
func (r *quizRepo) GetRandomByOffer(ctx context.Context, offerID int64) (*domain.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE offer_id = $1 ORDER BY random() LIMIT 1`

	var quiz domain.Quiz
	if err := scanQuiz(r.db.QueryRow(ctx, query, offerID), &quiz); err != nil {
		return nil, translateError(err)
	}
	return &quiz, nil
}

// Update persists owner-mutable fields with a compare-and-swap on version
func (r *quizRepo) Update(ctx context.Context, quiz *domain.Quiz) error {
	query := `
		UPDATE quizzes
		SET title = $3, duration_seconds = $4, is_active = $5, version = version + 1, updated_at = $6
		WHERE id = $1 AND version = $2`

	result, err := r.db.Exec(ctx, query,
		quiz.ID, quiz.Version, quiz.Title, quiz.DurationSeconds, quiz.IsActive, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	quiz.Version++
	return nil
}

// MarkPublished flips is_published with a compare-and-swap on version.
// Publishing is terminal; the usecase rejects an already-published quiz
// before calling this.
func (r *quizRepo) MarkPublished(ctx context.Context, id int64, version int) error {
	query := `
		UPDATE quizzes
		SET is_published = TRUE, version = version + 1, updated_at = $3
		WHERE id = $1 AND version = $2 AND is_published = FALSE`

	result, err := r.db.Exec(ctx, query, id, version, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

// Delete removes a quiz
func (r *quizRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByOffer counts the quizzes attached to an offer
func (r *quizRepo) CountByOffer(ctx context.Context, offerID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quizzes WHERE offer_id = $1`, offerID).Scan(&count)
	return count, err
}

// RecalcStats recomputes total_score and question_count from a full rescan
// of the question bank. Idempotent; converges after concurrent edits.
func (r *quizRepo) RecalcStats(ctx context.Context, quizID int64) error {
	query := `
		UPDATE quizzes
		SET total_score = stats.total, question_count = stats.cnt, updated_at = $2
		FROM (
			SELECT COALESCE(SUM(score), 0) AS total, COUNT(*) AS cnt
			FROM questions
			WHERE quiz_id = $1
		) AS stats
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, quizID, time.Now())
	return err
}
