package postgres

import (
	"context"
	"time"

	"matchgo-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type questionRepo struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *pgxpool.Pool) domain.QuestionRepository {
	return &questionRepo{db: db}
}

// Create inserts a new question
func (r *questionRepo) Create(ctx context.Context, q *domain.Question) error {
	query := `
		INSERT INTO questions (quiz_id, question_text, question_type, choices, correct_answer, score, ord, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now

	err := r.db.QueryRow(ctx, query,
		q.QuizID,
		q.QuestionText,
		q.QuestionType,
		pq.Array(q.Choices),
		q.CorrectAnswer,
		q.Score,
		q.Order,
		q.CreatedAt,
		q.UpdatedAt,
	).Scan(&q.ID)
	return translateError(err)
}

// GetByID retrieves a question by ID
func (r *questionRepo) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	query := `
		SELECT id, quiz_id, question_text, question_type, choices, correct_answer, score, ord, created_at, updated_at
		FROM questions
		WHERE id = $1`

	var q domain.Question
	err := r.db.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.QuizID, &q.QuestionText, &q.QuestionType,
		pq.Array(&q.Choices), &q.CorrectAnswer, &q.Score, &q.Order,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &q, nil
}

// GetByQuiz retrieves all questions for a quiz ordered by their sequence
func (r *questionRepo) GetByQuiz(ctx context.Context, quizID int64) ([]domain.Question, error) {
	query := `
		SELECT id, quiz_id, question_text, question_type, choices, correct_answer, score, ord, created_at, updated_at
		FROM questions
		WHERE quiz_id = $1
		ORDER BY ord ASC`

	rows, err := r.db.Query(ctx, query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(
			&q.ID, &q.QuizID, &q.QuestionText, &q.QuestionType,
			pq.Array(&q.Choices), &q.CorrectAnswer, &q.Score, &q.Order,
			&q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// CountByQuiz counts the questions in a quiz
func (r *questionRepo) CountByQuiz(ctx context.Context, quizID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE quiz_id = $1`, quizID).Scan(&count)
	return count, err
}

// Update persists a modified question
func (r *questionRepo) Update(ctx context.Context, q *domain.Question) error {
	query := `
		UPDATE questions
		SET question_text = $2, question_type = $3, choices = $4, correct_answer = $5, score = $6, ord = $7, updated_at = $8
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		q.ID, q.QuestionText, q.QuestionType, pq.Array(q.Choices),
		q.CorrectAnswer, q.Score, q.Order, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a question
func (r *questionRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByQuiz removes all questions belonging to a quiz (cascade on quiz
// deletion)
func (r *questionRepo) DeleteByQuiz(ctx context.Context, quizID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM questions WHERE quiz_id = $1`, quizID)
	return err
}
