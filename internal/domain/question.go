package domain

import (
	"context"
	"time"
)

// Question types
const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeTrueFalse      = "true-false"
	QuestionTypeOpen           = "open"
)

// Question is one scored item within a quiz. Order is a 1-based sequence
// assigned at creation time; it is not renumbered on deletion, so gaps are
// permitted.
type Question struct {
	ID            int64     `json:"id"`
	QuizID        int64     `json:"quiz_id"`
	QuestionText  string    `json:"question_text"`
	QuestionType  string    `json:"question_type"`
	Choices       []string  `json:"choices"`
	CorrectAnswer string    `json:"correct_answer,omitempty"`
	Score         int       `json:"score"`
	Order         int       `json:"order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// QuestionPatch carries the owner-mutable fields. Nil means "leave unchanged".
type QuestionPatch struct {
	QuestionText  *string  `json:"question_text,omitempty"`
	QuestionType  *string  `json:"question_type,omitempty"`
	Choices       []string `json:"choices,omitempty"`
	CorrectAnswer *string  `json:"correct_answer,omitempty"`
	Score         *int     `json:"score,omitempty"`
	Order         *int     `json:"order,omitempty"`
}

// QuestionRepository defines data access for the question bank.
type QuestionRepository interface {
	Create(ctx context.Context, q *Question) error
	GetByID(ctx context.Context, id int64) (*Question, error)
	GetByQuiz(ctx context.Context, quizID int64) ([]Question, error)
	CountByQuiz(ctx context.Context, quizID int64) (int, error)
	Update(ctx context.Context, q *Question) error
	Delete(ctx context.Context, id int64) error
	DeleteByQuiz(ctx context.Context, quizID int64) error
}

// QuestionUsecase defines business logic for the question bank.
type QuestionUsecase interface {
	Add(ctx context.Context, userID string, quizID int64, q *Question) (*Question, error)
	ListByQuiz(ctx context.Context, role string, quizID int64) ([]Question, error)
	Update(ctx context.Context, userID string, questionID int64, patch QuestionPatch) (*Question, error)
	Delete(ctx context.Context, userID string, questionID int64) error
}
