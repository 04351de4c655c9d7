package domain

import (
	"context"
	"time"
)

// SubmittedAnswer is one graded answer inside a submission. IsCorrect and
// Score are fixed at grading time and never re-derived, even if the
// question bank changes afterwards.
type SubmittedAnswer struct {
	QuestionID     int64  `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`
	Score          int    `json:"score"`
}

// QuizSubmission is a candidate's graded submission for a quiz. Immutable
// once recorded.
type QuizSubmission struct {
	ID              int64             `json:"id"`
	QuizID          int64             `json:"quiz_id"`
	CandidateUserID string            `json:"candidate_user_id"`
	Answers         []SubmittedAnswer `json:"answers"`
	TotalScore      int               `json:"total_score"`
	CreatedAt       time.Time         `json:"created_at"`

	// Joined data for list responses
	CandidateEmail *string `json:"candidate_email,omitempty"`
	QuizTitle      *string `json:"quiz_title,omitempty"`
}

// AnswerInput is a candidate's raw answer before grading.
type AnswerInput struct {
	QuestionID     int64  `json:"question_id" binding:"required"`
	SelectedAnswer string `json:"selected_answer" binding:"required"`
}

// SubmissionRepository defines data access for graded submissions.
// GetLatestForOffer returns the candidate's most recent submission whose
// quiz belongs to the given offer, or ErrNotFound.
type SubmissionRepository interface {
	Create(ctx context.Context, s *QuizSubmission) error
	GetByQuiz(ctx context.Context, quizID int64) ([]QuizSubmission, error)
	GetLatestForOffer(ctx context.Context, candidateID string, offerID int64) (*QuizSubmission, error)
}

// SubmissionUsecase defines the grading engine.
type SubmissionUsecase interface {
	Submit(ctx context.Context, candidateID string, quizID int64, answers []AnswerInput) (*QuizSubmission, error)
	ListByQuiz(ctx context.Context, userID string, quizID int64) ([]QuizSubmission, error)
}
