package domain

import (
	"context"
	"time"
)

// Quiz is an assessment attached to an offer. TotalScore and QuestionCount
// are derived from the question bank and recomputed after every question
// mutation; they are never written directly by callers.
type Quiz struct {
	ID              int64     `json:"id"`
	OfferID         int64     `json:"offer_id"`
	Title           string    `json:"title"`
	DurationSeconds int       `json:"duration_seconds"`
	TotalScore      int       `json:"total_score"`
	QuestionCount   int       `json:"question_count"`
	IsActive        bool      `json:"is_active"`
	IsPublished     bool      `json:"is_published"`
	Version         int       `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// QuizPatch carries the owner-mutable fields. Nil means "leave unchanged".
type QuizPatch struct {
	Title           *string `json:"title,omitempty"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// QuizRepository defines data access for quizzes. Update and MarkPublished
// are compare-and-swap on Version and return ErrVersionConflict on a miss.
type QuizRepository interface {
	Create(ctx context.Context, quiz *Quiz) error
	GetByID(ctx context.Context, id int64) (*Quiz, error)
	GetByOffer(ctx context.Context, offerID int64) ([]Quiz, error)
	GetRandomByOffer(ctx context.Context, offerID int64) (*Quiz, error)
	Update(ctx context.Context, quiz *Quiz) error
	MarkPublished(ctx context.Context, id int64, version int) error
	Delete(ctx context.Context, id int64) error
	CountByOffer(ctx context.Context, offerID int64) (int, error)
	RecalcStats(ctx context.Context, quizID int64) error
}

// QuizUsecase defines business logic for the quiz store.
type QuizUsecase interface {
	Create(ctx context.Context, userID string, offerID int64, title string, durationSeconds int) (*Quiz, error)
	ListByOffer(ctx context.Context, offerID int64) ([]Quiz, error)
	GetRandomByOffer(ctx context.Context, offerID int64) (*Quiz, error)
	Update(ctx context.Context, userID string, quizID int64, patch QuizPatch) (*Quiz, error)
	Publish(ctx context.Context, userID, ownerEmail string, quizID int64) (*Quiz, error)
	Delete(ctx context.Context, userID string, quizID int64) error
}
