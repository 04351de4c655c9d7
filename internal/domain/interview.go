package domain

import (
	"context"
	"time"
)

// Interview is a scheduled meeting tied to an application. Creating one is
// the path that drives the application to interview_scheduled.
type Interview struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	ScheduledBy   string    `json:"scheduled_by"`
	Date          time.Time `json:"date"`
	MeetLink      string    `json:"meet_link"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`

	// Joined data for list responses
	CandidateEmail *string `json:"candidate_email,omitempty"`
	JobTitle       *string `json:"job_title,omitempty"`
}

// InterviewRepository defines data access for interviews.
type InterviewRepository interface {
	Create(ctx context.Context, iv *Interview) error
	GetByOffer(ctx context.Context, offerID int64) ([]Interview, error)
	GetByCandidate(ctx context.Context, candidateID string) ([]Interview, error)
	GetByDateRange(ctx context.Context, companyID string, from, to time.Time, offerID *int64) ([]Interview, error)
}

// InterviewUsecase defines the interview scheduler.
type InterviewUsecase interface {
	Schedule(ctx context.Context, userID string, applicationID int64, date time.Time, note string) (*Interview, *Application, error)
	ListByOffer(ctx context.Context, userID string, offerID int64) ([]Interview, error)
	ListMine(ctx context.Context, candidateID string) ([]Interview, error)
	ListByDateRange(ctx context.Context, userID string, from, to time.Time, offerID *int64) ([]Interview, error)
}
