package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusPending            = "pending"
	ApplicationStatusInterviewScheduled = "interview_scheduled"
	ApplicationStatusAccepted           = "accepted"
	ApplicationStatusRejected           = "rejected"
)

// applicationTransitions is the strict status table:
// pending → interview_scheduled | rejected
// interview_scheduled → accepted | rejected
// accepted / rejected are terminal.
var applicationTransitions = map[string][]string{
	ApplicationStatusPending:            {ApplicationStatusInterviewScheduled, ApplicationStatusRejected},
	ApplicationStatusInterviewScheduled: {ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusAccepted:           {},
	ApplicationStatusRejected:           {},
}

// CanTransition reports whether from→to is a legal status change.
func CanTransition(from, to string) bool {
	for _, next := range applicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedNextStatuses returns the legal next statuses from a given status.
func AllowedNextStatuses(from string) []string {
	return applicationTransitions[from]
}

// IsTerminalStatus reports whether a status refuses all further changes.
func IsTerminalStatus(status string) bool {
	return status == ApplicationStatusAccepted || status == ApplicationStatusRejected
}

// QuizSummary is the read-time denormalization of a candidate's latest quiz
// submission for the application's offer. Never persisted.
type QuizSummary struct {
	HasSubmitted       bool       `json:"has_submitted"`
	SubmissionID       *int64     `json:"submission_id,omitempty"`
	Score              *int       `json:"score,omitempty"`
	TotalPossibleScore *int       `json:"total_possible_score,omitempty"`
	Percentage         *int       `json:"percentage,omitempty"`
	QuizTitle          *string    `json:"quiz_title,omitempty"`
	SubmittedAt        *time.Time `json:"submitted_at,omitempty"`
}

// Application is a candidate's request to be considered for an offer.
// Unique per (candidate, offer). CV and MotivationLetter are opaque object
// keys resolved by the file store.
type Application struct {
	ID               int64      `json:"id"`
	OfferID          int64      `json:"offer_id"`
	CandidateUserID  string     `json:"candidate_user_id"`
	Status           string     `json:"status"`
	CV               string     `json:"cv"`
	MotivationLetter string     `json:"motivation_letter"`
	LinkedIn         *string    `json:"linkedin,omitempty"`
	GitHub           *string    `json:"github,omitempty"`
	PhoneNumber      *string    `json:"phone_number,omitempty"`
	Location         *string    `json:"location,omitempty"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Email            string     `json:"email"`
	Version          int        `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Joined data for list responses
	JobTitle       *string      `json:"job_title,omitempty"`
	QuizSubmission *QuizSummary `json:"quiz_submission,omitempty"`
}

// ApplyInput carries the optional candidate metadata on apply.
type ApplyInput struct {
	LinkedIn    *string    `validate:"omitempty,url"`
	GitHub      *string    `validate:"omitempty,url"`
	PhoneNumber *string    `validate:"omitempty,e164"`
	Location    *string    `validate:"omitempty,max=255"`
	DateOfBirth *time.Time `validate:"-"`
}

// ApplicationRepository defines data access for applications. Create maps a
// unique-constraint hit to ErrDuplicate; UpdateStatus is compare-and-swap on
// version and returns ErrVersionConflict on a miss.
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByOffer(ctx context.Context, offerID int64) ([]Application, error)
	GetByCandidate(ctx context.Context, candidateID string) ([]Application, error)
	CheckExists(ctx context.Context, offerID int64, candidateID string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string, version int) error
	DeleteByOffer(ctx context.Context, offerID int64) (int64, error)
}

// ApplicationUsecase defines the application state machine.
type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, candidateID, email string, offerID int64, cvKey, letterKey string, in ApplyInput) (*Application, error)
	GetMine(ctx context.Context, candidateID string) ([]Application, error)

	// Company operations
	ListByOffer(ctx context.Context, userID string, offerID int64) ([]Application, error)
	UpdateStatus(ctx context.Context, userID string, applicationID int64, status string) (*Application, error)
	DeleteByOffer(ctx context.Context, userID string, offerID int64) (int64, error)
}
