package domain

import (
	"context"
	"time"
)

// Offer is a job posting owned by a company. The offer lifecycle itself is
// managed elsewhere; this core only reads ownership and deadline data and
// maintains the has_quiz flag.
type Offer struct {
	ID                  int64      `json:"id"`
	CompanyUserID       string     `json:"company_user_id"`
	JobTitle            string     `json:"job_title"`
	Description         *string    `json:"description,omitempty"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	HasQuiz             bool       `json:"has_quiz"`
	CreatedAt           time.Time  `json:"created_at"`
}

// IsClosed reports whether the application deadline has passed.
// Offers without a deadline never close.
func (o *Offer) IsClosed(now time.Time) bool {
	return o.ApplicationDeadline != nil && o.ApplicationDeadline.Before(now)
}

// OfferRepository defines the read surface of the offer registry plus the
// derived has_quiz flag maintained on quiz create/delete.
type OfferRepository interface {
	GetByID(ctx context.Context, id int64) (*Offer, error)
	SetHasQuiz(ctx context.Context, id int64, hasQuiz bool) error
}
