package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"matchgo-backend/internal/domain"
	"matchgo-backend/pkg/apperror"
	"matchgo-backend/pkg/email"
	"matchgo-backend/pkg/logger"
	"matchgo-backend/pkg/notify"
)

const meetLinkPrefix = "https://meet.jit.si/matchgo-"

type interviewUsecase struct {
	interviewRepo   domain.InterviewRepository
	applicationRepo domain.ApplicationRepository
	offerRepo       domain.OfferRepository
	emailService    *email.EmailService
	publisher       notify.Publisher
}

// NewInterviewUsecase creates the interview scheduler
func NewInterviewUsecase(
	interviewRepo domain.InterviewRepository,
	applicationRepo domain.ApplicationRepository,
	offerRepo domain.OfferRepository,
	emailService *email.EmailService,
	publisher notify.Publisher,
) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo:   interviewRepo,
		applicationRepo: applicationRepo,
		offerRepo:       offerRepo,
		emailService:    emailService,
		publisher:       publisher,
	}
}

// Schedule creates an interview for an application the caller owns,
// generates a fresh meeting link and moves the application to
// interview_scheduled. The status change is part of scheduling, not a
// separate transition request, so it only requires the application to not
// already be there. Candidate email and the notification event are
// best-effort; a delivery failure never rolls back the interview.
func (uc *interviewUsecase) Schedule(ctx context.Context, userID string, applicationID int64, date time.Time, note string) (*domain.Interview, *domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, apperror.NotFound("Application not found")
	}
	offer, err := uc.offerRepo.GetByID(ctx, app.OfferID)
	if err != nil {
		return nil, nil, apperror.NotFound("Offer not found")
	}
	if offer.CompanyUserID != userID {
		return nil, nil, apperror.Forbidden("Only the offer owner can schedule an interview")
	}

	if domain.IsTerminalStatus(app.Status) {
		return nil, nil, apperror.BadRequest(fmt.Sprintf("Application has reached a final decision (%s) and can no longer change", app.Status))
	}

	meetLink := meetLinkPrefix + uuid.NewString()
	iv := &domain.Interview{
		ApplicationID: applicationID,
		ScheduledBy:   userID,
		Date:          date,
		MeetLink:      meetLink,
		Message: fmt.Sprintf("You have been invited to an interview for %q on %s. Join at %s",
			offer.JobTitle, date.Format("January 2, 2006 at 15:04"), meetLink),
	}
	if err := uc.interviewRepo.Create(ctx, iv); err != nil {
		return nil, nil, apperror.Internal(err)
	}

	if app.Status != domain.ApplicationStatusInterviewScheduled {
		if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, domain.ApplicationStatusInterviewScheduled, app.Version); err != nil {
			if errors.Is(err, domain.ErrVersionConflict) {
				return nil, nil, apperror.Conflict("Application was modified concurrently, please retry")
			}
			return nil, nil, apperror.Internal(err)
		}
		app.Status = domain.ApplicationStatusInterviewScheduled
		app.Version++
	}

	if uc.emailService != nil && uc.emailService.IsConfigured() && app.Email != "" {
		if err := uc.emailService.SendInterviewScheduled(email.InterviewEmailData{
			CandidateEmail: app.Email,
			JobTitle:       offer.JobTitle,
			Date:           date,
			MeetLink:       meetLink,
			Message:        note,
		}); err != nil {
			logger.Log.Warn("Failed to send interview email", "application_id", applicationID, "error", err)
		}
	}

	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, notify.Event{
			UserID:  app.CandidateUserID,
			Type:    notify.TypeInterviewScheduled,
			Message: iv.Message,
		}); err != nil {
			logger.Log.Warn("Failed to publish interview notification", "application_id", applicationID, "error", err)
		}
	}

	return iv, app, nil
}

// ListByOffer returns all interviews for an offer the caller owns
func (uc *interviewUsecase) ListByOffer(ctx context.Context, userID string, offerID int64) ([]domain.Interview, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if offer.CompanyUserID != userID {
		return nil, apperror.Forbidden("Only the offer owner can view interviews")
	}

	interviews, err := uc.interviewRepo.GetByOffer(ctx, offerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return interviews, nil
}

// ListMine returns the candidate's interviews across all applications
func (uc *interviewUsecase) ListMine(ctx context.Context, candidateID string) ([]domain.Interview, error) {
	interviews, err := uc.interviewRepo.GetByCandidate(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return interviews, nil
}

// ListByDateRange returns the caller's interviews inside [from, to],
// optionally narrowed to one of their offers. Used by the agenda view.
func (uc *interviewUsecase) ListByDateRange(ctx context.Context, userID string, from, to time.Time, offerID *int64) ([]domain.Interview, error) {
	if to.Before(from) {
		return nil, apperror.BadRequest("End date must not be before start date")
	}
	if offerID != nil {
		offer, err := uc.offerRepo.GetByID(ctx, *offerID)
		if err != nil {
			return nil, apperror.NotFound("Offer not found")
		}
		if offer.CompanyUserID != userID {
			return nil, apperror.Forbidden("Only the offer owner can view interviews")
		}
	}

	interviews, err := uc.interviewRepo.GetByDateRange(ctx, userID, from, to, offerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return interviews, nil
}
