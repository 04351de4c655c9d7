package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"matchgo-backend/internal/domain"
	"matchgo-backend/pkg/apperror"
	"matchgo-backend/pkg/storage"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	offerRepo       domain.OfferRepository
	quizRepo        domain.QuizRepository
	submissionRepo  domain.SubmissionRepository
	fileStore       storage.FileStore
	validate        *validator.Validate
	now             func() time.Time
}

// NewApplicationUsecase creates the application state machine. fileStore may
// be nil when document storage is not configured; the handler rejects uploads
// before reaching the usecase in that case.
func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	offerRepo domain.OfferRepository,
	quizRepo domain.QuizRepository,
	submissionRepo domain.SubmissionRepository,
	fileStore storage.FileStore,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		offerRepo:       offerRepo,
		quizRepo:        quizRepo,
		submissionRepo:  submissionRepo,
		fileStore:       fileStore,
		validate:        validate,
		now:             time.Now,
	}
}

// Apply creates a pending application for the candidate. The offer must
// still be open and the candidate must not have applied before; the unique
// constraint backs the pre-check against concurrent submits.
func (uc *applicationUsecase) Apply(ctx context.Context, candidateID, email string, offerID int64, cvKey, letterKey string, in domain.ApplyInput) (*domain.Application, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if offer.IsClosed(uc.now()) {
		return nil, apperror.BadRequest("The offer is already closed.")
	}

	exists, err := uc.applicationRepo.CheckExists(ctx, offerID, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("You have already applied to this offer.")
	}

	if cvKey == "" || letterKey == "" {
		return nil, apperror.BadRequest("CV and motivation letter are required")
	}
	if uc.fileStore != nil {
		for _, key := range []string{cvKey, letterKey} {
			ok, err := uc.fileStore.Exists(ctx, key)
			if err != nil {
				return nil, apperror.Internal(err)
			}
			if !ok {
				return nil, apperror.BadRequest("Uploaded document could not be found in storage, please try again")
			}
		}
	}

	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	app := &domain.Application{
		OfferID:          offerID,
		CandidateUserID:  candidateID,
		Status:           domain.ApplicationStatusPending,
		CV:               cvKey,
		MotivationLetter: letterKey,
		LinkedIn:         in.LinkedIn,
		GitHub:           in.GitHub,
		PhoneNumber:      in.PhoneNumber,
		Location:         in.Location,
		DateOfBirth:      in.DateOfBirth,
		Email:            email,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.BadRequest("You have already applied to this offer.")
		}
		return nil, apperror.Internal(err)
	}

	return app, nil
}

// GetMine returns all of the candidate's applications, newest first
func (uc *applicationUsecase) GetMine(ctx context.Context, candidateID string) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.GetByCandidate(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ListByOffer returns all applications for an offer the caller owns, each
// enriched with the candidate's latest quiz submission for that offer. The
// summary is computed at read time from the submission record, never stored.
func (uc *applicationUsecase) ListByOffer(ctx context.Context, userID string, offerID int64) ([]domain.Application, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if offer.CompanyUserID != userID {
		return nil, apperror.Forbidden("Only the offer owner can view applications")
	}

	apps, err := uc.applicationRepo.GetByOffer(ctx, offerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	for i := range apps {
		summary, err := uc.quizSummary(ctx, apps[i].CandidateUserID, offerID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		apps[i].QuizSubmission = summary
	}

	return apps, nil
}

// UpdateStatus moves an application through the status table. Terminal
// statuses refuse any change; illegal moves name the allowed ones. The
// write is compare-and-swap on the version read here.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, userID string, applicationID int64, status string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	offer, err := uc.offerRepo.GetByID(ctx, app.OfferID)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if offer.CompanyUserID != userID {
		return nil, apperror.Forbidden("Only the offer owner can update this application")
	}

	if app.Status == status {
		return nil, apperror.BadRequest(fmt.Sprintf("Application is already %s", status))
	}
	if domain.IsTerminalStatus(app.Status) {
		return nil, apperror.BadRequest(fmt.Sprintf("Application has reached a final decision (%s) and can no longer change", app.Status))
	}
	if !domain.CanTransition(app.Status, status) {
		allowed := strings.Join(domain.AllowedNextStatuses(app.Status), ", ")
		return nil, apperror.BadRequest(fmt.Sprintf("Cannot move application from %s to %s; allowed: %s", app.Status, status, allowed))
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status, app.Version); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return nil, apperror.Conflict("Application was modified concurrently, please retry")
		}
		return nil, apperror.Internal(err)
	}
	app.Status = status
	app.Version++

	return app, nil
}

// DeleteByOffer removes every application for an offer the caller owns and
// returns the number removed
func (uc *applicationUsecase) DeleteByOffer(ctx context.Context, userID string, offerID int64) (int64, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return 0, apperror.NotFound("Offer not found")
	}
	if offer.CompanyUserID != userID {
		return 0, apperror.Forbidden("Only the offer owner can delete applications")
	}

	count, err := uc.applicationRepo.DeleteByOffer(ctx, offerID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

// quizSummary builds the read-time quiz summary for one candidate on one
// offer. Percentage is against the quiz's current total, rounded to the
// nearest whole number.
func (uc *applicationUsecase) quizSummary(ctx context.Context, candidateID string, offerID int64) (*domain.QuizSummary, error) {
	sub, err := uc.submissionRepo.GetLatestForOffer(ctx, candidateID, offerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.QuizSummary{HasSubmitted: false}, nil
		}
		return nil, err
	}

	summary := &domain.QuizSummary{
		HasSubmitted: true,
		SubmissionID: &sub.ID,
		Score:        &sub.TotalScore,
		QuizTitle:    sub.QuizTitle,
		SubmittedAt:  &sub.CreatedAt,
	}

	quiz, err := uc.quizRepo.GetByID(ctx, sub.QuizID)
	if err == nil && quiz.TotalScore > 0 {
		total := quiz.TotalScore
		pct := int(math.Round(float64(sub.TotalScore) / float64(total) * 100))
		summary.TotalPossibleScore = &total
		summary.Percentage = &pct
	}

	return summary, nil
}
