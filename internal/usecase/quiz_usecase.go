package usecase

import (
	"context"
	"errors"

	"matchgo-backend/internal/domain"
	"matchgo-backend/pkg/apperror"
	"matchgo-backend/pkg/email"
	"matchgo-backend/pkg/logger"
)

type quizUsecase struct {
	quizRepo     domain.QuizRepository
	questionRepo domain.QuestionRepository
	offerRepo    domain.OfferRepository
	emailService *email.EmailService
}

// NewQuizUsecase creates a new quiz usecase
func NewQuizUsecase(
	quizRepo domain.QuizRepository,
	questionRepo domain.QuestionRepository,
	offerRepo domain.OfferRepository,
	emailService *email.EmailService,
) domain.QuizUsecase {
	return &quizUsecase{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		offerRepo:    offerRepo,
		emailService: emailService,
	}
}

// Create attaches a new quiz to an offer the caller owns. Derived stats
// start at zero; the offer's has_quiz flag is set.
func (uc *quizUsecase) Create(ctx context.Context, userID string, offerID int64, title string, durationSeconds int) (*domain.Quiz, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if offer.CompanyUserID != userID {
		return nil, apperror.Forbidden("Only the offer owner can create a quiz")
	}

	quiz := &domain.Quiz{
		OfferID:         offerID,
		Title:           title,
		DurationSeconds: durationSeconds,
		IsActive:        true,
	}
	if err := uc.quizRepo.Create(ctx, quiz); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uc.offerRepo.SetHasQuiz(ctx, offerID, true); err != nil {
		return nil, apperror.Internal(err)
	}

	return quiz, nil
}

// ListByOffer returns all quizzes for an offer
func (uc *quizUsecase) ListByOffer(ctx context.Context, offerID int64) ([]domain.Quiz, error) {
	if _, err := uc.offerRepo.GetByID(ctx, offerID); err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	quizzes, err := uc.quizRepo.GetByOffer(ctx, offerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return quizzes, nil
}

// GetRandomByOffer picks one of the offer's quizzes uniformly at random
func (uc *quizUsecase) GetRandomByOffer(ctx context.Context, offerID int64) (*domain.Quiz, error) {
	if _, err := uc.offerRepo.GetByID(ctx, offerID); err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	quiz, err := uc.quizRepo.GetRandomByOffer(ctx, offerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("No quiz found for this offer")
		}
		return nil, apperror.Internal(err)
	}
	return quiz, nil
}

// Update applies the provided fields to a quiz the caller owns, then
// recomputes stats. Stats only actually change through question mutations,
// but the recompute is idempotent.
func (uc *quizUsecase) Update(ctx context.Context, userID string, quizID int64, patch domain.QuizPatch) (*domain.Quiz, error) {
	quiz, err := uc.ownedQuiz(ctx, userID, quizID, "Only the offer owner can update this quiz")
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		quiz.Title = *patch.Title
	}
	if patch.DurationSeconds != nil {
		quiz.DurationSeconds = *patch.DurationSeconds
	}
	if patch.IsActive != nil {
		quiz.IsActive = *patch.IsActive
	}

	if err := uc.quizRepo.Update(ctx, quiz); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return nil, apperror.Conflict("Quiz was modified concurrently, please retry")
		}
		return nil, apperror.Internal(err)
	}

	if err := uc.quizRepo.RecalcStats(ctx, quizID); err != nil {
		return nil, apperror.Internal(err)
	}

	return uc.quizRepo.GetByID(ctx, quizID)
}

// Publish flips is_published exactly once. A confirmation email to the
// owner is best-effort and never rolls back the publication.
func (uc *quizUsecase) Publish(ctx context.Context, userID, ownerEmail string, quizID int64) (*domain.Quiz, error) {
	quiz, err := uc.ownedQuiz(ctx, userID, quizID, "Only the offer owner can publish this quiz")
	if err != nil {
		return nil, err
	}
	if quiz.IsPublished {
		return nil, apperror.BadRequest("Quiz is already published")
	}

	if err := uc.quizRepo.MarkPublished(ctx, quizID, quiz.Version); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return nil, apperror.Conflict("Quiz was modified concurrently, please retry")
		}
		return nil, apperror.Internal(err)
	}
	quiz.IsPublished = true
	quiz.Version++

	if uc.emailService != nil && uc.emailService.IsConfigured() && ownerEmail != "" {
		if err := uc.emailService.SendQuizPublished(email.QuizPublishedData{
			OwnerEmail:      ownerEmail,
			Title:           quiz.Title,
			QuestionCount:   quiz.QuestionCount,
			DurationSeconds: quiz.DurationSeconds,
			TotalScore:      quiz.TotalScore,
			CreatedAt:       quiz.CreatedAt,
		}); err != nil {
			logger.Log.Warn("Failed to send quiz published email", "quiz_id", quizID, "error", err)
		}
	}

	return quiz, nil
}

// Delete removes a quiz and its questions, then clears the offer's
// has_quiz flag if no quizzes remain. The question cascade is explicit so
// no orphans are left behind.
func (uc *quizUsecase) Delete(ctx context.Context, userID string, quizID int64) error {
	quiz, err := uc.ownedQuiz(ctx, userID, quizID, "Only the offer owner can delete this quiz")
	if err != nil {
		return err
	}

	if err := uc.questionRepo.DeleteByQuiz(ctx, quizID); err != nil {
		return apperror.Internal(err)
	}
	if err := uc.quizRepo.Delete(ctx, quizID); err != nil {
		return apperror.Internal(err)
	}

	remaining, err := uc.quizRepo.CountByOffer(ctx, quiz.OfferID)
	if err != nil {
		return apperror.Internal(err)
	}
	if remaining == 0 {
		if err := uc.offerRepo.SetHasQuiz(ctx, quiz.OfferID, false); err != nil {
			return apperror.Internal(err)
		}
	}

	return nil
}

// ownedQuiz fetches a quiz and verifies quiz→offer→company ownership.
func (uc *quizUsecase) ownedQuiz(ctx context.Context, userID string, quizID int64, denied string) (*domain.Quiz, error) {
	quiz, err := uc.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, apperror.NotFound("Quiz not found")
	}
	offer, err := uc.offerRepo.GetByID(ctx, quiz.OfferID)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if offer.CompanyUserID != userID {
		return nil, apperror.Forbidden(denied)
	}
	return quiz, nil
}
