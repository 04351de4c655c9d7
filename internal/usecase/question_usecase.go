package usecase

import (
	"context"
	"slices"

	"matchgo-backend/internal/domain"
	"matchgo-backend/pkg/apperror"
)

type questionUsecase struct {
	questionRepo domain.QuestionRepository
	quizRepo     domain.QuizRepository
	offerRepo    domain.OfferRepository
}

// NewQuestionUsecase creates a new question usecase
func NewQuestionUsecase(
	questionRepo domain.QuestionRepository,
	quizRepo domain.QuizRepository,
	offerRepo domain.OfferRepository,
) domain.QuestionUsecase {
	return &questionUsecase{
		questionRepo: questionRepo,
		quizRepo:     quizRepo,
		offerRepo:    offerRepo,
	}
}

// Add appends a question to a quiz the caller owns. Order is assigned as
// current question count + 1 and never renumbered later. Quiz stats are
// recomputed afterwards.
func (uc *questionUsecase) Add(ctx context.Context, userID string, quizID int64, q *domain.Question) (*domain.Question, error) {
	if _, err := uc.ownedQuiz(ctx, userID, quizID, "Only the offer owner can add a question"); err != nil {
		return nil, err
	}

	if len(q.Choices) > 0 && !slices.Contains(q.Choices, q.CorrectAnswer) {
		return nil, apperror.BadRequest("Correct answer must be one of the choices")
	}

	count, err := uc.questionRepo.CountByQuiz(ctx, quizID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	q.QuizID = quizID
	q.Order = count + 1
	if q.QuestionType == "" {
		q.QuestionType = domain.QuestionTypeMultipleChoice
	}

	if err := uc.questionRepo.Create(ctx, q); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uc.quizRepo.RecalcStats(ctx, quizID); err != nil {
		return nil, apperror.Internal(err)
	}

	return q, nil
}

// ListByQuiz returns the quiz's questions in order. Correct answers are
// stripped unless the caller is a company or admin.
func (uc *questionUsecase) ListByQuiz(ctx context.Context, role string, quizID int64) ([]domain.Question, error) {
	if _, err := uc.quizRepo.GetByID(ctx, quizID); err != nil {
		return nil, apperror.NotFound("Quiz not found")
	}

	questions, err := uc.questionRepo.GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		for i := range questions {
			questions[i].CorrectAnswer = ""
		}
	}
	return questions, nil
}

// Update applies a partial update to a question the caller owns. If the
// choices change, the effective correct answer must still be one of them.
// Quiz stats are recomputed afterwards.
func (uc *questionUsecase) Update(ctx context.Context, userID string, questionID int64, patch domain.QuestionPatch) (*domain.Question, error) {
	q, err := uc.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, apperror.NotFound("Question not found")
	}
	if _, err := uc.ownedQuiz(ctx, userID, q.QuizID, "Only the offer owner can update this question"); err != nil {
		return nil, err
	}

	if patch.QuestionText != nil {
		q.QuestionText = *patch.QuestionText
	}
	if patch.QuestionType != nil {
		q.QuestionType = *patch.QuestionType
	}
	if patch.Choices != nil {
		q.Choices = patch.Choices
	}
	if patch.CorrectAnswer != nil {
		q.CorrectAnswer = *patch.CorrectAnswer
	}
	if patch.Score != nil {
		q.Score = *patch.Score
	}
	if patch.Order != nil {
		q.Order = *patch.Order
	}

	if len(q.Choices) > 0 && !slices.Contains(q.Choices, q.CorrectAnswer) {
		return nil, apperror.BadRequest("Correct answer must be one of the choices")
	}

	if err := uc.questionRepo.Update(ctx, q); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uc.quizRepo.RecalcStats(ctx, q.QuizID); err != nil {
		return nil, apperror.Internal(err)
	}

	return q, nil
}

// Delete removes a question the caller owns and recomputes quiz stats.
// Orders of the remaining questions keep their gaps.
func (uc *questionUsecase) Delete(ctx context.Context, userID string, questionID int64) error {
	q, err := uc.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return apperror.NotFound("Question not found")
	}
	if _, err := uc.ownedQuiz(ctx, userID, q.QuizID, "Only the offer owner can delete this question"); err != nil {
		return err
	}

	if err := uc.questionRepo.Delete(ctx, questionID); err != nil {
		return apperror.Internal(err)
	}

	if err := uc.quizRepo.RecalcStats(ctx, q.QuizID); err != nil {
		return apperror.Internal(err)
	}

	return nil
}

// ownedQuiz fetches a quiz and verifies quiz→offer→company ownership.
func (uc *questionUsecase) ownedQuiz(ctx context.Context, userID string, quizID int64, denied string) (*domain.Quiz, error) {
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
