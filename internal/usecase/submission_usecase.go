package usecase

import (
	"context"
	"errors"
	"time"

	"matchgo-backend/internal/domain"
	"matchgo-backend/pkg/apperror"
)

// submissionCooldown is the rolling window during which a candidate may not
// submit another quiz for the same offer.
const submissionCooldown = 48 * time.Hour

type submissionUsecase struct {
	submissionRepo domain.SubmissionRepository
	quizRepo       domain.QuizRepository
	questionRepo   domain.QuestionRepository
	offerRepo      domain.OfferRepository
	now            func() time.Time
}

// NewSubmissionUsecase creates the quiz grading engine
func NewSubmissionUsecase(
	submissionRepo domain.SubmissionRepository,
	quizRepo domain.QuizRepository,
	questionRepo domain.QuestionRepository,
	offerRepo domain.OfferRepository,
) domain.SubmissionUsecase {
	return &submissionUsecase{
		submissionRepo: submissionRepo,
		quizRepo:       quizRepo,
		questionRepo:   questionRepo,
		offerRepo:      offerRepo,
		now:            time.Now,
	}
}

// Submit grades a candidate's answers against the quiz's question bank and
// persists the result. Grading is immutable once recorded; later question
// edits never rescore past submissions.
func (uc *submissionUsecase) Submit(ctx context.Context, candidateID string, quizID int64, answers []domain.AnswerInput) (*domain.QuizSubmission, error) {
	quiz, err := uc.quizRepo.GetByID(ctx, quizID)
	if err != nil || !quiz.IsPublished {
		return nil, apperror.NotFound("Quiz not found or not published")
	}

	// One submission per candidate per offer inside the cooldown window.
	last, err := uc.submissionRepo.GetLatestForOffer(ctx, candidateID, quiz.OfferID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if last != nil && uc.now().Sub(last.CreatedAt) < submissionCooldown {
		return nil, apperror.BadRequest("You have already submitted a quiz for this offer. Please wait 48 hours before trying again")
	}

	questions, err := uc.questionRepo.GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	byID := make(map[int64]*domain.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	submission := &domain.QuizSubmission{
		QuizID:          quizID,
		CandidateUserID: candidateID,
	}
	for _, ans := range answers {
		question, ok := byID[ans.QuestionID]
		if !ok {
			// Question deleted since the candidate loaded the quiz; skip.
			continue
		}

		isCorrect := question.CorrectAnswer == ans.SelectedAnswer
		score := 0
		if isCorrect {
			score = question.Score
		}
		submission.TotalScore += score

		submission.Answers = append(submission.Answers, domain.SubmittedAnswer{
			QuestionID:     question.ID,
			SelectedAnswer: ans.SelectedAnswer,
			IsCorrect:      isCorrect,
			Score:          score,
		})
	}

	if err := uc.submissionRepo.Create(ctx, submission); err != nil {
		return nil, apperror.Internal(err)
	}

	return submission, nil
}

// ListByQuiz returns all graded submissions for a quiz the caller owns
func (uc *submissionUsecase) ListByQuiz(ctx context.Context, userID string, quizID int64) ([]domain.QuizSubmission, error) {
	quiz, err := uc.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, apperror.NotFound("Quiz not found")
	}
	offer, err := uc.offerRepo.GetByID(ctx, quiz.OfferID)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if offer.CompanyUserID != userID {
		return nil, apperror.Forbidden("Only the offer owner can view submissions")
	}

	submissions, err := uc.submissionRepo.GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return submissions, nil
}
