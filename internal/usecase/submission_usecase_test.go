package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"matchgo-backend/internal/domain"
	"matchgo-backend/internal/usecase"
)

func publishedQuiz() *domain.Quiz {
	return &domain.Quiz{ID: 1, OfferID: 10, IsPublished: true, TotalScore: 15, QuestionCount: 3}
}

func gradingQuestions() []domain.Question {
	return []domain.Question{
		{ID: 101, QuizID: 1, CorrectAnswer: "a", Score: 5},
		{ID: 102, QuizID: 1, CorrectAnswer: "b", Score: 5},
		{ID: 103, QuizID: 1, CorrectAnswer: "c", Score: 5},
	}
}

func TestSubmissionGrading(t *testing.T) {
	ctx := context.Background()

	t.Run("Should grade answers and sum the score", func(t *testing.T) {
		quizRepo := new(MockQuizRepo)
		questionRepo := new(MockQuestionRepo)
		submissionRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, quizRepo, questionRepo, new(MockOfferRepo))

		quizRepo.On("GetByID", ctx, int64(1)).Return(publishedQuiz(), nil)
		submissionRepo.On("GetLatestForOffer", ctx, "cand1", int64(10)).Return(nil, domain.ErrNotFound)
		questionRepo.On("GetByQuiz", ctx, int64(1)).Return(gradingQuestions(), nil)
		submissionRepo.On("Create", ctx, mock.AnythingOfType("*domain.QuizSubmission")).Return(nil)

		sub, err := uc.Submit(ctx, "cand1", 1, []domain.AnswerInput{
			{QuestionID: 101, SelectedAnswer: "a"},
			{QuestionID: 102, SelectedAnswer: "wrong"},
			{QuestionID: 103, SelectedAnswer: "c"},
		})
		assert.NoError(t, err)
		assert.Equal(t, 10, sub.TotalScore)
		assert.Len(t, sub.Answers, 3)
		assert.True(t, sub.Answers[0].IsCorrect)
		assert.False(t, sub.Answers[1].IsCorrect)
		assert.Zero(t, sub.Answers[1].Score)
	})

	t.Run("Should skip answers to questions that no longer exist", func(t *testing.T) {
		quizRepo := new(MockQuizRepo)
		questionRepo := new(MockQuestionRepo)
		submissionRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, quizRepo, questionRepo, new(MockOfferRepo))

		quizRepo.On("GetByID", ctx, int64(1)).Return(publishedQuiz(), nil)
		submissionRepo.On("GetLatestForOffer", ctx, "cand1", int64(10)).Return(nil, domain.ErrNotFound)
		questionRepo.On("GetByQuiz", ctx, int64(1)).Return(gradingQuestions(), nil)
		submissionRepo.On("Create", ctx, mock.AnythingOfType("*domain.QuizSubmission")).Return(nil)

		sub, err := uc.Submit(ctx, "cand1", 1, []domain.AnswerInput{
			{QuestionID: 101, SelectedAnswer: "a"},
			{QuestionID: 999, SelectedAnswer: "a"},
		})
		assert.NoError(t, err)
		assert.Len(t, sub.Answers, 1)
		assert.Equal(t, 5, sub.TotalScore)
	})

	t.Run("Should refuse an unpublished quiz", func(t *testing.T) {
		quizRepo := new(MockQuizRepo)
		submissionRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, quizRepo, new(MockQuestionRepo), new(MockOfferRepo))

		quizRepo.On("GetByID", ctx, int64(1)).Return(&domain.Quiz{ID: 1, OfferID: 10, IsPublished: false}, nil)

		_, err := uc.Submit(ctx, "cand1", 1, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not published")
		submissionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSubmissionCooldown(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a second submission inside 48 hours", func(t *testing.T) {
		quizRepo := new(MockQuizRepo)
		submissionRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, quizRepo, new(MockQuestionRepo), new(MockOfferRepo))

		quizRepo.On("GetByID", ctx, int64(1)).Return(publishedQuiz(), nil)
		submissionRepo.On("GetLatestForOffer", ctx, "cand1", int64(10)).Return(&domain.QuizSubmission{
			ID: 55, QuizID: 2, CandidateUserID: "cand1",
			CreatedAt: time.Now().Add(-10 * time.Minute),
		}, nil)

		_, err := uc.Submit(ctx, "cand1", 1, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "48 hours")
		submissionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should accept a submission after the window has passed", func(t *testing.T) {
		quizRepo := new(MockQuizRepo)
		questionRepo := new(MockQuestionRepo)
		submissionRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, quizRepo, questionRepo, new(MockOfferRepo))

		quizRepo.On("GetByID", ctx, int64(1)).Return(publishedQuiz(), nil)
		submissionRepo.On("GetLatestForOffer", ctx, "cand1", int64(10)).Return(&domain.QuizSubmission{
			ID: 55, QuizID: 2, CandidateUserID: "cand1",
			CreatedAt: time.Now().Add(-49 * time.Hour),
		}, nil)
		questionRepo.On("GetByQuiz", ctx, int64(1)).Return(gradingQuestions(), nil)
		submissionRepo.On("Create", ctx, mock.AnythingOfType("*domain.QuizSubmission")).Return(nil)

		_, err := uc.Submit(ctx, "cand1", 1, []domain.AnswerInput{{QuestionID: 101, SelectedAnswer: "a"}})
		assert.NoError(t, err)
	})

	t.Run("Should allow retaking the same quiz once the window has passed", func(t *testing.T) {
		quizRepo := new(MockQuizRepo)
		questionRepo := new(MockQuestionRepo)
		submissionRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, quizRepo, questionRepo, new(MockOfferRepo))

		quizRepo.On("GetByID", ctx, int64(1)).Return(publishedQuiz(), nil)
		submissionRepo.On("GetLatestForOffer", ctx, "cand1", int64(10)).Return(&domain.QuizSubmission{
			ID: 55, QuizID: 1, CandidateUserID: "cand1",
			CreatedAt: time.Now().Add(-49 * time.Hour),
		}, nil)
		questionRepo.On("GetByQuiz", ctx, int64(1)).Return(gradingQuestions(), nil)
		submissionRepo.On("Create", ctx, mock.AnythingOfType("*domain.QuizSubmission")).Return(nil)

		sub, err := uc.Submit(ctx, "cand1", 1, []domain.AnswerInput{{QuestionID: 101, SelectedAnswer: "a"}})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), sub.QuizID)
		submissionRepo.AssertCalled(t, "Create", ctx, mock.AnythingOfType("*domain.QuizSubmission"))
	})
}

func TestSubmissionListByQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse a caller who does not own the offer", func(t *testing.T) {
		quizRepo := new(MockQuizRepo)
		offerRepo := new(MockOfferRepo)
		submissionRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, quizRepo, new(MockQuestionRepo), offerRepo)

		quizRepo.On("GetByID", ctx, int64(1)).Return(publishedQuiz(), nil)
		offerRepo.On("GetByID", ctx, int64(10)).Return(&domain.Offer{ID: 10, CompanyUserID: "company1"}, nil)

		_, err := uc.ListByQuiz(ctx, "intruder", 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "owner")
		submissionRepo.AssertNotCalled(t, "GetByQuiz", mock.Anything, mock.Anything)
	})
}
