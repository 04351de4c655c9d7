package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"matchgo-backend/internal/domain"
	"matchgo-backend/internal/usecase"
	"matchgo-backend/pkg/apperror"
)

func TestApplicationApply(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create a pending application", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockQuizRepo), new(MockSubmissionRepo), nil, validator.New())

		offerRepo.On("GetByID", ctx, int64(10)).Return(&domain.Offer{ID: 10, CompanyUserID: "company1"}, nil)
		appRepo.On("CheckExists", ctx, int64(10), "cand1").Return(false, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		app, err := uc.Apply(ctx, "cand1", "cand1@mail.test", 10, "cv-key", "letter-key", domain.ApplyInput{})
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, "cand1@mail.test", app.Email)
	})

	t.Run("Should refuse a closed offer", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockQuizRepo), new(MockSubmissionRepo), nil, validator.New())

		past := time.Now().Add(-time.Hour)
		offerRepo.On("GetByID", ctx, int64(10)).Return(&domain.Offer{ID: 10, ApplicationDeadline: &past}, nil)

		_, err := uc.Apply(ctx, "cand1", "cand1@mail.test", 10, "cv-key", "letter-key", domain.ApplyInput{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already closed")
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should refuse a second application to the same offer", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockQuizRepo), new(MockSubmissionRepo), nil, validator.New())

		offerRepo.On("GetByID", ctx, int64(10)).Return(&domain.Offer{ID: 10}, nil)
		appRepo.On("CheckExists", ctx, int64(10), "cand1").Return(true, nil)

		_, err := uc.Apply(ctx, "cand1", "cand1@mail.test", 10, "cv-key", "letter-key", domain.ApplyInput{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("Should map a storage duplicate from a concurrent apply", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockQuizRepo), new(MockSubmissionRepo), nil, validator.New())

		offerRepo.On("GetByID", ctx, int64(10)).Return(&domain.Offer{ID: 10}, nil)
		appRepo.On("CheckExists", ctx, int64(10), "cand1").Return(false, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(domain.ErrDuplicate)

		_, err := uc.Apply(ctx, "cand1", "cand1@mail.test", 10, "cv-key", "letter-key", domain.ApplyInput{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("Should reject malformed profile links", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockQuizRepo), new(MockSubmissionRepo), nil, validator.New())

		offerRepo.On("GetByID", ctx, int64(10)).Return(&domain.Offer{ID: 10}, nil)
		appRepo.On("CheckExists", ctx, int64(10), "cand1").Return(false, nil)

		linkedin := "not-a-url"
		_, err := uc.Apply(ctx, "cand1", "cand1@mail.test", 10, "cv-key", "letter-key", domain.ApplyInput{LinkedIn: &linkedin})
		assert.Error(t, err)
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should verify both uploaded documents in storage", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		appRepo := new(MockApplicationRepo)
		fileStore := new(MockFileStore)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockQuizRepo), new(MockSubmissionRepo), fileStore, validator.New())

		offerRepo.On("GetByID", ctx, int64(10)).Return(&domain.Offer{ID: 10}, nil)
		appRepo.On("CheckExists", ctx, int64(10), "cand1").Return(false, nil)
		fileStore.On("Exists", ctx, "cv-key").Return(true, nil)
		fileStore.On("Exists", ctx, "letter-key").Return(true, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		_, err := uc.Apply(ctx, "cand1", "cand1@mail.test", 10, "cv-key", "letter-key", domain.ApplyInput{})
		assert.NoError(t, err)
		fileStore.AssertCalled(t, "Exists", ctx, "cv-key")
		fileStore.AssertCalled(t, "Exists", ctx, "letter-key")
	})

	t.Run("Should refuse a document missing from storage", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		appRepo := new(MockApplicationRepo)
		fileStore := new(MockFileStore)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockQuizRepo), new(MockSubmissionRepo), fileStore, validator.New())

		offerRepo.On("GetByID", ctx, int64(10)).Return(&domain.Offer{ID: 10}, nil)
		appRepo.On("CheckExists", ctx, int64(10), "cand1").Return(false, nil)
		fileStore.On("Exists", ctx, "cv-key").Return(false, nil)

		_, err := uc.Apply(ctx, "cand1", "cand1@mail.test", 10, "cv-key", "letter-key", domain.ApplyInput{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "storage")
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should require both documents", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockQuizRepo), new(MockSubmissionRepo), nil, validator.New())

		offerRepo.On("GetByID", ctx, int64(10)).Return(&domain.Offer{ID: 10}, nil)
		appRepo.On("CheckExists", ctx, int64(10), "cand1").Return(false, nil)

		_, err := uc.Apply(ctx, "cand1", "cand1@mail.test", 10, "cv-key", "", domain.ApplyInput{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})
}

func TestApplicationStatusMachine(t *testing.T) {
	ctx := context.Background()
	offer := &domain.Offer{ID: 10, CompanyUserID: "company1"}

	newUC := func(app *domain.Application) (domain.ApplicationUsecase, *MockApplicationRepo) {
		offerRepo := new(MockOfferRepo)
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", ctx, app.ID).Return(app, nil)
		offerRepo.On("GetByID", ctx, int64(10)).Return(offer, nil)
		return usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockQuizRepo), new(MockSubmissionRepo), nil, validator.New()), appRepo
	}

	t.Run("Should allow pending to rejected", func(t *testing.T) {
		uc, appRepo := newUC(&domain.Application{ID: 1, OfferID: 10, Status: domain.ApplicationStatusPending, Version: 2})
		appRepo.On("UpdateStatus", ctx, int64(1), domain.ApplicationStatusRejected, 2).Return(nil)

		app, err := uc.UpdateStatus(ctx, "company1", 1, domain.ApplicationStatusRejected)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusRejected, app.Status)
		assert.Equal(t, 3, app.Version)
	})

	t.Run("Should reject pending straight to accepted", func(t *testing.T) {
		uc, appRepo := newUC(&domain.Application{ID: 1, OfferID: 10, Status: domain.ApplicationStatusPending})

		_, err := uc.UpdateStatus(ctx, "company1", 1, domain.ApplicationStatusAccepted)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "interview_scheduled")
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should refuse any change from a terminal status", func(t *testing.T) {
		uc, _ := newUC(&domain.Application{ID: 1, OfferID: 10, Status: domain.ApplicationStatusAccepted})

		_, err := uc.UpdateStatus(ctx, "company1", 1, domain.ApplicationStatusRejected)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "final decision")
	})

	t.Run("Should refuse a no-op status change", func(t *testing.T) {
		uc, _ := newUC(&domain.Application{ID: 1, OfferID: 10, Status: domain.ApplicationStatusPending})

		_, err := uc.UpdateStatus(ctx, "company1", 1, domain.ApplicationStatusPending)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already")
	})

	t.Run("Should surface a concurrent modification as a conflict", func(t *testing.T) {
		uc, appRepo := newUC(&domain.Application{ID: 1, OfferID: 10, Status: domain.ApplicationStatusInterviewScheduled, Version: 5})
		appRepo.On("UpdateStatus", ctx, int64(1), domain.ApplicationStatusAccepted, 5).Return(domain.ErrVersionConflict)

		_, err := uc.UpdateStatus(ctx, "company1", 1, domain.ApplicationStatusAccepted)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("Should refuse a caller who does not own the offer", func(t *testing.T) {
		uc, _ := newUC(&domain.Application{ID: 1, OfferID: 10, Status: domain.ApplicationStatusPending})

		_, err := uc.UpdateStatus(ctx, "intruder", 1, domain.ApplicationStatusRejected)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "owner")
	})
}

func TestApplicationListByOffer(t *testing.T) {
	ctx := context.Background()
	offer := &domain.Offer{ID: 10, CompanyUserID: "company1"}

	t.Run("Should attach the latest quiz summary with a rounded percentage", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		appRepo := new(MockApplicationRepo)
		quizRepo := new(MockQuizRepo)
		submissionRepo := new(MockSubmissionRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, quizRepo, submissionRepo, nil, validator.New())

		offerRepo.On("GetByID", ctx, int64(10)).Return(offer, nil)
		appRepo.On("GetByOffer", ctx, int64(10)).Return([]domain.Application{
			{ID: 1, OfferID: 10, CandidateUserID: "cand1"},
		}, nil)
		title := "Backend basics"
		submissionRepo.On("GetLatestForOffer", ctx, "cand1", int64(10)).Return(&domain.QuizSubmission{
			ID: 55, QuizID: 1, TotalScore: 10, QuizTitle: &title,
		}, nil)
		quizRepo.On("GetByID", ctx, int64(1)).Return(&domain.Quiz{ID: 1, TotalScore: 15}, nil)

		apps, err := uc.ListByOffer(ctx, "company1", 10)
		assert.NoError(t, err)
		summary := apps[0].QuizSubmission
		assert.NotNil(t, summary)
		assert.True(t, summary.HasSubmitted)
		assert.Equal(t, 10, *summary.Score)
		assert.Equal(t, 15, *summary.TotalPossibleScore)
		assert.Equal(t, 67, *summary.Percentage)
	})

	t.Run("Should mark candidates without a submission", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		appRepo := new(MockApplicationRepo)
		submissionRepo := new(MockSubmissionRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockQuizRepo), submissionRepo, nil, validator.New())

		offerRepo.On("GetByID", ctx, int64(10)).Return(offer, nil)
		appRepo.On("GetByOffer", ctx, int64(10)).Return([]domain.Application{
			{ID: 1, OfferID: 10, CandidateUserID: "cand2"},
		}, nil)
		submissionRepo.On("GetLatestForOffer", ctx, "cand2", int64(10)).Return(nil, domain.ErrNotFound)

		apps, err := uc.ListByOffer(ctx, "company1", 10)
		assert.NoError(t, err)
		assert.NotNil(t, apps[0].QuizSubmission)
		assert.False(t, apps[0].QuizSubmission.HasSubmitted)
		assert.Nil(t, apps[0].QuizSubmission.Score)
	})
}

func TestApplicationDeleteByOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return the number of applications removed", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockQuizRepo), new(MockSubmissionRepo), nil, validator.New())

		offerRepo.On("GetByID", ctx, int64(10)).Return(&domain.Offer{ID: 10, CompanyUserID: "company1"}, nil)
		appRepo.On("DeleteByOffer", ctx, int64(10)).Return(int64(3), nil)

		count, err := uc.DeleteByOffer(ctx, "company1", 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}
