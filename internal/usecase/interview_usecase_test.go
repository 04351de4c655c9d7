package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"matchgo-backend/internal/domain"
	"matchgo-backend/internal/usecase"
	"matchgo-backend/pkg/notify"
)

func TestInterviewSchedule(t *testing.T) {
	ctx := context.Background()
	offer := &domain.Offer{ID: 10, CompanyUserID: "company1", JobTitle: "Backend Engineer"}
	date := time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC)

	t.Run("Should create the interview and move the application", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		appRepo := new(MockApplicationRepo)
		offerRepo := new(MockOfferRepo)
		publisher := new(MockPublisher)
		uc := usecase.NewInterviewUsecase(interviewRepo, appRepo, offerRepo, nil, publisher)

		appRepo.On("GetByID", ctx, int64(1)).Return(&domain.Application{
			ID: 1, OfferID: 10, CandidateUserID: "cand1", Status: domain.ApplicationStatusPending, Version: 1,
		}, nil)
		offerRepo.On("GetByID", ctx, int64(10)).Return(offer, nil)
		interviewRepo.On("Create", ctx, mock.AnythingOfType("*domain.Interview")).Return(nil)
		appRepo.On("UpdateStatus", ctx, int64(1), domain.ApplicationStatusInterviewScheduled, 1).Return(nil)
		publisher.On("Publish", ctx, mock.AnythingOfType("notify.Event")).Return(nil)

		iv, app, err := uc.Schedule(ctx, "company1", 1, date, "Bring questions")
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(iv.MeetLink, "https://meet.jit.si/matchgo-"))
		assert.Contains(t, iv.Message, "Backend Engineer")
		assert.Equal(t, domain.ApplicationStatusInterviewScheduled, app.Status)
		assert.Equal(t, 2, app.Version)

		publisher.AssertCalled(t, "Publish", ctx, mock.MatchedBy(func(e notify.Event) bool {
			return e.UserID == "cand1" && e.Type == notify.TypeInterviewScheduled
		}))
	})

	t.Run("Should not touch the status when already interview_scheduled", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		appRepo := new(MockApplicationRepo)
		offerRepo := new(MockOfferRepo)
		publisher := new(MockPublisher)
		uc := usecase.NewInterviewUsecase(interviewRepo, appRepo, offerRepo, nil, publisher)

		appRepo.On("GetByID", ctx, int64(1)).Return(&domain.Application{
			ID: 1, OfferID: 10, CandidateUserID: "cand1", Status: domain.ApplicationStatusInterviewScheduled, Version: 2,
		}, nil)
		offerRepo.On("GetByID", ctx, int64(10)).Return(offer, nil)
		interviewRepo.On("Create", ctx, mock.AnythingOfType("*domain.Interview")).Return(nil)
		publisher.On("Publish", ctx, mock.AnythingOfType("notify.Event")).Return(nil)

		_, app, err := uc.Schedule(ctx, "company1", 1, date, "")
		assert.NoError(t, err)
		assert.Equal(t, 2, app.Version)
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should refuse a non-owner without creating anything", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		appRepo := new(MockApplicationRepo)
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewInterviewUsecase(interviewRepo, appRepo, offerRepo, nil, notify.NewDummy())

		appRepo.On("GetByID", ctx, int64(1)).Return(&domain.Application{
			ID: 1, OfferID: 10, Status: domain.ApplicationStatusPending,
		}, nil)
		offerRepo.On("GetByID", ctx, int64(10)).Return(offer, nil)

		_, _, err := uc.Schedule(ctx, "intruder", 1, date, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "owner")
		interviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should refuse an application with a final decision", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		appRepo := new(MockApplicationRepo)
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewInterviewUsecase(interviewRepo, appRepo, offerRepo, nil, notify.NewDummy())

		appRepo.On("GetByID", ctx, int64(1)).Return(&domain.Application{
			ID: 1, OfferID: 10, Status: domain.ApplicationStatusRejected,
		}, nil)
		offerRepo.On("GetByID", ctx, int64(10)).Return(offer, nil)

		_, _, err := uc.Schedule(ctx, "company1", 1, date, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "final decision")
		interviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should not roll back when the notification fails", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		appRepo := new(MockApplicationRepo)
		offerRepo := new(MockOfferRepo)
		publisher := new(MockPublisher)
		uc := usecase.NewInterviewUsecase(interviewRepo, appRepo, offerRepo, nil, publisher)

		appRepo.On("GetByID", ctx, int64(1)).Return(&domain.Application{
			ID: 1, OfferID: 10, CandidateUserID: "cand1", Status: domain.ApplicationStatusPending, Version: 1,
		}, nil)
		offerRepo.On("GetByID", ctx, int64(10)).Return(offer, nil)
		interviewRepo.On("Create", ctx, mock.AnythingOfType("*domain.Interview")).Return(nil)
		appRepo.On("UpdateStatus", ctx, int64(1), domain.ApplicationStatusInterviewScheduled, 1).Return(nil)
		publisher.On("Publish", ctx, mock.AnythingOfType("notify.Event")).Return(assert.AnError)

		iv, _, err := uc.Schedule(ctx, "company1", 1, date, "")
		assert.NoError(t, err)
		assert.NotNil(t, iv)
	})
}

func TestInterviewListByDateRange(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)

	t.Run("Should reject an inverted range", func(t *testing.T) {
		uc := usecase.NewInterviewUsecase(new(MockInterviewRepo), new(MockApplicationRepo), new(MockOfferRepo), nil, notify.NewDummy())

		_, err := uc.ListByDateRange(ctx, "company1", to, from, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "before start")
	})

	t.Run("Should scope an offer filter to the caller", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		offerRepo := new(MockOfferRepo)
		uc := usecase.NewInterviewUsecase(interviewRepo, new(MockApplicationRepo), offerRepo, nil, notify.NewDummy())

		offerID := int64(10)
		offerRepo.On("GetByID", ctx, offerID).Return(&domain.Offer{ID: 10, CompanyUserID: "company1"}, nil)

		_, err := uc.ListByDateRange(ctx, "intruder", from, to, &offerID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "owner")
		interviewRepo.AssertNotCalled(t, "GetByDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should pass the range through for the caller", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		uc := usecase.NewInterviewUsecase(interviewRepo, new(MockApplicationRepo), new(MockOfferRepo), nil, notify.NewDummy())

		interviewRepo.On("GetByDateRange", ctx, "company1", from, to, (*int64)(nil)).Return([]domain.Interview{}, nil)

		got, err := uc.ListByDateRange(ctx, "company1", from, to, nil)
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}
