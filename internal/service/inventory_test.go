package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newInventoryServiceForTest() (InventoryService, *MockArticleRepo, *MockSuitRepo, *MockSettingsRepo) {
	articleRepo := new(MockArticleRepo)
	suitRepo := new(MockSuitRepo)
	settingsRepo := new(MockSettingsRepo)
	svc := NewInventoryService(articleRepo, suitRepo, settingsRepo)
	return svc, articleRepo, suitRepo, settingsRepo
}

func TestInventoryService_TransitionArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("ToMaintenanceSetsHold", func(t *testing.T) {
		svc, articleRepo, _, settingsRepo := newInventoryServiceForTest()
		articleRepo.On("GetByID", ctx, int32(5)).Return(&domain.Article{ID: 5, State: domain.ArticleStateAvailable}, nil)
		settingsRepo.On("Get", ctx).Return(&domain.Settings{DefaultMaintenanceHours: 24}, nil)
		updated := &domain.Article{ID: 5, State: domain.ArticleStateMaintenance}
		articleRepo.On("Transition", ctx, mock.MatchedBy(func(tr domain.StateTransition) bool {
			return tr.ArticleID == 5 &&
				tr.FromState == domain.ArticleStateAvailable &&
				tr.ToState == domain.ArticleStateMaintenance &&
				tr.Reason == domain.ReasonManualAdjust &&
				tr.ActorID == 9
		}), mock.MatchedBy(func(holdUntil *time.Time) bool {
			return holdUntil != nil && holdUntil.After(time.Now())
		})).Return(updated, nil)

		out, err := svc.TransitionArticle(ctx, 9, TransitionInput{ArticleID: 5, Target: domain.ArticleStateMaintenance})
		assert.NoError(t, err)
		assert.Equal(t, domain.ArticleStateMaintenance, out.State)
		articleRepo.AssertExpectations(t)
	})

	t.Run("ExplicitHoldSkipsSettings", func(t *testing.T) {
		svc, articleRepo, _, settingsRepo := newInventoryServiceForTest()
		articleRepo.On("GetByID", ctx, int32(5)).Return(&domain.Article{ID: 5, State: domain.ArticleStateAvailable}, nil)
		updated := &domain.Article{ID: 5, State: domain.ArticleStateMaintenance}
		hours := int32(72)
		articleRepo.On("Transition", ctx, mock.AnythingOfType("domain.StateTransition"), mock.MatchedBy(func(holdUntil *time.Time) bool {
			return holdUntil != nil && holdUntil.After(time.Now().Add(71*time.Hour))
		})).Return(updated, nil)

		_, err := svc.TransitionArticle(ctx, 9, TransitionInput{ArticleID: 5, Target: domain.ArticleStateMaintenance, HoldHours: &hours})
		assert.NoError(t, err)
		settingsRepo.AssertNotCalled(t, "Get", ctx)
	})

	t.Run("ToRetiredNoHold", func(t *testing.T) {
		svc, articleRepo, _, _ := newInventoryServiceForTest()
		articleRepo.On("GetByID", ctx, int32(5)).Return(&domain.Article{ID: 5, State: domain.ArticleStateMaintenance}, nil)
		updated := &domain.Article{ID: 5, State: domain.ArticleStateRetired}
		articleRepo.On("Transition", ctx, mock.AnythingOfType("domain.StateTransition"), (*time.Time)(nil)).Return(updated, nil)

		out, err := svc.TransitionArticle(ctx, 9, TransitionInput{ArticleID: 5, Target: domain.ArticleStateRetired})
		assert.NoError(t, err)
		assert.Equal(t, domain.ArticleStateRetired, out.State)
	})

	t.Run("UnknownState", func(t *testing.T) {
		svc, _, _, _ := newInventoryServiceForTest()
		_, err := svc.TransitionArticle(ctx, 9, TransitionInput{ArticleID: 5, Target: "SOLD"})
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("UnreachableTransition", func(t *testing.T) {
		svc, articleRepo, _, _ := newInventoryServiceForTest()
		articleRepo.On("GetByID", ctx, int32(5)).Return(&domain.Article{ID: 5, State: domain.ArticleStateRetired}, nil)

		_, err := svc.TransitionArticle(ctx, 9, TransitionInput{ArticleID: 5, Target: domain.ArticleStateAvailable})
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	})
}

func TestInventoryService_EnterMaintenance(t *testing.T) {
	ctx := context.Background()

	svc, articleRepo, _, settingsRepo := newInventoryServiceForTest()
	articleRepo.On("GetByID", ctx, int32(5)).Return(&domain.Article{ID: 5, State: domain.ArticleStateAvailable}, nil)
	updated := &domain.Article{ID: 5, State: domain.ArticleStateMaintenance}
	articleRepo.On("Transition", ctx, mock.MatchedBy(func(tr domain.StateTransition) bool {
		return tr.Reason == domain.ReasonAdHocService && tr.Comment == "dry cleaning"
	}), mock.MatchedBy(func(holdUntil *time.Time) bool {
		return holdUntil != nil
	})).Return(updated, nil)

	out, err := svc.EnterMaintenance(ctx, 9, 5, 48, "dry cleaning")
	assert.NoError(t, err)
	assert.Equal(t, domain.ArticleStateMaintenance, out.State)
	settingsRepo.AssertNotCalled(t, "Get", ctx)
}

func TestInventoryService_ListArticles(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsUnknownStateFilter", func(t *testing.T) {
		svc, _, _, _ := newInventoryServiceForTest()
		_, err := svc.ListArticles(ctx, repository.ArticleFilter{State: "DAMAGED"})
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})
}

func TestInventoryService_Suits(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateRequiresName", func(t *testing.T) {
		svc, _, _, _ := newInventoryServiceForTest()
		err := svc.CreateSuit(ctx, &domain.Suit{})
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("Create", func(t *testing.T) {
		svc, _, suitRepo, _ := newInventoryServiceForTest()
		suit := &domain.Suit{Name: "Classic tuxedo"}
		suitRepo.On("Create", ctx, suit).Return(nil)
		assert.NoError(t, svc.CreateSuit(ctx, suit))
		suitRepo.AssertExpectations(t)
	})
}
