package service

import (
	"context"
	"fmt"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
)

type inventoryService struct {
	articleRepo  repository.ArticleRepository
	suitRepo     repository.SuitRepository
	settingsRepo repository.SettingsRepository
}

func NewInventoryService(
	articleRepo repository.ArticleRepository,
	suitRepo repository.SuitRepository,
	settingsRepo repository.SettingsRepository,
) InventoryService {
	return &inventoryService{
		articleRepo:  articleRepo,
		suitRepo:     suitRepo,
		settingsRepo: settingsRepo,
	}
}

func (s *inventoryService) ListArticles(ctx context.Context, filter repository.ArticleFilter) ([]domain.Article, error) {
	if filter.State != "" && !domain.ValidArticleState(filter.State) {
		return nil, fmt.Errorf("%w: unknown state %q", domain.ErrValidation, filter.State)
	}
	return s.articleRepo.List(ctx, filter)
}

func (s *inventoryService) GetArticle(ctx context.Context, id int32) (*domain.Article, error) {
	return s.articleRepo.GetByID(ctx, id)
}

// TransitionArticle validates the request and applies it through the state
// machine. Reachability is checked again under the row lock inside the
// repository, so a stale read here cannot let an invalid transition through.
func (s *inventoryService) TransitionArticle(ctx context.Context, actorID int32, in TransitionInput) (*domain.Article, error) {
	if !domain.ValidArticleState(in.Target) {
		return nil, fmt.Errorf("%w: unknown state %q", domain.ErrValidation, in.Target)
	}
	if in.Reason == "" {
		in.Reason = domain.ReasonManualAdjust
	}

	current, err := s.articleRepo.GetByID(ctx, in.ArticleID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckTransition(current.State, in.Target); err != nil {
		return nil, fmt.Errorf("article %d: %w", in.ArticleID, err)
	}

	var holdUntil *time.Time
	switch in.Target {
	case domain.ArticleStateRented, domain.ArticleStateMaintenance:
		var hours int32
		if in.HoldHours != nil {
			hours = *in.HoldHours
		} else {
			hours = s.defaultMaintenanceHours(ctx)
		}
		t := time.Now().Add(time.Duration(hours) * time.Hour)
		holdUntil = &t
	}

	return s.articleRepo.Transition(ctx, domain.StateTransition{
		ArticleID: in.ArticleID,
		FromState: current.State,
		ToState:   in.Target,
		Reason:    in.Reason,
		Comment:   in.Comment,
		ActorID:   actorID,
	}, holdUntil)
}

func (s *inventoryService) EnterMaintenance(ctx context.Context, actorID, articleID int32, hours int32, comment string) (*domain.Article, error) {
	if hours <= 0 {
		hours = domain.DefaultMaintenanceHours
	}
	return s.TransitionArticle(ctx, actorID, TransitionInput{
		ArticleID: articleID,
		Target:    domain.ArticleStateMaintenance,
		HoldHours: &hours,
		Reason:    domain.ReasonAdHocService,
		Comment:   comment,
	})
}

func (s *inventoryService) ArticleHistory(ctx context.Context, articleID int32) ([]domain.StateTransition, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.articleRepo.ListTransitions(ctx, articleID, 100)
}

func (s *inventoryService) defaultMaintenanceHours(ctx context.Context) int32 {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil || settings.DefaultMaintenanceHours <= 0 {
		return domain.DefaultMaintenanceHours
	}
	return settings.DefaultMaintenanceHours
}

func (s *inventoryService) ListSuits(ctx context.Context) ([]domain.Suit, error) {
	return s.suitRepo.List(ctx)
}

func (s *inventoryService) CreateSuit(ctx context.Context, suit *domain.Suit) error {
	if suit.Name == "" {
		return fmt.Errorf("%w: suit name is required", domain.ErrValidation)
	}
	return s.suitRepo.Create(ctx, suit)
}

func (s *inventoryService) UpdateSuit(ctx context.Context, suit *domain.Suit, pieces []domain.SuitPiece) (*domain.Suit, error) {
	if suit.Name == "" {
		return nil, fmt.Errorf("%w: suit name is required", domain.ErrValidation)
	}
	return s.suitRepo.Update(ctx, suit, pieces)
}
