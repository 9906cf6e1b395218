package service

import (
	"context"
	"fmt"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/logger"
	"suitrental-backend/internal/repository"
	"suitrental-backend/internal/utils"
)

type rentalService struct {
	rentalRepo   repository.RentalRepository
	clientRepo   repository.ClientRepository
	settingsRepo repository.SettingsRepository
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	clientRepo repository.ClientRepository,
	settingsRepo repository.SettingsRepository,
) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
	}
}

// CreateRental validates the whole order before any persistence step, then
// hands the header, items, and article transitions to the repository as one
// atomic unit. Either everything lands or nothing does.
func (s *rentalService) CreateRental(ctx context.Context, operatorID int32, in CreateRentalInput) (*domain.Rental, error) {
	if in.ClientDNI == "" || in.PaymentMethod == "" || in.TotalCents <= 0 || in.DepositCents <= 0 {
		return nil, fmt.Errorf("%w: client, payment method, total and deposit are required", domain.ErrValidation)
	}
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q", domain.ErrValidation, in.StartDate)
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q", domain.ErrValidation, in.EndDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", domain.ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one article is required", domain.ErrValidation)
	}
	// Line items are immutable once written, so malformed items must be
	// rejected before anything is persisted.
	for i, item := range in.Items {
		if item.ArticleID == 0 || item.ArticleTypeID == 0 {
			return nil, fmt.Errorf("%w: item %d missing article or type reference", domain.ErrValidation, i)
		}
	}
	if _, err := s.clientRepo.GetByDNI(ctx, in.ClientDNI); err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		Code:          utils.RentalCode(),
		ClientDNI:     in.ClientDNI,
		OperatorID:    operatorID,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		TotalCents:    in.TotalCents,
		DepositCents:  in.DepositCents,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}
	for _, item := range in.Items {
		rental.Items = append(rental.Items, domain.RentalItem{
			ArticleID:     item.ArticleID,
			ArticleTypeID: item.ArticleTypeID,
			Description:   item.Description,
			PriceCents:    item.PriceCents,
		})
	}

	if err := s.rentalRepo.CreateWithItems(ctx, rental); err != nil {
		return nil, err
	}
	logger.Info("rental created", "code", rental.Code, "client", rental.ClientDNI, "items", len(rental.Items))
	return rental, nil
}

func (s *rentalService) ListRentals(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	return s.rentalRepo.List(ctx, status)
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

// CloseRental sets the header status. Items are closed independently; a header
// closed with items still OPEN is allowed but logged as a warning.
func (s *rentalService) CloseRental(ctx context.Context, operatorID, id int32, status domain.RentalStatus) (*domain.Rental, error) {
	if status == "" {
		status = domain.RentalStatusClosed
	}
	if status != domain.RentalStatusActive && status != domain.RentalStatusClosed {
		return nil, fmt.Errorf("%w: unknown rental status %q", domain.ErrValidation, status)
	}

	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == domain.RentalStatusClosed {
		open := 0
		for _, item := range rental.Items {
			if item.Status == domain.RentalItemStatusOpen {
				open++
			}
		}
		if open > 0 {
			logger.Warn("closing rental with open items", "rental_id", id, "code", rental.Code, "open_items", open, "operator_id", operatorID)
		}
	}
	return s.rentalRepo.UpdateStatus(ctx, id, status)
}

// CloseRentalItem records the item's terminal status and retained deposit and
// drives the owning article: damaged goods need servicing before re-entering
// rotation, lost goods are written off.
func (s *rentalService) CloseRentalItem(ctx context.Context, operatorID int32, in CloseItemInput) (*domain.RentalItem, error) {
	now := time.Now()

	var target domain.ArticleState
	var holdUntil *time.Time
	var reason string
	switch in.Status {
	case domain.RentalItemStatusReturnedOK:
		target = domain.ArticleStateAvailable
		reason = domain.ReasonRentalReturn
	case domain.RentalItemStatusReturnedDamaged:
		target = domain.ArticleStateMaintenance
		reason = domain.ReasonItemDamaged
		t := now.Add(time.Duration(s.defaultMaintenanceHours(ctx)) * time.Hour)
		holdUntil = &t
	case domain.RentalItemStatusLost:
		target = domain.ArticleStateRetired
		reason = domain.ReasonItemLost
	default:
		return nil, fmt.Errorf("%w: closing status %q", domain.ErrValidation, in.Status)
	}
	if in.RetainedCents < 0 {
		return nil, fmt.Errorf("%w: retained deposit cannot be negative", domain.ErrValidation)
	}

	item, err := s.rentalRepo.CloseItem(ctx, repository.CloseItemParams{
		ItemID:        in.ItemID,
		Status:        in.Status,
		RetainedCents: in.RetainedCents,
		Comment:       in.Comment,
		ArticleTarget: target,
		HoldUntil:     holdUntil,
		Reason:        reason,
		ActorID:       operatorID,
		ClosedAt:      now,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("rental item closed", "item_id", item.ID, "status", item.Status, "retained_cents", item.RetainedCents, "operator_id", operatorID)
	return item, nil
}

func (s *rentalService) defaultMaintenanceHours(ctx context.Context) int32 {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil || settings.DefaultMaintenanceHours <= 0 {
		return domain.DefaultMaintenanceHours
	}
	return settings.DefaultMaintenanceHours
}
