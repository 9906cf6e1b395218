package service

import (
	"context"
	"fmt"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *settingsService) UpdateSettings(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	if settings.DefaultMaintenanceHours <= 0 {
		return nil, fmt.Errorf("%w: default maintenance hours must be positive", domain.ErrValidation)
	}
	if settings.DailyLateFeeCents < 0 {
		return nil, fmt.Errorf("%w: daily late fee cannot be negative", domain.ErrValidation)
	}
	return s.settingsRepo.Update(ctx, settings)
}
