package postgres

import (
	"context"
	"database/sql"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	s := &domain.Settings{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, shop_name, default_maintenance_hours, daily_late_fee_cents, updated_at
		 FROM app_settings WHERE id = 1`).
		Scan(&s.ID, &s.ShopName, &s.DefaultMaintenanceHours, &s.DailyLateFeeCents, &s.UpdatedAt)
	if err != nil {
		return nil, storeErr("settings.Get", notFound(err, "settings", 1))
	}
	return s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE app_settings SET shop_name = $1, default_maintenance_hours = $2, daily_late_fee_cents = $3, updated_at = $4
		 WHERE id = 1`,
		s.ShopName, s.DefaultMaintenanceHours, s.DailyLateFeeCents, time.Now())
	if err != nil {
		return nil, storeErr("settings.Update", err)
	}
	return r.Get(ctx)
}
