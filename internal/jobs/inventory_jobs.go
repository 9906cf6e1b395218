package jobs

import (
	"context"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/logger"
)

// systemActor is recorded in audit entries for transitions applied by jobs
// rather than an operator.
const systemActor int32 = 0

// AccrueLateFees adds the configured daily late fee to every ACTIVE rental
// whose end date has passed. The accrued amount feeds the dashboard's rental
// revenue figure.
func (jr *JobRunner) AccrueLateFees() {
	jr.runWithRecovery("AccrueLateFees", func() {
		ctx := context.Background()

		fee := jr.config.Rental.DailyLateFeeCents
		if settings, err := jr.store.SettingsRepository.Get(ctx); err == nil && settings.DailyLateFeeCents > 0 {
			fee = settings.DailyLateFeeCents
		}
		if fee <= 0 {
			logger.Debug("late fee accrual skipped, no fee configured")
			return
		}

		today := time.Now().Format("2006-01-02")
		touched, err := jr.store.RentalRepository.AccrueLateFees(ctx, today, fee)
		if err != nil {
			logger.Error("late fee accrual failed", "error", err)
			return
		}
		logger.Info("late fees accrued", "rentals", touched, "daily_fee_cents", fee)
	})
}

// ReleaseMaintenanceHolds returns MAINTENANCE articles whose hold-until has
// passed to AVAILABLE, one state-machine transition per article so each gets
// its own audit entry.
func (jr *JobRunner) ReleaseMaintenanceHolds() {
	jr.runWithRecovery("ReleaseMaintenanceHolds", func() {
		ctx := context.Background()

		expired, err := jr.store.ArticleRepository.ListHoldExpired(ctx, domain.ArticleStateMaintenance, time.Now())
		if err != nil {
			logger.Error("listing expired maintenance holds failed", "error", err)
			return
		}

		released := 0
		for _, article := range expired {
			_, err := jr.store.ArticleRepository.Transition(ctx, domain.StateTransition{
				ArticleID: article.ID,
				FromState: article.State,
				ToState:   domain.ArticleStateAvailable,
				Reason:    domain.ReasonHoldExpired,
				ActorID:   systemActor,
			}, nil)
			if err != nil {
				logger.Error("releasing maintenance hold failed", "article_id", article.ID, "error", err)
				continue
			}
			released++
		}
		logger.Info("maintenance holds released", "expired", len(expired), "released", released)
	})
}
