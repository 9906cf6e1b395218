package service

import (
	"context"
	"testing"
	"time"

	"suitrental-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDashboardService_Summarize(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	t.Run("Counters", func(t *testing.T) {
		repo := new(MockReportRepo)
		repo.On("CountActiveRentals", ctx).Return(int32(4), nil)
		repo.On("CountUpcomingRentals", ctx, "2026-09-01").Return(int32(2), nil)
		// 150.00 of rental totals plus 20.00 of late fees, 80.00 of sales.
		repo.On("RentalRevenueBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(int64(17000), nil)
		repo.On("SalesRevenueBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(int64(8000), nil)
		repo.On("RecentRentals", ctx, int32(5)).Return([]domain.Rental{}, nil)
		repo.On("RecentSales", ctx, int32(5)).Return([]domain.Sale{}, nil)

		svc := NewDashboardService(repo)
		summary, err := svc.Summarize(ctx, now)
		assert.NoError(t, err)
		assert.Equal(t, int32(4), summary.ActiveRentals)
		assert.Equal(t, int32(2), summary.UpcomingRentals)
		assert.Equal(t, int64(17000), summary.RentalRevenueCents)
		assert.Equal(t, int64(8000), summary.SalesRevenueCents)
		assert.Empty(t, summary.Timeline)
		repo.AssertExpectations(t)
	})

	t.Run("TimelineOrderAndTruncation", func(t *testing.T) {
		repo := new(MockReportRepo)
		repo.On("CountActiveRentals", ctx).Return(int32(0), nil)
		repo.On("CountUpcomingRentals", ctx, "2026-09-01").Return(int32(0), nil)
		repo.On("RentalRevenueBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(int64(0), nil)
		repo.On("SalesRevenueBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(int64(0), nil)

		at := func(h int) time.Time { return time.Date(2026, 9, 1, h, 0, 0, 0, time.UTC) }
		rentals := []domain.Rental{
			{ID: 1, Code: "RNT-A", ClientDNI: "1", TotalCents: 100, Status: domain.RentalStatusActive, CreatedAt: at(10)},
			{ID: 2, Code: "RNT-B", ClientDNI: "2", TotalCents: 200, Status: domain.RentalStatusActive, CreatedAt: at(8)},
			{ID: 3, Code: "RNT-C", ClientDNI: "3", TotalCents: 300, Status: domain.RentalStatusActive, CreatedAt: at(6)},
			{ID: 4, Code: "RNT-D", ClientDNI: "4", TotalCents: 400, Status: domain.RentalStatusActive, CreatedAt: at(4)},
		}
		sales := []domain.Sale{
			{ID: 5, Code: "SAL-A", ClientDNI: "5", TotalCents: 500, SoldAt: at(10)},
			{ID: 6, Code: "SAL-B", ClientDNI: "6", TotalCents: 600, SoldAt: at(9)},
			{ID: 7, Code: "SAL-C", ClientDNI: "7", TotalCents: 700, SoldAt: at(7)},
		}
		repo.On("RecentRentals", ctx, int32(5)).Return(rentals, nil)
		repo.On("RecentSales", ctx, int32(5)).Return(sales, nil)

		svc := NewDashboardService(repo)
		summary, err := svc.Summarize(ctx, now)
		assert.NoError(t, err)

		// Seven candidates, capped at six.
		assert.Len(t, summary.Timeline, 6)

		// Newest first; the rental at 10:00 precedes the sale at 10:00 because
		// rentals are appended first and the sort is stable.
		assert.Equal(t, "Rental RNT-A", summary.Timeline[0].Title)
		assert.Equal(t, "Sale SAL-A", summary.Timeline[1].Title)
		assert.Equal(t, "Sale SAL-B", summary.Timeline[2].Title)
		assert.Equal(t, "Rental RNT-B", summary.Timeline[3].Title)
		assert.Equal(t, "Sale SAL-C", summary.Timeline[4].Title)
		assert.Equal(t, "Rental RNT-C", summary.Timeline[5].Title)

		assert.Equal(t, domain.TimelineKindRental, summary.Timeline[0].Kind)
		assert.Equal(t, domain.TimelineKindSale, summary.Timeline[1].Kind)
		assert.Equal(t, "ACTIVE", summary.Timeline[0].Status)
	})

	t.Run("RepoErrorPropagates", func(t *testing.T) {
		repo := new(MockReportRepo)
		repo.On("CountActiveRentals", ctx).Return(int32(0), assert.AnError)

		svc := NewDashboardService(repo)
		_, err := svc.Summarize(ctx, now)
		assert.Error(t, err)
	})
}
