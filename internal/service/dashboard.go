package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
)

const (
	recentPerKind = 5
	timelineMax   = 6
)

type dashboardService struct {
	reportRepo repository.ReportRepository
}

func NewDashboardService(reportRepo repository.ReportRepository) DashboardService {
	return &dashboardService{reportRepo: reportRepo}
}

// Summarize assembles the operational dashboard for the calendar day of now.
func (s *dashboardService) Summarize(ctx context.Context, now time.Time) (*domain.DashboardSummary, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)
	today := now.Format("2006-01-02")

	active, err := s.reportRepo.CountActiveRentals(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.reportRepo.CountUpcomingRentals(ctx, today)
	if err != nil {
		return nil, err
	}
	rentalRevenue, err := s.reportRepo.RentalRevenueBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	salesRevenue, err := s.reportRepo.SalesRevenueBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	recentRentals, err := s.reportRepo.RecentRentals(ctx, recentPerKind)
	if err != nil {
		return nil, err
	}
	recentSales, err := s.reportRepo.RecentSales(ctx, recentPerKind)
	if err != nil {
		return nil, err
	}

	// Rentals are appended before sales and the sort is stable, so entries
	// with equal timestamps keep a deterministic order.
	timeline := make([]domain.TimelineEntry, 0, len(recentRentals)+len(recentSales))
	for _, rt := range recentRentals {
		timeline = append(timeline, domain.TimelineEntry{
			ID:        rt.ID,
			Title:     fmt.Sprintf("Rental %s", rt.Code),
			Subtitle:  fmt.Sprintf("Client %s", rt.ClientDNI),
			Kind:      domain.TimelineKindRental,
			Timestamp: rt.CreatedAt,
			Cents:     rt.TotalCents,
			Status:    string(rt.Status),
		})
	}
	for _, sl := range recentSales {
		timeline = append(timeline, domain.TimelineEntry{
			ID:        sl.ID,
			Title:     fmt.Sprintf("Sale %s", sl.Code),
			Subtitle:  fmt.Sprintf("Client %s", sl.ClientDNI),
			Kind:      domain.TimelineKindSale,
			Timestamp: sl.SoldAt,
			Cents:     sl.TotalCents,
		})
	}
	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Timestamp.After(timeline[j].Timestamp)
	})
	if len(timeline) > timelineMax {
		timeline = timeline[:timelineMax]
	}

	return &domain.DashboardSummary{
		ActiveRentals:      active,
		UpcomingRentals:    upcoming,
		RentalRevenueCents: rentalRevenue,
		SalesRevenueCents:  salesRevenue,
		Timeline:           timeline,
	}, nil
}
