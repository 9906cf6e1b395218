package service

import (
	"context"
	"fmt"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/logger"
	"suitrental-backend/internal/render"
	"suitrental-backend/internal/repository"
	"suitrental-backend/internal/storage"
)

type reportService struct {
	reportRepo repository.ReportRepository
	renderer   render.Renderer
	artifacts  storage.ArtifactStore
}

func NewReportService(
	reportRepo repository.ReportRepository,
	renderer render.Renderer,
	artifacts storage.ArtifactStore,
) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		renderer:   renderer,
		artifacts:  artifacts,
	}
}

func validReportType(typ domain.ReportType) bool {
	switch typ {
	case domain.ReportTypeRentals, domain.ReportTypeSales, domain.ReportTypeAll:
		return true
	}
	return false
}

func (s *reportService) validateRange(typ domain.ReportType, start, end string) error {
	if !validReportType(typ) {
		return fmt.Errorf("%w: unknown report type %q", domain.ErrValidation, typ)
	}
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return fmt.Errorf("%w: start date %q", domain.ErrValidation, start)
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return fmt.Errorf("%w: end date %q", domain.ErrValidation, end)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: end date before start date", domain.ErrValidation)
	}
	return nil
}

// BuildDataset is a pure read; for a fixed range over unchanged data two runs
// return identical rows.
func (s *reportService) BuildDataset(ctx context.Context, typ domain.ReportType, start, end string) ([]domain.DatasetRow, error) {
	if err := s.validateRange(typ, start, end); err != nil {
		return nil, err
	}
	return s.reportRepo.Dataset(ctx, typ, start, end)
}

func (s *reportService) GenerateReport(ctx context.Context, operatorID int32, typ domain.ReportType, start, end string) (*domain.ReportRequest, error) {
	rows, err := s.BuildDataset(ctx, typ, start, end)
	if err != nil {
		return nil, err
	}

	data, contentType, err := s.renderer.Render(typ, start, end, rows)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	key := fmt.Sprintf("report-%s-%d.txt", typ, time.Now().UnixMilli())
	url, err := s.artifacts.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("store report artifact: %w", err)
	}

	req := &domain.ReportRequest{
		Type:       typ,
		StartDate:  start,
		EndDate:    end,
		OperatorID: operatorID,
		URL:        url,
		Status:     "GENERATED",
	}
	if err := s.reportRepo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	logger.Info("report generated", "type", typ, "start", start, "end", end, "rows", len(rows), "url", url)
	return req, nil
}

func (s *reportService) History(ctx context.Context) ([]domain.ReportRequest, error) {
	return s.reportRepo.History(ctx, 50)
}
