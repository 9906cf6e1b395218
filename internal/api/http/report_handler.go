package http

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/service"
	"suitrental-backend/internal/storage"
)

type ReportHandler struct {
	reportSvc    service.ReportService
	dashboardSvc service.DashboardService
	artifacts    storage.ArtifactStore
}

func NewReportHandler(reportSvc service.ReportService, dashboardSvc service.DashboardService, artifacts storage.ArtifactStore) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, dashboardSvc: dashboardSvc, artifacts: artifacts}
}

type generateReportRequest struct {
	Type      domain.ReportType `json:"type"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
}

type generateReportResponse struct {
	Report *domain.ReportRequest `json:"report"`
	URL    string                `json:"url"`
}

func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateReportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Type == "" {
		req.Type = domain.ReportTypeRentals
	}

	claims := operatorFromContext(r.Context())
	report, err := h.reportSvc.GenerateReport(r.Context(), claims.UserID, req.Type, req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, generateReportResponse{Report: report, URL: report.URL})
}

func (h *ReportHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.reportSvc.History(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

type summaryResponse struct {
	Summary  *domain.DashboardSummary `json:"summary"`
	Timeline []domain.TimelineEntry   `json:"timeline"`
}

func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardSvc.Summarize(r.Context(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{Summary: summary, Timeline: summary.Timeline})
}

// Download streams a stored report artifact.
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	file, err := h.artifacts.Open(r.Context(), key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody{Message: "artifact not found"})
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.Copy(w, file)
}
