package domain

import "time"

type ReportType string

const (
	ReportTypeRentals ReportType = "RENTALS"
	ReportTypeSales   ReportType = "SALES"
	ReportTypeAll     ReportType = "ALL"
)

type RowOrigin string

const (
	RowOriginRental RowOrigin = "RENTAL"
	RowOriginSale   RowOrigin = "SALE"
)

// DatasetRow is the uniform projection shape shared by all report types.
type DatasetRow struct {
	Code       string    `json:"code"`
	ClientName string    `json:"client_name"`
	Cents      int64     `json:"cents"`
	Origin     RowOrigin `json:"origin"`
	Date       string    `json:"date"`
}

// ReportRequest is the append-only audit record of a generated report.
type ReportRequest struct {
	ID         int32      `json:"id"`
	Type       ReportType `json:"type"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	OperatorID int32      `json:"operator_id"`
	URL        string     `json:"url"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

type TimelineKind string

const (
	TimelineKindRental TimelineKind = "RENTAL"
	TimelineKindSale   TimelineKind = "SALE"
)

type TimelineEntry struct {
	ID        int32        `json:"id"`
	Title     string       `json:"title"`
	Subtitle  string       `json:"subtitle"`
	Kind      TimelineKind `json:"kind"`
	Timestamp time.Time    `json:"timestamp"`
	Cents     int64        `json:"cents"`
	Status    string       `json:"status,omitempty"`
}

type DashboardSummary struct {
	ActiveRentals     int32           `json:"active_rentals"`
	UpcomingRentals   int32           `json:"upcoming_rentals"`
	RentalRevenueCents int64          `json:"rental_revenue_cents"`
	SalesRevenueCents  int64          `json:"sales_revenue_cents"`
	Timeline          []TimelineEntry `json:"timeline"`
}
