package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive RentalStatus = "ACTIVE"
	RentalStatusClosed RentalStatus = "CLOSED"
)

type RentalItemStatus string

const (
	RentalItemStatusOpen            RentalItemStatus = "OPEN"
	RentalItemStatusReturnedOK      RentalItemStatus = "RETURNED_OK"
	RentalItemStatusReturnedDamaged RentalItemStatus = "RETURNED_DAMAGED"
	RentalItemStatusLost            RentalItemStatus = "LOST"
)

// TerminalItemStatus reports whether s closes out a rental item.
func TerminalItemStatus(s RentalItemStatus) bool {
	switch s {
	case RentalItemStatusReturnedOK, RentalItemStatusReturnedDamaged, RentalItemStatusLost:
		return true
	}
	return false
}

type Rental struct {
	ID            int32        `json:"id"`
	Code          string       `json:"code"`
	ClientDNI     string       `json:"client_dni"`
	OperatorID    int32        `json:"operator_id"`
	StartDate     string       `json:"start_date"`
	EndDate       string       `json:"end_date"`
	TotalCents    int64        `json:"total_cents"`
	DepositCents  int64        `json:"deposit_cents"`
	LateFeeCents  int64        `json:"late_fee_cents"`
	PaymentMethod string       `json:"payment_method"`
	Notes         string       `json:"notes"`
	Status        RentalStatus `json:"status"`
	Items         []RentalItem `json:"items,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type RentalItem struct {
	ID            int32            `json:"id"`
	RentalID      int32            `json:"rental_id"`
	ArticleID     int32            `json:"article_id"`
	ArticleTypeID int32            `json:"article_type_id"`
	// Snapshots captured at creation time so later catalog edits do not
	// retroactively alter historical transactions.
	Description    string           `json:"description"`
	PriceCents     int64            `json:"price_cents"`
	Status         RentalItemStatus `json:"status"`
	RetainedCents  int64            `json:"retained_cents"`
	ClosingComment string           `json:"closing_comment"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
}
