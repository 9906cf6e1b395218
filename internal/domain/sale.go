package domain

import "time"

type Sale struct {
	ID            int32      `json:"id"`
	Code          string     `json:"code"`
	ClientDNI     string     `json:"client_dni"`
	OperatorID    int32      `json:"operator_id"`
	TotalCents    int64      `json:"total_cents"`
	PaymentMethod string     `json:"payment_method"`
	Notes         string     `json:"notes"`
	Items         []SaleItem `json:"items,omitempty"`
	SoldAt        time.Time  `json:"sold_at"`
}

type SaleItem struct {
	ID            int32  `json:"id"`
	SaleID        int32  `json:"sale_id"`
	ArticleID     int32  `json:"article_id"`
	ArticleTypeID int32  `json:"article_type_id"`
	Description   string `json:"description"`
	PriceCents    int64  `json:"price_cents"`
}

// SaleReturn is an unapproved return record; approval is an external
// administrative action.
type SaleReturn struct {
	ID        int32     `json:"id"`
	SaleID    int32     `json:"sale_id"`
	ArticleID int32     `json:"article_id"`
	Reason    string    `json:"reason"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}
