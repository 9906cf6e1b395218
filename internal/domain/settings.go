package domain

import "time"

// Settings is the single-row shop configuration (id is always 1).
type Settings struct {
	ID                      int32     `json:"id"`
	ShopName                string    `json:"shop_name"`
	DefaultMaintenanceHours int32     `json:"default_maintenance_hours"`
	DailyLateFeeCents       int64     `json:"daily_late_fee_cents"`
	UpdatedAt               time.Time `json:"updated_at"`
}
