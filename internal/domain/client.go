package domain

import "time"

// Client is keyed by national ID (DNI). Orders reference clients by this key,
// never by copy beyond the display-name snapshot on report rows.
type Client struct {
	DNI         string    `json:"dni"`
	Names       string    `json:"names"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TrashedClient is a client record moved to the trash table on delete.
type TrashedClient struct {
	Client
	DeletedAt time.Time `json:"deleted_at"`
}
