package repository

import (
	"context"
	"time"

	"suitrental-backend/internal/domain"
)

// ArticleFilter narrows inventory listings.
type ArticleFilter struct {
	State  domain.ArticleState
	TypeID int32
	Search string
}

type ArticleRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Article, error)
	List(ctx context.Context, filter ArticleFilter) ([]domain.Article, error)

	// Transition applies a validated state change atomically: the article row
	// is locked, reachability is re-checked against the locked state, the new
	// state and hold-until are written, and an audit entry is appended, all
	// in one transaction.
	Transition(ctx context.Context, tr domain.StateTransition, holdUntil *time.Time) (*domain.Article, error)

	// ListHoldExpired returns articles in the given state whose hold-until has
	// passed as of now.
	ListHoldExpired(ctx context.Context, state domain.ArticleState, now time.Time) ([]domain.Article, error)

	ListTransitions(ctx context.Context, articleID int32, limit int32) ([]domain.StateTransition, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByDNI(ctx context.Context, dni string) (*domain.Client, error)
	List(ctx context.Context, search string, limit, offset int32) ([]domain.Client, int32, error)
	Update(ctx context.Context, client *domain.Client) error
	// Delete moves the record into the trash table and removes it, atomically.
	Delete(ctx context.Context, dni string) error
	ListTrash(ctx context.Context) ([]domain.TrashedClient, error)
}

// CloseItemParams carries everything needed to close one rental item and move
// its article in a single transaction.
type CloseItemParams struct {
	ItemID        int32
	Status        domain.RentalItemStatus
	RetainedCents int64
	Comment       string
	ArticleTarget domain.ArticleState
	HoldUntil     *time.Time
	Reason        string
	ActorID       int32
	ClosedAt      time.Time
}

type RentalRepository interface {
	// CreateWithItems persists the header, its line items, and the RENTED
	// transition of every referenced article as one transaction. If any
	// article is not AVAILABLE the whole unit rolls back with
	// domain.ErrArticleUnavailable.
	CreateWithItems(ctx context.Context, rental *domain.Rental) error

	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	List(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	UpdateStatus(ctx context.Context, id int32, status domain.RentalStatus) (*domain.Rental, error)

	GetItem(ctx context.Context, itemID int32) (*domain.RentalItem, error)
	// CloseItem updates the item and drives its article transition in one
	// transaction; only OPEN items can be closed.
	CloseItem(ctx context.Context, p CloseItemParams) (*domain.RentalItem, error)

	// AccrueLateFees adds dailyFeeCents to every ACTIVE rental whose end date
	// is before today, returning the number of rentals touched.
	AccrueLateFees(ctx context.Context, today string, dailyFeeCents int64) (int64, error)
}

type SaleRepository interface {
	// CreateWithItems persists the header and its line items atomically.
	CreateWithItems(ctx context.Context, sale *domain.Sale) error
	GetByID(ctx context.Context, id int32) (*domain.Sale, error)
	List(ctx context.Context) ([]domain.Sale, error)
	CreateReturn(ctx context.Context, ret *domain.SaleReturn) error
}

type SuitRepository interface {
	Create(ctx context.Context, suit *domain.Suit) error
	GetByID(ctx context.Context, id int32) (*domain.Suit, error)
	List(ctx context.Context) ([]domain.Suit, error)
	// Update rewrites the suit row and, when pieces is non-nil, replaces the
	// piece set in the same transaction.
	Update(ctx context.Context, suit *domain.Suit, pieces []domain.SuitPiece) (*domain.Suit, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, s *domain.Settings) (*domain.Settings, error)
}

type ReportRepository interface {
	// Dataset returns the uniform report rows for [start, end] inclusive,
	// ordered by date descending then code so reruns are identical.
	Dataset(ctx context.Context, typ domain.ReportType, start, end string) ([]domain.DatasetRow, error)
	CreateRequest(ctx context.Context, req *domain.ReportRequest) error
	History(ctx context.Context, limit int32) ([]domain.ReportRequest, error)

	// Dashboard reads.
	CountActiveRentals(ctx context.Context) (int32, error)
	CountUpcomingRentals(ctx context.Context, today string) (int32, error)
	RentalRevenueBetween(ctx context.Context, from, to time.Time) (int64, error)
	SalesRevenueBetween(ctx context.Context, from, to time.Time) (int64, error)
	RecentRentals(ctx context.Context, limit int32) ([]domain.Rental, error)
	RecentSales(ctx context.Context, limit int32) ([]domain.Sale, error)
}
