package service

import (
	"context"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
)

// TransitionInput carries a manual article state change request.
type TransitionInput struct {
	ArticleID int32
	Target    domain.ArticleState
	HoldHours *int32
	Reason    string
	Comment   string
}

type OrderItemInput struct {
	ArticleID     int32
	ArticleTypeID int32
	Description   string
	PriceCents    int64
}

type CreateRentalInput struct {
	ClientDNI     string
	StartDate     string
	EndDate       string
	TotalCents    int64
	DepositCents  int64
	PaymentMethod string
	Notes         string
	Items         []OrderItemInput
}

type CreateSaleInput struct {
	ClientDNI     string
	TotalCents    int64
	PaymentMethod string
	Notes         string
	Items         []OrderItemInput
}

type CloseItemInput struct {
	ItemID        int32
	Status        domain.RentalItemStatus
	RetainedCents int64
	Comment       string
}

type InventoryService interface {
	ListArticles(ctx context.Context, filter repository.ArticleFilter) ([]domain.Article, error)
	GetArticle(ctx context.Context, id int32) (*domain.Article, error)
	TransitionArticle(ctx context.Context, actorID int32, in TransitionInput) (*domain.Article, error)
	EnterMaintenance(ctx context.Context, actorID, articleID int32, hours int32, comment string) (*domain.Article, error)
	ArticleHistory(ctx context.Context, articleID int32) ([]domain.StateTransition, error)

	ListSuits(ctx context.Context) ([]domain.Suit, error)
	CreateSuit(ctx context.Context, suit *domain.Suit) error
	UpdateSuit(ctx context.Context, suit *domain.Suit, pieces []domain.SuitPiece) (*domain.Suit, error)
}

type RentalService interface {
	CreateRental(ctx context.Context, operatorID int32, in CreateRentalInput) (*domain.Rental, error)
	ListRentals(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	GetRental(ctx context.Context, id int32) (*domain.Rental, error)
	CloseRental(ctx context.Context, operatorID, id int32, status domain.RentalStatus) (*domain.Rental, error)
	CloseRentalItem(ctx context.Context, operatorID int32, in CloseItemInput) (*domain.RentalItem, error)
}

type SaleService interface {
	CreateSale(ctx context.Context, operatorID int32, in CreateSaleInput) (*domain.Sale, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
	GetSale(ctx context.Context, id int32) (*domain.Sale, error)
	RegisterSaleReturn(ctx context.Context, saleID, articleID int32, reason string) (*domain.SaleReturn, error)
}

type ClientService interface {
	CreateClient(ctx context.Context, client *domain.Client) error
	GetClient(ctx context.Context, dni string) (*domain.Client, error)
	ListClients(ctx context.Context, search string, limit, offset int32) ([]domain.Client, int32, error)
	UpdateClient(ctx context.Context, client *domain.Client) error
	DeleteClient(ctx context.Context, dni string) error
	ListTrash(ctx context.Context) ([]domain.TrashedClient, error)
}

type ReportService interface {
	BuildDataset(ctx context.Context, typ domain.ReportType, start, end string) ([]domain.DatasetRow, error)
	GenerateReport(ctx context.Context, operatorID int32, typ domain.ReportType, start, end string) (*domain.ReportRequest, error)
	History(ctx context.Context) ([]domain.ReportRequest, error)
}

type DashboardService interface {
	Summarize(ctx context.Context, now time.Time) (*domain.DashboardSummary, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, username, password string, role domain.UserRole) (*domain.User, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, s *domain.Settings) (*domain.Settings, error)
}
