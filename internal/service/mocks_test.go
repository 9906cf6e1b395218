package service

import (
	"context"
	"io"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
	"suitrental-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// MockArticleRepo
type MockArticleRepo struct {
	mock.Mock
}

func (m *MockArticleRepo) GetByID(ctx context.Context, id int32) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}
func (m *MockArticleRepo) List(ctx context.Context, filter repository.ArticleFilter) ([]domain.Article, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}
func (m *MockArticleRepo) Transition(ctx context.Context, tr domain.StateTransition, holdUntil *time.Time) (*domain.Article, error) {
	args := m.Called(ctx, tr, holdUntil)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}
func (m *MockArticleRepo) ListHoldExpired(ctx context.Context, state domain.ArticleState, now time.Time) ([]domain.Article, error) {
	args := m.Called(ctx, state, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}
func (m *MockArticleRepo) ListTransitions(ctx context.Context, articleID int32, limit int32) ([]domain.StateTransition, error) {
	args := m.Called(ctx, articleID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StateTransition), args.Error(1)
}

// MockClientRepo
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) GetByDNI(ctx context.Context, dni string) (*domain.Client, error) {
	args := m.Called(ctx, dni)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) List(ctx context.Context, search string, limit, offset int32) ([]domain.Client, int32, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Client), args.Get(1).(int32), args.Error(2)
}
func (m *MockClientRepo) Update(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) Delete(ctx context.Context, dni string) error {
	args := m.Called(ctx, dni)
	return args.Error(0)
}
func (m *MockClientRepo) ListTrash(ctx context.Context) ([]domain.TrashedClient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrashedClient), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateWithItems(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) List(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) UpdateStatus(ctx context.Context, id int32, status domain.RentalStatus) (*domain.Rental, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetItem(ctx context.Context, itemID int32) (*domain.RentalItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalItem), args.Error(1)
}
func (m *MockRentalRepo) CloseItem(ctx context.Context, p repository.CloseItemParams) (*domain.RentalItem, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalItem), args.Error(1)
}
func (m *MockRentalRepo) AccrueLateFees(ctx context.Context, today string, dailyFeeCents int64) (int64, error) {
	args := m.Called(ctx, today, dailyFeeCents)
	return args.Get(0).(int64), args.Error(1)
}

// MockSaleRepo
type MockSaleRepo struct {
	mock.Mock
}

func (m *MockSaleRepo) CreateWithItems(ctx context.Context, sale *domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}
func (m *MockSaleRepo) GetByID(ctx context.Context, id int32) (*domain.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleRepo) List(ctx context.Context) ([]domain.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}
func (m *MockSaleRepo) CreateReturn(ctx context.Context, ret *domain.SaleReturn) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

// MockSuitRepo
type MockSuitRepo struct {
	mock.Mock
}

func (m *MockSuitRepo) Create(ctx context.Context, suit *domain.Suit) error {
	args := m.Called(ctx, suit)
	return args.Error(0)
}
func (m *MockSuitRepo) GetByID(ctx context.Context, id int32) (*domain.Suit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Suit), args.Error(1)
}
func (m *MockSuitRepo) List(ctx context.Context) ([]domain.Suit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Suit), args.Error(1)
}
func (m *MockSuitRepo) Update(ctx context.Context, suit *domain.Suit, pieces []domain.SuitPiece) (*domain.Suit, error) {
	args := m.Called(ctx, suit, pieces)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Suit), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}
func (m *MockSettingsRepo) Update(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Dataset(ctx context.Context, typ domain.ReportType, start, end string) ([]domain.DatasetRow, error) {
	args := m.Called(ctx, typ, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DatasetRow), args.Error(1)
}
func (m *MockReportRepo) CreateRequest(ctx context.Context, req *domain.ReportRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockReportRepo) History(ctx context.Context, limit int32) ([]domain.ReportRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportRequest), args.Error(1)
}
func (m *MockReportRepo) CountActiveRentals(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockReportRepo) CountUpcomingRentals(ctx context.Context, today string) (int32, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockReportRepo) RentalRevenueBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockReportRepo) SalesRevenueBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockReportRepo) RecentRentals(ctx context.Context, limit int32) ([]domain.Rental, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockReportRepo) RecentSales(ctx context.Context, limit int32) ([]domain.Sale, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Generate(userID int32, username, role string) (string, error) {
	args := m.Called(userID, username, role)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) Validate(tokenString string) (*security.OperatorClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.OperatorClaims), args.Error(1)
}

// MockArtifactStore
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}
func (m *MockArtifactStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockArtifactStore) Exists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockArtifactStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
