package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
	"suitrental-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func testRental() *domain.Rental {
	return &domain.Rental{
		Code:          "RNT-TEST-0001",
		ClientDNI:     "12345678",
		OperatorID:    7,
		StartDate:     "2026-09-01",
		EndDate:       "2026-09-05",
		TotalCents:    15000,
		DepositCents:  5000,
		PaymentMethod: "CASH",
		Items: []domain.RentalItem{
			{ArticleID: 10, ArticleTypeID: 2, Description: "Navy suit 52", PriceCents: 15000},
		},
	}
}

func TestRentalRepository_CreateWithItems(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewRentalRepository(db)
		rental := testRental()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT state FROM articles WHERE id = (.+) FOR UPDATE").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow("AVAILABLE"))
		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(rental.Code, rental.ClientDNI, rental.OperatorID, rental.StartDate, rental.EndDate,
				rental.TotalCents, rental.DepositCents, rental.PaymentMethod, rental.Notes,
				domain.RentalStatusActive, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))
		mock.ExpectQuery("INSERT INTO rental_items").
			WithArgs(int32(1), int32(10), int32(2), "Navy suit 52", int64(15000), domain.RentalItemStatusOpen).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
		mock.ExpectExec("UPDATE articles SET state").
			WithArgs(domain.ArticleStateRented, sqlmock.AnyArg(), sqlmock.AnyArg(), int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO article_state_log").
			WithArgs(int32(10), domain.ArticleStateAvailable, domain.ArticleStateRented,
				domain.ReasonRentalOpen, rental.Code, rental.OperatorID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err = repo.CreateWithItems(ctx, rental)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), rental.ID)
		assert.Equal(t, domain.RentalStatusActive, rental.Status)
		assert.Equal(t, int32(21), rental.Items[0].ID)
		assert.Equal(t, domain.RentalItemStatusOpen, rental.Items[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ArticleNotAvailableRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewRentalRepository(db)
		rental := testRental()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT state FROM articles WHERE id = (.+) FOR UPDATE").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow("RENTED"))
		mock.ExpectRollback()

		err = repo.CreateWithItems(ctx, rental)
		assert.True(t, errors.Is(err, domain.ErrArticleUnavailable))
		assert.Zero(t, rental.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownArticleRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewRentalRepository(db)
		rental := testRental()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT state FROM articles WHERE id = (.+) FOR UPDATE").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"state"}))
		mock.ExpectRollback()

		err = repo.CreateWithItems(ctx, rental)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_CloseItem(t *testing.T) {
	ctx := context.Background()

	itemRow := func(status domain.RentalItemStatus) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "rental_id", "article_id", "article_type_id", "description",
			"price_cents", "status", "retained_cents", "closing_comment", "closed_at"}).
			AddRow(21, 1, 10, 2, "Navy suit 52", 15000, status, 2000, "torn lining", time.Now())
	}

	t.Run("DamagedReturn", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewRentalRepository(db)

		hold := time.Now().Add(24 * time.Hour)
		closedAt := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT article_id, status FROM rental_items WHERE id = (.+) FOR UPDATE").
			WithArgs(int32(21)).
			WillReturnRows(sqlmock.NewRows([]string{"article_id", "status"}).AddRow(10, "OPEN"))
		mock.ExpectExec("UPDATE rental_items SET status").
			WithArgs(domain.RentalItemStatusReturnedDamaged, int64(2000), "torn lining", closedAt, int32(21)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT state FROM articles WHERE id = (.+) FOR UPDATE").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow("RENTED"))
		mock.ExpectExec("UPDATE articles SET state").
			WithArgs(domain.ArticleStateMaintenance, sqlmock.AnyArg(), sqlmock.AnyArg(), int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO article_state_log").
			WithArgs(int32(10), domain.ArticleStateRented, domain.ArticleStateMaintenance,
				domain.ReasonItemDamaged, "torn lining", int32(7), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()
		mock.ExpectQuery("SELECT (.+) FROM rental_items WHERE id").
			WithArgs(int32(21)).
			WillReturnRows(itemRow(domain.RentalItemStatusReturnedDamaged))

		item, err := repo.CloseItem(ctx, repository.CloseItemParams{
			ItemID:        21,
			Status:        domain.RentalItemStatusReturnedDamaged,
			RetainedCents: 2000,
			Comment:       "torn lining",
			ArticleTarget: domain.ArticleStateMaintenance,
			HoldUntil:     &hold,
			Reason:        domain.ReasonItemDamaged,
			ActorID:       7,
			ClosedAt:      closedAt,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalItemStatusReturnedDamaged, item.Status)
		assert.Equal(t, int64(2000), item.RetainedCents)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyClosed", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewRentalRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT article_id, status FROM rental_items WHERE id = (.+) FOR UPDATE").
			WithArgs(int32(21)).
			WillReturnRows(sqlmock.NewRows([]string{"article_id", "status"}).AddRow(10, "RETURNED_OK"))
		mock.ExpectRollback()

		_, err = repo.CloseItem(ctx, repository.CloseItemParams{
			ItemID:        21,
			Status:        domain.RentalItemStatusReturnedOK,
			ArticleTarget: domain.ArticleStateAvailable,
			Reason:        domain.ReasonRentalReturn,
			ActorID:       7,
			ClosedAt:      time.Now(),
		})
		assert.True(t, errors.Is(err, domain.ErrValidation))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_AccrueLateFees(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()
	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE rentals SET late_fee_cents").
		WithArgs(int64(500), sqlmock.AnyArg(), domain.RentalStatusActive, "2026-09-01").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.AccrueLateFees(ctx, "2026-09-01", 500)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
