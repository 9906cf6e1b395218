package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestClientRepository_GetByDNI(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewClientRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"dni", "names", "phone", "email", "description", "created_at"}).
			AddRow("12345678", "Ana Diaz", "+34600000000", "ana@example.com", "", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM clients WHERE dni").
			WithArgs("12345678").
			WillReturnRows(rows)

		client, err := repo.GetByDNI(ctx, "12345678")
		assert.NoError(t, err)
		assert.Equal(t, "Ana Diaz", client.Names)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM clients WHERE dni").
			WithArgs("00000000").
			WillReturnRows(sqlmock.NewRows([]string{"dni"}))

		_, err := repo.GetByDNI(ctx, "00000000")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestClientRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("MovesToTrash", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewClientRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO clients_trash").
			WithArgs(sqlmock.AnyArg(), "12345678").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM clients WHERE dni").
			WithArgs("12345678").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(ctx, "12345678"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownClientRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewClientRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO clients_trash").
			WithArgs(sqlmock.AnyArg(), "00000000").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.Delete(ctx, "00000000")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClientRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewClientRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count").
		WithArgs("%ana%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	rows := sqlmock.NewRows([]string{"dni", "names", "phone", "email", "description", "created_at"}).
		AddRow("12345678", "Ana Diaz", "+34600000000", "", "", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM clients WHERE names ILIKE").
		WithArgs("%ana%", int32(50), int32(0)).
		WillReturnRows(rows)

	clients, count, err := repo.List(ctx, "ana", 50, 0)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), count)
	assert.Len(t, clients, 1)
}
