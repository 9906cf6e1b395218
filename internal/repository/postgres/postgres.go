package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ArticleRepository
	repository.ClientRepository
	repository.RentalRepository
	repository.SaleRepository
	repository.SuitRepository
	repository.UserRepository
	repository.SettingsRepository
	repository.ReportRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		ArticleRepository:  NewArticleRepository(db),
		ClientRepository:   NewClientRepository(db),
		RentalRepository:   NewRentalRepository(db),
		SaleRepository:     NewSaleRepository(db),
		SuitRepository:     NewSuitRepository(db),
		UserRepository:     NewUserRepository(db),
		SettingsRepository: NewSettingsRepository(db),
		ReportRepository:   NewReportRepository(db),
	}
}

// storeErr wraps driver failures as domain.StoreError, passing through errors
// that already carry a domain kind.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrArticleUnavailable) ||
		errors.Is(err, domain.ErrValidation) {
		return err
	}
	return domain.NewStoreError(op, err)
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound with entity context.
func notFound(err error, entity string, key any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %v", domain.ErrNotFound, entity, key)
	}
	return err
}

// inTx runs fn inside a transaction, rolling back on error or panic.
func inTx(ctx context.Context, db *sql.DB, op string, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(op, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return storeErr(op, err)
	}
	if err := tx.Commit(); err != nil {
		return storeErr(op, err)
	}
	return nil
}
