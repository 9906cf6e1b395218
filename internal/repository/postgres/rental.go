package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"

	"github.com/lib/pq"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, code, client_dni, operator_id, start_date, end_date, total_cents, deposit_cents, late_fee_cents, payment_method, notes, status, created_at, updated_at`

func scanRental(row interface{ Scan(...any) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.Code, &rt.ClientDNI, &rt.OperatorID, &rt.StartDate, &rt.EndDate,
		&rt.TotalCents, &rt.DepositCents, &rt.LateFeeCents, &rt.PaymentMethod, &rt.Notes, &rt.Status,
		&rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// CreateWithItems writes the header, its items, and every article's RENTED
// transition in one transaction. Articles are locked and checked first, so a
// concurrent creation racing for the same article commits exactly once.
func (r *rentalRepository) CreateWithItems(ctx context.Context, rental *domain.Rental) error {
	return inTx(ctx, r.db, "rental.CreateWithItems", func(tx *sql.Tx) error {
		// Article availability check before any write; the whole unit rolls
		// back on the first conflict.
		holdUntil, err := time.Parse("2006-01-02", rental.EndDate)
		if err != nil {
			return fmt.Errorf("%w: end date %q", domain.ErrValidation, rental.EndDate)
		}
		for _, item := range rental.Items {
			var state domain.ArticleState
			err := tx.QueryRowContext(ctx, `SELECT state FROM articles WHERE id = $1 FOR UPDATE`, item.ArticleID).Scan(&state)
			if err != nil {
				return notFound(err, "article", item.ArticleID)
			}
			if state != domain.ArticleStateAvailable {
				return fmt.Errorf("%w: article %d is %s", domain.ErrArticleUnavailable, item.ArticleID, state)
			}
		}

		now := time.Now()
		err = tx.QueryRowContext(ctx,
			`INSERT INTO rentals (code, client_dni, operator_id, start_date, end_date, total_cents, deposit_cents, late_fee_cents, payment_method, notes, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10, $11, $12) RETURNING id, created_at`,
			rental.Code, rental.ClientDNI, rental.OperatorID, rental.StartDate, rental.EndDate,
			rental.TotalCents, rental.DepositCents, rental.PaymentMethod, rental.Notes,
			domain.RentalStatusActive, now, now).Scan(&rental.ID, &rental.CreatedAt)
		if err != nil {
			return err
		}
		rental.Status = domain.RentalStatusActive

		for i := range rental.Items {
			item := &rental.Items[i]
			item.RentalID = rental.ID
			item.Status = domain.RentalItemStatusOpen
			err = tx.QueryRowContext(ctx,
				`INSERT INTO rental_items (rental_id, article_id, article_type_id, description, price_cents, status, retained_cents, closing_comment)
				 VALUES ($1, $2, $3, $4, $5, $6, 0, '') RETURNING id`,
				item.RentalID, item.ArticleID, item.ArticleTypeID, item.Description, item.PriceCents,
				domain.RentalItemStatusOpen).Scan(&item.ID)
			if err != nil {
				return err
			}

			_, err = tx.ExecContext(ctx,
				`UPDATE articles SET state = $1, hold_until = $2, updated_at = $3 WHERE id = $4`,
				domain.ArticleStateRented, holdUntil, now, item.ArticleID)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO article_state_log (article_id, from_state, to_state, reason, comment, actor_id, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				item.ArticleID, domain.ArticleStateAvailable, domain.ArticleStateRented,
				domain.ReasonRentalOpen, rental.Code, rental.OperatorID, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("rental.GetByID", notFound(err, "rental", id))
	}
	items, err := r.itemsByRentalIDs(ctx, []int32{id})
	if err != nil {
		return nil, err
	}
	rt.Items = items[id]
	return rt, nil
}

func (r *rentalRepository) List(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("rental.List", err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	var ids []int32
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, storeErr("rental.List", err)
		}
		rentals = append(rentals, *rt)
		ids = append(ids, rt.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("rental.List", err)
	}
	if len(ids) == 0 {
		return rentals, nil
	}

	items, err := r.itemsByRentalIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range rentals {
		rentals[i].Items = items[rentals[i].ID]
	}
	return rentals, nil
}

func (r *rentalRepository) itemsByRentalIDs(ctx context.Context, ids []int32) (map[int32][]domain.RentalItem, error) {
	query := `SELECT id, rental_id, article_id, article_type_id, description, price_cents, status, retained_cents, closing_comment, closed_at
	          FROM rental_items WHERE rental_id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, storeErr("rental.items", err)
	}
	defer rows.Close()

	out := make(map[int32][]domain.RentalItem)
	for rows.Next() {
		var it domain.RentalItem
		if err := rows.Scan(&it.ID, &it.RentalID, &it.ArticleID, &it.ArticleTypeID, &it.Description,
			&it.PriceCents, &it.Status, &it.RetainedCents, &it.ClosingComment, &it.ClosedAt); err != nil {
			return nil, storeErr("rental.items", err)
		}
		out[it.RentalID] = append(out[it.RentalID], it)
	}
	return out, storeErr("rental.items", rows.Err())
}

func (r *rentalRepository) UpdateStatus(ctx context.Context, id int32, status domain.RentalStatus) (*domain.Rental, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rentals SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return nil, storeErr("rental.UpdateStatus", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: rental %d", domain.ErrNotFound, id)
	}
	return r.GetByID(ctx, id)
}

func (r *rentalRepository) GetItem(ctx context.Context, itemID int32) (*domain.RentalItem, error) {
	it := &domain.RentalItem{}
	query := `SELECT id, rental_id, article_id, article_type_id, description, price_cents, status, retained_cents, closing_comment, closed_at
	          FROM rental_items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(&it.ID, &it.RentalID, &it.ArticleID, &it.ArticleTypeID,
		&it.Description, &it.PriceCents, &it.Status, &it.RetainedCents, &it.ClosingComment, &it.ClosedAt)
	if err != nil {
		return nil, storeErr("rental.GetItem", notFound(err, "rental item", itemID))
	}
	return it, nil
}

// CloseItem sets the item's terminal status and drives the owning article's
// transition in the same transaction, so the item update and the article
// state change commit or roll back together.
func (r *rentalRepository) CloseItem(ctx context.Context, p repository.CloseItemParams) (*domain.RentalItem, error) {
	err := inTx(ctx, r.db, "rental.CloseItem", func(tx *sql.Tx) error {
		var articleID int32
		var status domain.RentalItemStatus
		err := tx.QueryRowContext(ctx,
			`SELECT article_id, status FROM rental_items WHERE id = $1 FOR UPDATE`, p.ItemID).
			Scan(&articleID, &status)
		if err != nil {
			return notFound(err, "rental item", p.ItemID)
		}
		if status != domain.RentalItemStatusOpen {
			return fmt.Errorf("%w: rental item %d already closed as %s", domain.ErrValidation, p.ItemID, status)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE rental_items SET status = $1, retained_cents = $2, closing_comment = $3, closed_at = $4 WHERE id = $5`,
			p.Status, p.RetainedCents, p.Comment, p.ClosedAt, p.ItemID)
		if err != nil {
			return err
		}

		var current domain.ArticleState
		err = tx.QueryRowContext(ctx, `SELECT state FROM articles WHERE id = $1 FOR UPDATE`, articleID).Scan(&current)
		if err != nil {
			return notFound(err, "article", articleID)
		}
		if err := domain.CheckTransition(current, p.ArticleTarget); err != nil {
			return fmt.Errorf("article %d: %w", articleID, err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE articles SET state = $1, hold_until = $2, updated_at = $3 WHERE id = $4`,
			p.ArticleTarget, p.HoldUntil, time.Now(), articleID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO article_state_log (article_id, from_state, to_state, reason, comment, actor_id, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			articleID, current, p.ArticleTarget, p.Reason, p.Comment, p.ActorID, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetItem(ctx, p.ItemID)
}

func (r *rentalRepository) AccrueLateFees(ctx context.Context, today string, dailyFeeCents int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rentals SET late_fee_cents = late_fee_cents + $1, updated_at = $2
		 WHERE status = $3 AND end_date < $4`,
		dailyFeeCents, time.Now(), domain.RentalStatusActive, today)
	if err != nil {
		return 0, storeErr("rental.AccrueLateFees", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr("rental.AccrueLateFees", err)
	}
	return n, nil
}
