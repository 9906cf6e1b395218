package postgres

import (
	"context"
	"database/sql"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"

	"github.com/lib/pq"
)

type saleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) repository.SaleRepository {
	return &saleRepository{db: db}
}

const saleColumns = `id, code, client_dni, operator_id, total_cents, payment_method, notes, sold_at`

func scanSale(row interface{ Scan(...any) error }) (*domain.Sale, error) {
	s := &domain.Sale{}
	err := row.Scan(&s.ID, &s.Code, &s.ClientDNI, &s.OperatorID, &s.TotalCents, &s.PaymentMethod, &s.Notes, &s.SoldAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *saleRepository) CreateWithItems(ctx context.Context, sale *domain.Sale) error {
	return inTx(ctx, r.db, "sale.CreateWithItems", func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO sales (code, client_dni, operator_id, total_cents, payment_method, notes, sold_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, sold_at`,
			sale.Code, sale.ClientDNI, sale.OperatorID, sale.TotalCents, sale.PaymentMethod, sale.Notes,
			time.Now()).Scan(&sale.ID, &sale.SoldAt)
		if err != nil {
			return err
		}
		for i := range sale.Items {
			item := &sale.Items[i]
			item.SaleID = sale.ID
			err = tx.QueryRowContext(ctx,
				`INSERT INTO sale_items (sale_id, article_id, article_type_id, description, price_cents)
				 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				item.SaleID, item.ArticleID, item.ArticleTypeID, item.Description, item.PriceCents).Scan(&item.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id int32) (*domain.Sale, error) {
	s, err := scanSale(r.db.QueryRowContext(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		return nil, storeErr("sale.GetByID", notFound(err, "sale", id))
	}
	items, err := r.itemsBySaleIDs(ctx, []int32{id})
	if err != nil {
		return nil, err
	}
	s.Items = items[id]
	return s, nil
}

func (r *saleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY sold_at DESC`)
	if err != nil {
		return nil, storeErr("sale.List", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	var ids []int32
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, storeErr("sale.List", err)
		}
		sales = append(sales, *s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("sale.List", err)
	}
	if len(ids) == 0 {
		return sales, nil
	}

	items, err := r.itemsBySaleIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		sales[i].Items = items[sales[i].ID]
	}
	return sales, nil
}

func (r *saleRepository) itemsBySaleIDs(ctx context.Context, ids []int32) (map[int32][]domain.SaleItem, error) {
	query := `SELECT id, sale_id, article_id, article_type_id, description, price_cents
	          FROM sale_items WHERE sale_id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, storeErr("sale.items", err)
	}
	defer rows.Close()

	out := make(map[int32][]domain.SaleItem)
	for rows.Next() {
		var it domain.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ArticleID, &it.ArticleTypeID, &it.Description, &it.PriceCents); err != nil {
			return nil, storeErr("sale.items", err)
		}
		out[it.SaleID] = append(out[it.SaleID], it)
	}
	return out, storeErr("sale.items", rows.Err())
}

func (r *saleRepository) CreateReturn(ctx context.Context, ret *domain.SaleReturn) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO sale_returns (sale_id, article_id, reason, approved, created_at)
		 VALUES ($1, $2, $3, false, $4) RETURNING id, created_at`,
		ret.SaleID, ret.ArticleID, ret.Reason, time.Now()).Scan(&ret.ID, &ret.CreatedAt)
	if err != nil {
		return storeErr("sale.CreateReturn", err)
	}
	ret.Approved = false
	return nil
}
