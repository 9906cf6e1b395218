package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO clients (dni, names, phone, email, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		c.DNI, c.Names, c.Phone, c.Email, c.Description, time.Now()).Scan(&c.CreatedAt)
	return storeErr("client.Create", err)
}

func (r *clientRepository) GetByDNI(ctx context.Context, dni string) (*domain.Client, error) {
	c := &domain.Client{}
	err := r.db.QueryRowContext(ctx,
		`SELECT dni, names, phone, email, description, created_at FROM clients WHERE dni = $1`, dni).
		Scan(&c.DNI, &c.Names, &c.Phone, &c.Email, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, storeErr("client.GetByDNI", notFound(err, "client", dni))
	}
	return c, nil
}

func (r *clientRepository) List(ctx context.Context, search string, limit, offset int32) ([]domain.Client, int32, error) {
	query := `SELECT dni, names, phone, email, description, created_at FROM clients`
	args := []any{}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += ` WHERE names ILIKE $1 OR dni ILIKE $1`
	}

	var count int32
	countQuery := `SELECT count(*) FROM (` + query + `) AS sub`
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, storeErr("client.List", err)
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, storeErr("client.List", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.DNI, &c.Names, &c.Phone, &c.Email, &c.Description, &c.CreatedAt); err != nil {
			return nil, 0, storeErr("client.List", err)
		}
		clients = append(clients, c)
	}
	return clients, count, storeErr("client.List", rows.Err())
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET names = $1, phone = $2, email = $3, description = $4 WHERE dni = $5`,
		c.Names, c.Phone, c.Email, c.Description, c.DNI)
	if err != nil {
		return storeErr("client.Update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: client %s", domain.ErrNotFound, c.DNI)
	}
	return nil
}

// Delete moves the row to clients_trash and removes it in one transaction so
// a crash cannot drop the record without keeping its trash copy.
func (r *clientRepository) Delete(ctx context.Context, dni string) error {
	return inTx(ctx, r.db, "client.Delete", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO clients_trash (dni, names, phone, email, description, created_at, deleted_at)
			 SELECT dni, names, phone, email, description, created_at, $1 FROM clients WHERE dni = $2`,
			time.Now(), dni)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: client %s", domain.ErrNotFound, dni)
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM clients WHERE dni = $1`, dni)
		return err
	})
}

func (r *clientRepository) ListTrash(ctx context.Context) ([]domain.TrashedClient, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT dni, names, phone, email, description, created_at, deleted_at
		 FROM clients_trash ORDER BY deleted_at DESC`)
	if err != nil {
		return nil, storeErr("client.ListTrash", err)
	}
	defer rows.Close()

	var trashed []domain.TrashedClient
	for rows.Next() {
		var t domain.TrashedClient
		if err := rows.Scan(&t.DNI, &t.Names, &t.Phone, &t.Email, &t.Description, &t.CreatedAt, &t.DeletedAt); err != nil {
			return nil, storeErr("client.ListTrash", err)
		}
		trashed = append(trashed, t)
	}
	return trashed, storeErr("client.ListTrash", rows.Err())
}
