package postgres

import (
	"context"
	"database/sql"
	"time"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, role, status, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		u.Username, u.PasswordHash, u.Role, u.Status, time.Now()).Scan(&u.ID, &u.CreatedAt)
	return storeErr("user.Create", err)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, status, created_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt)
	if err != nil {
		return nil, storeErr("user.GetByID", notFound(err, "user", id))
	}
	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, status, created_at FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt)
	if err != nil {
		return nil, storeErr("user.GetByUsername", notFound(err, "user", username))
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, password_hash, role, status, created_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, storeErr("user.List", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt); err != nil {
			return nil, storeErr("user.List", err)
		}
		users = append(users, u)
	}
	return users, storeErr("user.List", rows.Err())
}
