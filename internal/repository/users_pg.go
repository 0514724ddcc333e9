package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shiftboard/internal/domain"
)

type UsersPG struct {
	pool *pgxpool.Pool
}

func NewUsersPG(pool *pgxpool.Pool) *UsersPG { return &UsersPG{pool: pool} }

func (r *UsersPG) CreateUser(ctx context.Context, name string, category domain.Category, iconURL string) (domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, category, icon_url)
		VALUES ($1, $2, $3)
		RETURNING id, name, category, icon_url, created_at
	`, name, category, iconURL).Scan(&u.ID, &u.Name, &u.Category, &u.IconURL, &u.CreatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user %q: %w", name, err)
	}
	return u, nil
}

func (r *UsersPG) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, category, icon_url, created_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Category, &u.IconURL, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// ListUsers returns the directory for one category in registration
// order, which is also the column order of the shift view.
func (r *UsersPG) ListUsers(ctx context.Context, category domain.Category) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, category, icon_url, created_at
		FROM users WHERE category = $1
		ORDER BY id
	`, category)
	if err != nil {
		return nil, fmt.Errorf("list users %s: %w", category, err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Category, &u.IconURL, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteUser removes the user; shift rows and owned menu rows go with
// it via ON DELETE CASCADE.
func (r *UsersPG) DeleteUser(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
