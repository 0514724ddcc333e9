package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"shiftboard/internal/domain"
)

type MenuPG struct {
	pool *pgxpool.Pool
}

func NewMenuPG(pool *pgxpool.Pool) *MenuPG { return &MenuPG{pool: pool} }

func (r *MenuPG) CreateItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	var out domain.MenuItem
	err := r.pool.QueryRow(ctx, `
		INSERT INTO menus (category, owner_user_id, name, price, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, category, owner_user_id, name, price, description, created_at
	`, item.Category, item.OwnerUserID, item.Name, item.Price, item.Description).
		Scan(&out.ID, &out.Category, &out.OwnerUserID, &out.Name, &out.Price, &out.Description, &out.CreatedAt)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("insert menu item %q: %w", item.Name, err)
	}
	return out, nil
}

func (r *MenuPG) ListItems(ctx context.Context, category domain.Category) ([]domain.MenuItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category, owner_user_id, name, price, description, created_at
		FROM menus WHERE category = $1
		ORDER BY id
	`, category)
	if err != nil {
		return nil, fmt.Errorf("list menu %s: %w", category, err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Category, &m.OwnerUserID, &m.Name, &m.Price, &m.Description, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *MenuPG) DeleteItem(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menu item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
