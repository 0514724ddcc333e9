package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shiftboard/internal/domain"
)

type OrdersPG struct {
	pool *pgxpool.Pool
}

func NewOrdersPG(pool *pgxpool.Pool) *OrdersPG { return &OrdersPG{pool: pool} }

func (r *OrdersPG) AddLine(ctx context.Context, line domain.OrderLine) (domain.OrderLine, error) {
	var out domain.OrderLine
	err := r.pool.QueryRow(ctx, `
		INSERT INTO order_lines (date, category, slot_index, item_name, unit_price, quantity)
		VALUES ($1::date, $2, $3, $4, $5, $6)
		RETURNING id, to_char(date, 'YYYY-MM-DD'), category, slot_index, item_name, unit_price, quantity, created_at
	`, line.Date, line.Category, line.SlotIndex, line.ItemName, line.UnitPrice, line.Quantity).
		Scan(&out.ID, &out.Date, &out.Category, &out.SlotIndex, &out.ItemName, &out.UnitPrice, &out.Quantity, &out.CreatedAt)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("insert order line (%s,%s,%d): %w", line.Date, line.Category, line.SlotIndex, err)
	}
	return out, nil
}

// ListLines returns live lines in insertion order; display order is
// append order and is never resorted.
func (r *OrdersPG) ListLines(ctx context.Context, date string, category domain.Category, slotIndex int) ([]domain.OrderLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, to_char(date, 'YYYY-MM-DD'), category, slot_index, item_name, unit_price, quantity, created_at
		FROM order_lines
		WHERE date = $1::date AND category = $2 AND slot_index = $3
		ORDER BY id
	`, date, category, slotIndex)
	if err != nil {
		return nil, fmt.Errorf("list order lines (%s,%s,%d): %w", date, category, slotIndex, err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.Date, &l.Category, &l.SlotIndex, &l.ItemName, &l.UnitPrice, &l.Quantity, &l.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *OrdersPG) DeleteLine(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM order_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order line %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order line %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// FinishBatch snapshots the live lines for the key into a durable
// batch, adds the total onto every reserved cell for the slot, and,
// when ClearLines is set, removes the live lines so a second finish of
// the same set cannot double-count.
func (r *OrdersPG) FinishBatch(ctx context.Context, p FinishBatchParams) (domain.OrderBatch, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.OrderBatch{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	rows, err := tx.Query(ctx, `
		SELECT id, item_name, unit_price, quantity
		FROM order_lines
		WHERE date = $1::date AND category = $2 AND slot_index = $3
		ORDER BY id
		FOR UPDATE
	`, p.Date, p.Category, p.SlotIndex)
	if err != nil {
		return domain.OrderBatch{}, fmt.Errorf("lock order lines (%s,%s,%d): %w", p.Date, p.Category, p.SlotIndex, err)
	}

	var (
		lineIDs []int64
		lines   []domain.BatchLine
		total   int64
	)
	for rows.Next() {
		var id int64
		var l domain.BatchLine
		if err = rows.Scan(&id, &l.ItemName, &l.UnitPrice, &l.Quantity); err != nil {
			rows.Close()
			return domain.OrderBatch{}, err
		}
		lineIDs = append(lineIDs, id)
		lines = append(lines, l)
		total += l.UnitPrice * int64(l.Quantity)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return domain.OrderBatch{}, err
	}
	if len(lines) == 0 {
		err = fmt.Errorf("no order lines for (%s,%s,%d): %w", p.Date, p.Category, p.SlotIndex, domain.ErrNotFound)
		return domain.OrderBatch{}, err
	}

	batch := domain.OrderBatch{
		BatchID:   p.BatchID,
		Date:      p.Date,
		Category:  p.Category,
		SlotIndex: p.SlotIndex,
		Lines:     lines,
		Total:     total,
		ClosedAt:  p.ClosedAt,
	}
	if _, err = tx.Exec(ctx, `
		INSERT INTO order_batches (batch_id, date, category, slot_index, total, closed_at)
		VALUES ($1, $2::date, $3, $4, $5, $6)
	`, batch.BatchID, batch.Date, batch.Category, batch.SlotIndex, batch.Total, batch.ClosedAt); err != nil {
		return domain.OrderBatch{}, fmt.Errorf("insert batch: %w", err)
	}
	for _, l := range lines {
		if _, err = tx.Exec(ctx, `
			INSERT INTO order_batch_lines (batch_id, item_name, unit_price, quantity)
			VALUES ($1, $2, $3, $4)
		`, batch.BatchID, l.ItemName, l.UnitPrice, l.Quantity); err != nil {
			return domain.OrderBatch{}, fmt.Errorf("insert batch line %s: %w", l.ItemName, err)
		}
	}

	// Additive reconciliation: repeated finishes accumulate, never
	// overwrite.
	if _, err = tx.Exec(ctx, `
		UPDATE shifts
		SET total_amount = total_amount + $1,
		    version      = version + 1,
		    updated_at   = now()
		WHERE date = $2::date AND slot_index = $3 AND status = 'reserved'
		  AND user_id IN (SELECT id FROM users WHERE category = $4)
	`, total, p.Date, p.SlotIndex, p.Category); err != nil {
		return domain.OrderBatch{}, fmt.Errorf("reconcile shift amount: %w", err)
	}

	if p.ClearLines {
		if _, err = tx.Exec(ctx, `DELETE FROM order_lines WHERE id = ANY($1)`, lineIDs); err != nil {
			return domain.OrderBatch{}, fmt.Errorf("archive order lines: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return domain.OrderBatch{}, err
	}
	return batch, nil
}

// ListHistory returns closed batches newest-first with their lines.
func (r *OrdersPG) ListHistory(ctx context.Context) ([]domain.OrderBatch, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.batch_id, to_char(b.date, 'YYYY-MM-DD'), b.category, b.slot_index, b.total, b.closed_at,
		       l.item_name, l.unit_price, l.quantity
		FROM order_batches b
		LEFT JOIN order_batch_lines l ON l.batch_id = b.batch_id
		ORDER BY b.closed_at DESC, b.batch_id, l.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var (
		batches []domain.OrderBatch
		cur     *domain.OrderBatch
	)
	for rows.Next() {
		var b domain.OrderBatch
		var itemName *string
		var unitPrice *int64
		var quantity *int
		if err := rows.Scan(&b.BatchID, &b.Date, &b.Category, &b.SlotIndex, &b.Total, &b.ClosedAt,
			&itemName, &unitPrice, &quantity); err != nil {
			return nil, err
		}
		if cur == nil || cur.BatchID != b.BatchID {
			batches = append(batches, b)
			cur = &batches[len(batches)-1]
		}
		if itemName != nil {
			cur.Lines = append(cur.Lines, domain.BatchLine{
				ItemName:  *itemName,
				UnitPrice: *unitPrice,
				Quantity:  *quantity,
			})
		}
	}
	return batches, rows.Err()
}

// DeleteHistoryEntry removes one batch and its snapshot lines; live
// order lines are untouched.
func (r *OrdersPG) DeleteHistoryEntry(ctx context.Context, batchID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM order_batches WHERE batch_id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("delete batch %s: %w", batchID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("batch %s: %w", batchID, domain.ErrNotFound)
	}
	return nil
}
