package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shiftboard/internal/domain"
)

type ShiftsPG struct {
	pool *pgxpool.Pool
}

func NewShiftsPG(pool *pgxpool.Pool) *ShiftsPG { return &ShiftsPG{pool: pool} }

// Upsert writes exactly one logical record for (user_id, date,
// slot_index). The row is locked for the duration of the transaction,
// so concurrent writers to the same key serialize at the store.
func (r *ShiftsPG) Upsert(ctx context.Context, p UpsertShiftParams) (domain.ShiftCell, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.ShiftCell{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var (
		curID      int64
		curVersion int64
	)
	exists := true
	err = tx.QueryRow(ctx, `
		SELECT id, version FROM shifts
		WHERE user_id = $1 AND date = $2::date AND slot_index = $3
		FOR UPDATE
	`, p.UserID, p.Date, p.SlotIndex).Scan(&curID, &curVersion)
	if errors.Is(err, pgx.ErrNoRows) {
		exists = false
		err = nil
	}
	if err != nil {
		return domain.ShiftCell{}, fmt.Errorf("lock shift (%d,%s,%d): %w", p.UserID, p.Date, p.SlotIndex, err)
	}

	if p.ExpectedVersion != nil {
		have := int64(0)
		if exists {
			have = curVersion
		}
		if have != *p.ExpectedVersion {
			err = fmt.Errorf("shift (%d,%s,%d) version %d, expected %d: %w",
				p.UserID, p.Date, p.SlotIndex, have, *p.ExpectedVersion, domain.ErrConflict)
			return domain.ShiftCell{}, err
		}
	}

	// Clearing with the reset policy removes the row: absent == empty,
	// and the accumulated amount is dropped deliberately.
	if p.Status == domain.StatusEmpty && p.ResetAmount {
		if exists {
			if _, err = tx.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, curID); err != nil {
				return domain.ShiftCell{}, fmt.Errorf("clear shift (%d,%s,%d): %w", p.UserID, p.Date, p.SlotIndex, err)
			}
		}
		if err = tx.Commit(ctx); err != nil {
			return domain.ShiftCell{}, err
		}
		return domain.ShiftCell{
			UserID:    p.UserID,
			Date:      p.Date,
			SlotIndex: p.SlotIndex,
			Status:    domain.StatusEmpty,
		}, nil
	}

	name := p.ReservedName
	if p.Status != domain.StatusReserved {
		name = ""
	}

	var cell domain.ShiftCell
	err = tx.QueryRow(ctx, `
		INSERT INTO shifts (user_id, date, slot_index, status, reserved_name, total_amount, version)
		VALUES ($1, $2::date, $3, $4, $5, GREATEST($6, 0), 1)
		ON CONFLICT (user_id, date, slot_index) DO UPDATE SET
			status        = EXCLUDED.status,
			reserved_name = EXCLUDED.reserved_name,
			total_amount  = GREATEST(shifts.total_amount + $6, 0),
			version       = shifts.version + 1,
			updated_at    = now()
		RETURNING id, user_id, to_char(date, 'YYYY-MM-DD'), slot_index, status, reserved_name, total_amount, version, updated_at
	`, p.UserID, p.Date, p.SlotIndex, p.Status, name, p.AmountDelta).
		Scan(&cell.ID, &cell.UserID, &cell.Date, &cell.SlotIndex, &cell.Status, &cell.ReservedName, &cell.TotalAmount, &cell.Version, &cell.UpdatedAt)
	if err != nil {
		return domain.ShiftCell{}, fmt.Errorf("upsert shift (%d,%s,%d): %w", p.UserID, p.Date, p.SlotIndex, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return domain.ShiftCell{}, err
	}
	return cell, nil
}

// ListForDate returns every cell for the day together with the owning
// user's category; the category is nil when the user row is gone.
func (r *ShiftsPG) ListForDate(ctx context.Context, date string) ([]DatedCell, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.user_id, to_char(s.date, 'YYYY-MM-DD'), s.slot_index,
		       s.status, s.reserved_name, s.total_amount, s.version, s.updated_at,
		       u.category
		FROM shifts s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.date = $1::date
		ORDER BY s.user_id, s.slot_index
	`, date)
	if err != nil {
		return nil, fmt.Errorf("list shifts %s: %w", date, err)
	}
	defer rows.Close()

	var cells []DatedCell
	for rows.Next() {
		var dc DatedCell
		if err := rows.Scan(
			&dc.Cell.ID, &dc.Cell.UserID, &dc.Cell.Date, &dc.Cell.SlotIndex,
			&dc.Cell.Status, &dc.Cell.ReservedName, &dc.Cell.TotalAmount,
			&dc.Cell.Version, &dc.Cell.UpdatedAt, &dc.UserCategory,
		); err != nil {
			return nil, err
		}
		cells = append(cells, dc)
	}
	return cells, rows.Err()
}
