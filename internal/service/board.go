package service

import (
	"context"
	"fmt"

	"shiftboard/internal/common/logger"
	"shiftboard/internal/domain"
	"shiftboard/internal/repository"
	"shiftboard/internal/timeslot"
)

// BoardService is the one place the directory, shift state, and order
// totals are joined into the read view.
type BoardService struct {
	users  repository.UsersRepo
	shifts repository.ShiftsRepo
	lg     *logger.Logger
}

// BuildShiftView produces one row per time slot and one cell per staff
// member of the category. Users with no shift rows render as empty
// across all slots. Shift rows whose user is gone are dropped with a
// warning; that is policy, not a defect.
func (s *BoardService) BuildShiftView(ctx context.Context, category domain.Category, date string) (domain.ShiftView, error) {
	if !category.Valid() {
		return domain.ShiftView{}, fmt.Errorf("category %q: %w", category, domain.ErrValidation)
	}
	if !validDate(date) {
		return domain.ShiftView{}, fmt.Errorf("date %q must be YYYY-MM-DD: %w", date, domain.ErrValidation)
	}

	users, err := s.users.ListUsers(ctx, category)
	if err != nil {
		return domain.ShiftView{}, err
	}
	cells, err := s.shifts.ListForDate(ctx, date)
	if err != nil {
		return domain.ShiftView{}, err
	}

	col := make(map[int64]int, len(users))
	for i, u := range users {
		col[u.ID] = i
	}

	labels := timeslot.Labels()
	rows := make([]domain.ViewRow, len(labels))
	for i := range rows {
		rows[i].Slot = domain.SlotInfo{Index: i, Label: labels[i]}
		rows[i].Cells = make([]domain.ViewCell, len(users))
		for j, u := range users {
			rows[i].Cells[j] = domain.ViewCell{UserID: u.ID, Status: domain.StatusEmpty}
		}
	}

	for _, dc := range cells {
		if dc.UserCategory == nil {
			s.lg.Warn("orphan_shift_dropped", map[string]any{
				"user_id": dc.Cell.UserID, "date": dc.Cell.Date, "slot_index": dc.Cell.SlotIndex,
			})
			continue
		}
		if *dc.UserCategory != category {
			continue
		}
		j, ok := col[dc.Cell.UserID]
		if !ok || !timeslot.Valid(dc.Cell.SlotIndex) {
			continue
		}
		rows[dc.Cell.SlotIndex].Cells[j] = domain.ViewCell{
			UserID:        dc.Cell.UserID,
			Status:        dc.Cell.Status,
			ReservedName:  dc.Cell.ReservedName,
			DisplayAmount: dc.Cell.TotalAmount,
		}
	}

	return domain.ShiftView{
		Date:     date,
		Category: category,
		Users:    users,
		Rows:     rows,
	}, nil
}
