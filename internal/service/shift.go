package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shiftboard/internal/common/logger"
	"shiftboard/internal/config"
	"shiftboard/internal/domain"
	"shiftboard/internal/repository"
	"shiftboard/internal/timeslot"
)

type ShiftService struct {
	shifts repository.ShiftsRepo
	users  repository.UsersRepo
	pub    EventPublisher
	lg     *logger.Logger
	policy config.Policy
}

// Upsert validates and applies one cell transition. All input is
// checked before any mutation; the store guarantees a single logical
// record per key afterwards.
func (s *ShiftService) Upsert(ctx context.Context, req domain.UpsertShiftRequest) (domain.ShiftCell, error) {
	if !validDate(req.Date) {
		return domain.ShiftCell{}, fmt.Errorf("date %q must be YYYY-MM-DD: %w", req.Date, domain.ErrValidation)
	}
	if !timeslot.Valid(req.SlotIndex) {
		return domain.ShiftCell{}, fmt.Errorf("slot_index %d out of [0,%d): %w", req.SlotIndex, timeslot.Count(), domain.ErrInvalidSlot)
	}
	status := domain.ShiftStatus(req.Status)
	if !status.Valid() {
		return domain.ShiftCell{}, fmt.Errorf("status %q: %w", req.Status, domain.ErrValidation)
	}
	name := strings.TrimSpace(req.ReservedName)
	if status == domain.StatusReserved && name == "" {
		return domain.ShiftCell{}, fmt.Errorf("reserved_name is required for status=reserved: %w", domain.ErrValidation)
	}

	user, err := s.users.GetUser(ctx, req.UserID)
	if err != nil {
		return domain.ShiftCell{}, err
	}

	cell, err := s.shifts.Upsert(ctx, repository.UpsertShiftParams{
		UserID:          req.UserID,
		Date:            req.Date,
		SlotIndex:       req.SlotIndex,
		Status:          status,
		ReservedName:    name,
		AmountDelta:     req.AmountDelta,
		ExpectedVersion: req.ExpectedVersion,
		ResetAmount:     s.policy.ResetAmountOnClear,
	})
	if err != nil {
		return domain.ShiftCell{}, err
	}

	s.lg.Info("shift_upserted", map[string]any{
		"user_id": cell.UserID, "date": cell.Date, "slot_index": cell.SlotIndex,
		"status": string(cell.Status), "version": cell.Version,
	})
	publishEvent(ctx, s.pub, s.lg, "shift.updated."+string(user.Category), domain.ShiftUpdatedEvent{
		UserID:       cell.UserID,
		Category:     user.Category,
		Date:         cell.Date,
		SlotIndex:    cell.SlotIndex,
		Status:       cell.Status,
		ReservedName: cell.ReservedName,
		TotalAmount:  cell.TotalAmount,
		Version:      cell.Version,
		OccurredAt:   time.Now().UTC(),
	})
	return cell, nil
}

// GetShiftsForDate returns the day's non-empty cells for one category.
// Absent cells mean empty; callers cross-join against the directory.
func (s *ShiftService) GetShiftsForDate(ctx context.Context, category domain.Category, date string) ([]domain.ShiftCell, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("category %q: %w", category, domain.ErrValidation)
	}
	if !validDate(date) {
		return nil, fmt.Errorf("date %q must be YYYY-MM-DD: %w", date, domain.ErrValidation)
	}

	all, err := s.shifts.ListForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	var cells []domain.ShiftCell
	for _, dc := range all {
		if dc.UserCategory == nil || *dc.UserCategory != category {
			continue
		}
		cells = append(cells, dc.Cell)
	}
	return cells, nil
}
