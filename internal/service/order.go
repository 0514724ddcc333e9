package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shiftboard/internal/common/logger"
	"shiftboard/internal/config"
	"shiftboard/internal/domain"
	"shiftboard/internal/repository"
	"shiftboard/internal/timeslot"
)

type OrderService struct {
	orders repository.OrdersRepo
	pub    EventPublisher
	lg     *logger.Logger
	policy config.Policy
}

func (s *OrderService) validateKey(date, category string, slotIndex int) (domain.Category, error) {
	if !validDate(date) {
		return "", fmt.Errorf("date %q must be YYYY-MM-DD: %w", date, domain.ErrValidation)
	}
	cat := domain.Category(category)
	if !cat.Valid() {
		return "", fmt.Errorf("category %q: %w", category, domain.ErrValidation)
	}
	if !timeslot.Valid(slotIndex) {
		return "", fmt.Errorf("slot_index %d out of [0,%d): %w", slotIndex, timeslot.Count(), domain.ErrInvalidSlot)
	}
	return cat, nil
}

// AddLine appends one live line. Duplicate items are valid and summed
// separately; they model repeat orders.
func (s *OrderService) AddLine(ctx context.Context, req domain.AddOrderLineRequest) (domain.OrderLine, error) {
	cat, err := s.validateKey(req.Date, req.Category, req.SlotIndex)
	if err != nil {
		return domain.OrderLine{}, err
	}
	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return domain.OrderLine{}, fmt.Errorf("item_name is required: %w", domain.ErrValidation)
	}
	if req.UnitPrice < 0 {
		return domain.OrderLine{}, fmt.Errorf("unit_price %d must not be negative: %w", req.UnitPrice, domain.ErrValidation)
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return domain.OrderLine{}, fmt.Errorf("quantity %d must be positive: %w", req.Quantity, domain.ErrValidation)
	}

	line, err := s.orders.AddLine(ctx, domain.OrderLine{
		Date:      req.Date,
		Category:  cat,
		SlotIndex: req.SlotIndex,
		ItemName:  name,
		UnitPrice: req.UnitPrice,
		Quantity:  qty,
	})
	if err != nil {
		return domain.OrderLine{}, err
	}
	s.lg.Debug("order_line_added", map[string]any{
		"date": line.Date, "category": string(line.Category), "slot_index": line.SlotIndex,
		"item": line.ItemName, "unit_price": line.UnitPrice, "quantity": line.Quantity,
	})
	return line, nil
}

func (s *OrderService) ListLines(ctx context.Context, date, category string, slotIndex int) ([]domain.OrderLine, error) {
	cat, err := s.validateKey(date, category, slotIndex)
	if err != nil {
		return nil, err
	}
	return s.orders.ListLines(ctx, date, cat, slotIndex)
}

func (s *OrderService) DeleteLine(ctx context.Context, id int64) error {
	return s.orders.DeleteLine(ctx, id)
}

// Finish closes out the slot's service window: snapshots the live
// lines, reconciles the total into the shift cell, and (per policy)
// archives the lines.
func (s *OrderService) Finish(ctx context.Context, req domain.FinishBatchRequest) (domain.OrderBatch, error) {
	cat, err := s.validateKey(req.Date, req.Category, req.SlotIndex)
	if err != nil {
		return domain.OrderBatch{}, err
	}

	batch, err := s.orders.FinishBatch(ctx, repository.FinishBatchParams{
		BatchID:    uuid.NewString(),
		Date:       req.Date,
		Category:   cat,
		SlotIndex:  req.SlotIndex,
		ClosedAt:   time.Now().UTC(),
		ClearLines: s.policy.ClearLinesOnFinish,
	})
	if err != nil {
		return domain.OrderBatch{}, err
	}

	s.lg.Info("order_batch_closed", map[string]any{
		"batch_id": batch.BatchID, "date": batch.Date, "category": string(batch.Category),
		"slot_index": batch.SlotIndex, "total": batch.Total, "lines": len(batch.Lines),
	})
	publishEvent(ctx, s.pub, s.lg, "orders.batch_closed."+string(cat), domain.BatchClosedEvent{
		BatchID:    batch.BatchID,
		Category:   batch.Category,
		Date:       batch.Date,
		SlotIndex:  batch.SlotIndex,
		Total:      batch.Total,
		LineCount:  len(batch.Lines),
		OccurredAt: time.Now().UTC(),
	})
	return batch, nil
}

func (s *OrderService) ListHistory(ctx context.Context) ([]domain.OrderBatch, error) {
	return s.orders.ListHistory(ctx)
}

func (s *OrderService) DeleteHistoryEntry(ctx context.Context, batchID string) error {
	if _, err := uuid.Parse(batchID); err != nil {
		return fmt.Errorf("batch id %q must be a UUID: %w", batchID, domain.ErrValidation)
	}
	return s.orders.DeleteHistoryEntry(ctx, batchID)
}
