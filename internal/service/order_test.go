package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftboard/internal/common/logger"
	"shiftboard/internal/config"
	"shiftboard/internal/domain"
	"shiftboard/internal/repository"
)

type fakeOrders struct {
	addFn     func(ctx context.Context, line domain.OrderLine) (domain.OrderLine, error)
	listFn    func(ctx context.Context, date string, category domain.Category, slotIndex int) ([]domain.OrderLine, error)
	deleteFn  func(ctx context.Context, id int64) error
	finishFn  func(ctx context.Context, p repository.FinishBatchParams) (domain.OrderBatch, error)
	historyFn func(ctx context.Context) ([]domain.OrderBatch, error)
	delHistFn func(ctx context.Context, batchID string) error
}

func (f fakeOrders) AddLine(ctx context.Context, line domain.OrderLine) (domain.OrderLine, error) {
	if f.addFn == nil {
		line.ID = 1
		return line, nil
	}
	return f.addFn(ctx, line)
}

func (f fakeOrders) ListLines(ctx context.Context, date string, category domain.Category, slotIndex int) ([]domain.OrderLine, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, date, category, slotIndex)
}

func (f fakeOrders) DeleteLine(ctx context.Context, id int64) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func (f fakeOrders) FinishBatch(ctx context.Context, p repository.FinishBatchParams) (domain.OrderBatch, error) {
	if f.finishFn == nil {
		return domain.OrderBatch{BatchID: p.BatchID}, nil
	}
	return f.finishFn(ctx, p)
}

func (f fakeOrders) ListHistory(ctx context.Context) ([]domain.OrderBatch, error) {
	if f.historyFn == nil {
		return nil, nil
	}
	return f.historyFn(ctx)
}

func (f fakeOrders) DeleteHistoryEntry(ctx context.Context, batchID string) error {
	if f.delHistFn == nil {
		return nil
	}
	return f.delHistFn(ctx, batchID)
}

func newOrderService(orders repository.OrdersRepo, pol config.Policy) *OrderService {
	return &OrderService{orders: orders, lg: logger.New("test"), policy: pol}
}

func TestAddLineDefaultsQuantity(t *testing.T) {
	svc := newOrderService(fakeOrders{}, config.Default().Policy)

	line, err := svc.AddLine(context.Background(), domain.AddOrderLineRequest{
		Date: "2026-08-29", Category: "maid", SlotIndex: 1,
		ItemName: "Oolong Tea", UnitPrice: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
}

func TestAddLineValidation(t *testing.T) {
	cases := []struct {
		name    string
		req     domain.AddOrderLineRequest
		wantErr error
	}{
		{
			name:    "negative price",
			req:     domain.AddOrderLineRequest{Date: "2026-08-29", Category: "host", SlotIndex: 0, ItemName: "Cola", UnitPrice: -1},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "negative quantity",
			req:     domain.AddOrderLineRequest{Date: "2026-08-29", Category: "host", SlotIndex: 0, ItemName: "Cola", UnitPrice: 100, Quantity: -2},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "blank item",
			req:     domain.AddOrderLineRequest{Date: "2026-08-29", Category: "host", SlotIndex: 0, ItemName: "  ", UnitPrice: 100},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "bad category",
			req:     domain.AddOrderLineRequest{Date: "2026-08-29", Category: "vip", SlotIndex: 0, ItemName: "Cola", UnitPrice: 100},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "bad slot",
			req:     domain.AddOrderLineRequest{Date: "2026-08-29", Category: "host", SlotIndex: 9, ItemName: "Cola", UnitPrice: 100},
			wantErr: domain.ErrInvalidSlot,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			mutated := false
			svc := newOrderService(fakeOrders{addFn: func(_ context.Context, l domain.OrderLine) (domain.OrderLine, error) {
				mutated = true
				return l, nil
			}}, config.Default().Policy)

			_, err := svc.AddLine(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, mutated)
		})
	}
}

func TestFinishCarriesPolicyAndBatchID(t *testing.T) {
	var got repository.FinishBatchParams
	svc := newOrderService(fakeOrders{finishFn: func(_ context.Context, p repository.FinishBatchParams) (domain.OrderBatch, error) {
		got = p
		return domain.OrderBatch{BatchID: p.BatchID, Total: 450}, nil
	}}, config.Default().Policy)

	batch, err := svc.Finish(context.Background(), domain.FinishBatchRequest{
		Date: "2026-08-29", Category: "host", SlotIndex: 3,
	})
	require.NoError(t, err)
	assert.True(t, got.ClearLines, "default policy archives lines on finish")
	_, err = uuid.Parse(batch.BatchID)
	assert.NoError(t, err, "batch id is a UUID")
	assert.Equal(t, int64(450), batch.Total)
}

func TestDeleteHistoryEntryRejectsNonUUID(t *testing.T) {
	called := false
	svc := newOrderService(fakeOrders{delHistFn: func(context.Context, string) error {
		called = true
		return nil
	}}, config.Default().Policy)

	err := svc.DeleteHistoryEntry(context.Background(), "42")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, called)
}
