package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftboard/internal/common/logger"
	"shiftboard/internal/config"
	"shiftboard/internal/domain"
	"shiftboard/internal/repository"
)

type fakeShifts struct {
	upsertFn func(ctx context.Context, p repository.UpsertShiftParams) (domain.ShiftCell, error)
	listFn   func(ctx context.Context, date string) ([]repository.DatedCell, error)
}

func (f fakeShifts) Upsert(ctx context.Context, p repository.UpsertShiftParams) (domain.ShiftCell, error) {
	if f.upsertFn == nil {
		return domain.ShiftCell{}, nil
	}
	return f.upsertFn(ctx, p)
}

func (f fakeShifts) ListForDate(ctx context.Context, date string) ([]repository.DatedCell, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, date)
}

type fakeUsers struct {
	getFn    func(ctx context.Context, id int64) (domain.User, error)
	listFn   func(ctx context.Context, category domain.Category) ([]domain.User, error)
	createFn func(ctx context.Context, name string, category domain.Category, iconURL string) (domain.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (f fakeUsers) CreateUser(ctx context.Context, name string, category domain.Category, iconURL string) (domain.User, error) {
	if f.createFn == nil {
		return domain.User{ID: 1, Name: name, Category: category, IconURL: iconURL}, nil
	}
	return f.createFn(ctx, name, category, iconURL)
}

func (f fakeUsers) GetUser(ctx context.Context, id int64) (domain.User, error) {
	if f.getFn == nil {
		return domain.User{ID: id, Name: "staff", Category: domain.CategoryHost}, nil
	}
	return f.getFn(ctx, id)
}

func (f fakeUsers) ListUsers(ctx context.Context, category domain.Category) ([]domain.User, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, category)
}

func (f fakeUsers) DeleteUser(ctx context.Context, id int64) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func newShiftService(shifts repository.ShiftsRepo, users repository.UsersRepo, pol config.Policy) *ShiftService {
	return &ShiftService{
		shifts: shifts,
		users:  users,
		lg:     logger.New("test"),
		policy: pol,
	}
}

func TestUpsertReserved(t *testing.T) {
	var got repository.UpsertShiftParams
	shifts := fakeShifts{upsertFn: func(_ context.Context, p repository.UpsertShiftParams) (domain.ShiftCell, error) {
		got = p
		return domain.ShiftCell{
			ID: 7, UserID: p.UserID, Date: p.Date, SlotIndex: p.SlotIndex,
			Status: p.Status, ReservedName: p.ReservedName, Version: 1,
			UpdatedAt: time.Now().UTC(),
		}, nil
	}}
	svc := newShiftService(shifts, fakeUsers{}, config.Default().Policy)

	cell, err := svc.Upsert(context.Background(), domain.UpsertShiftRequest{
		UserID: 3, Date: "2026-08-29", SlotIndex: 2,
		Status: "reserved", ReservedName: "  A  ",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReserved, cell.Status)
	assert.Equal(t, "A", cell.ReservedName)
	assert.Equal(t, "A", got.ReservedName, "reserved name is trimmed before the store")
	assert.True(t, got.ResetAmount, "default policy clears amounts on reset")
}

func TestUpsertRejectsBeforeMutation(t *testing.T) {
	cases := []struct {
		name    string
		req     domain.UpsertShiftRequest
		wantErr error
	}{
		{
			name:    "negative slot",
			req:     domain.UpsertShiftRequest{UserID: 1, Date: "2026-08-29", SlotIndex: -1, Status: "reserved", ReservedName: "A"},
			wantErr: domain.ErrInvalidSlot,
		},
		{
			name:    "slot past end",
			req:     domain.UpsertShiftRequest{UserID: 1, Date: "2026-08-29", SlotIndex: 6, Status: "busy"},
			wantErr: domain.ErrInvalidSlot,
		},
		{
			name:    "reserved without name",
			req:     domain.UpsertShiftRequest{UserID: 1, Date: "2026-08-29", SlotIndex: 0, Status: "reserved", ReservedName: "  "},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown status",
			req:     domain.UpsertShiftRequest{UserID: 1, Date: "2026-08-29", SlotIndex: 0, Status: "open"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "malformed date",
			req:     domain.UpsertShiftRequest{UserID: 1, Date: "29/08/2026", SlotIndex: 0, Status: "busy"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			mutated := false
			shifts := fakeShifts{upsertFn: func(context.Context, repository.UpsertShiftParams) (domain.ShiftCell, error) {
				mutated = true
				return domain.ShiftCell{}, nil
			}}
			svc := newShiftService(shifts, fakeUsers{}, config.Default().Policy)

			_, err := svc.Upsert(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, mutated, "validation failures must not reach the store")
		})
	}
}

func TestUpsertUnknownUser(t *testing.T) {
	users := fakeUsers{getFn: func(_ context.Context, id int64) (domain.User, error) {
		return domain.User{}, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}}
	svc := newShiftService(fakeShifts{}, users, config.Default().Policy)

	_, err := svc.Upsert(context.Background(), domain.UpsertShiftRequest{
		UserID: 99, Date: "2026-08-29", SlotIndex: 0, Status: "busy",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpsertClearRespectsPolicy(t *testing.T) {
	for _, reset := range []bool{true, false} {
		var got repository.UpsertShiftParams
		shifts := fakeShifts{upsertFn: func(_ context.Context, p repository.UpsertShiftParams) (domain.ShiftCell, error) {
			got = p
			return domain.ShiftCell{Status: domain.StatusEmpty}, nil
		}}
		pol := config.Default().Policy
		pol.ResetAmountOnClear = reset
		svc := newShiftService(shifts, fakeUsers{}, pol)

		_, err := svc.Upsert(context.Background(), domain.UpsertShiftRequest{
			UserID: 1, Date: "2026-08-29", SlotIndex: 1, Status: "empty",
		})
		require.NoError(t, err)
		assert.Equal(t, reset, got.ResetAmount)
	}
}

func TestGetShiftsForDateFiltersCategory(t *testing.T) {
	host := domain.CategoryHost
	maid := domain.CategoryMaid
	shifts := fakeShifts{listFn: func(context.Context, string) ([]repository.DatedCell, error) {
		return []repository.DatedCell{
			{Cell: domain.ShiftCell{UserID: 1, SlotIndex: 0, Status: domain.StatusReserved}, UserCategory: &host},
			{Cell: domain.ShiftCell{UserID: 2, SlotIndex: 1, Status: domain.StatusBusy}, UserCategory: &maid},
			{Cell: domain.ShiftCell{UserID: 3, SlotIndex: 2, Status: domain.StatusReserved}, UserCategory: nil},
		}, nil
	}}
	svc := newShiftService(shifts, fakeUsers{}, config.Default().Policy)

	cells, err := svc.GetShiftsForDate(context.Background(), domain.CategoryHost, "2026-08-29")
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, int64(1), cells[0].UserID)
}
