package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftboard/internal/common/logger"
	"shiftboard/internal/domain"
	"shiftboard/internal/repository"
	"shiftboard/internal/timeslot"
)

func catPtr(c domain.Category) *domain.Category { return &c }

func TestBuildShiftViewGrid(t *testing.T) {
	users := []domain.User{
		{ID: 10, Name: "Aki", Category: domain.CategoryMaid},
		{ID: 11, Name: "Rin", Category: domain.CategoryMaid},
	}
	cells := []repository.DatedCell{
		{
			Cell: domain.ShiftCell{
				UserID: 10, Date: "2026-08-29", SlotIndex: 2,
				Status: domain.StatusReserved, ReservedName: "Tanaka", TotalAmount: 4500,
			},
			UserCategory: catPtr(domain.CategoryMaid),
		},
		// Other category never leaks into the maid board.
		{
			Cell:         domain.ShiftCell{UserID: 50, Date: "2026-08-29", SlotIndex: 2, Status: domain.StatusBusy},
			UserCategory: catPtr(domain.CategoryHost),
		},
	}

	svc := &BoardService{
		users:  fakeUsers{listFn: func(context.Context, domain.Category) ([]domain.User, error) { return users, nil }},
		shifts: fakeShifts{listFn: func(context.Context, string) ([]repository.DatedCell, error) { return cells, nil }},
		lg:     logger.New("test"),
	}

	view, err := svc.BuildShiftView(context.Background(), domain.CategoryMaid, "2026-08-29")
	require.NoError(t, err)

	require.Len(t, view.Rows, timeslot.Count())
	for i, row := range view.Rows {
		assert.Equal(t, i, row.Slot.Index)
		assert.Equal(t, timeslot.Label(i), row.Slot.Label)
		require.Len(t, row.Cells, len(users))
	}

	got := view.Rows[2].Cells[0]
	assert.Equal(t, domain.StatusReserved, got.Status)
	assert.Equal(t, "Tanaka", got.ReservedName)
	assert.Equal(t, int64(4500), got.DisplayAmount)

	// Rin has no rows at all and renders empty everywhere.
	for _, row := range view.Rows {
		assert.Equal(t, domain.StatusEmpty, row.Cells[1].Status)
		assert.Equal(t, int64(11), row.Cells[1].UserID)
	}
	// The host cell must not have landed anywhere.
	for _, row := range view.Rows {
		for _, c := range row.Cells {
			assert.NotEqual(t, int64(50), c.UserID)
		}
	}
}

func TestBuildShiftViewDropsOrphans(t *testing.T) {
	cells := []repository.DatedCell{
		{
			Cell:         domain.ShiftCell{UserID: 99, Date: "2026-08-29", SlotIndex: 0, Status: domain.StatusBusy},
			UserCategory: nil, // owning user deleted
		},
	}
	svc := &BoardService{
		users: fakeUsers{listFn: func(context.Context, domain.Category) ([]domain.User, error) {
			return []domain.User{{ID: 1, Name: "Aki", Category: domain.CategoryHost}}, nil
		}},
		shifts: fakeShifts{listFn: func(context.Context, string) ([]repository.DatedCell, error) { return cells, nil }},
		lg:     logger.New("test"),
	}

	view, err := svc.BuildShiftView(context.Background(), domain.CategoryHost, "2026-08-29")
	require.NoError(t, err)
	for _, row := range view.Rows {
		assert.Equal(t, domain.StatusEmpty, row.Cells[0].Status)
	}
}

func TestBuildShiftViewShowsAccumulatedAmount(t *testing.T) {
	// The store accumulates across finishes (450 then 100); the view
	// displays the running total as-is.
	cells := []repository.DatedCell{
		{
			Cell: domain.ShiftCell{
				UserID: 10, Date: "2026-08-29", SlotIndex: 3,
				Status: domain.StatusReserved, ReservedName: "Tanaka",
				TotalAmount: 550, Version: 3,
			},
			UserCategory: catPtr(domain.CategoryMaid),
		},
	}
	svc := &BoardService{
		users: fakeUsers{listFn: func(context.Context, domain.Category) ([]domain.User, error) {
			return []domain.User{{ID: 10, Name: "Aki", Category: domain.CategoryMaid}}, nil
		}},
		shifts: fakeShifts{listFn: func(context.Context, string) ([]repository.DatedCell, error) { return cells, nil }},
		lg:     logger.New("test"),
	}

	view, err := svc.BuildShiftView(context.Background(), domain.CategoryMaid, "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, int64(550), view.Rows[3].Cells[0].DisplayAmount)
}

func TestBuildShiftViewValidation(t *testing.T) {
	svc := &BoardService{users: fakeUsers{}, shifts: fakeShifts{}, lg: logger.New("test")}

	_, err := svc.BuildShiftView(context.Background(), "vip", "2026-08-29")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.BuildShiftView(context.Background(), domain.CategoryHost, "29-08-2026")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
