package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"shiftboard/internal/domain"
)

type UpsertShiftParams struct {
	UserID       int64
	Date         string
	SlotIndex    int
	Status       domain.ShiftStatus
	ReservedName string
	AmountDelta  int64
	// ExpectedVersion rejects stale writes; nil means last-write-wins.
	ExpectedVersion *int64
	// ResetAmount deletes the row when clearing to empty, dropping the
	// accumulated amount with it.
	ResetAmount bool
}

// DatedCell carries the owning user's category alongside the cell so
// the read path can tell "other category" apart from "user deleted".
type DatedCell struct {
	Cell         domain.ShiftCell
	UserCategory *domain.Category
}

type FinishBatchParams struct {
	BatchID   string
	Date      string
	Category  domain.Category
	SlotIndex int
	ClosedAt  time.Time
	// ClearLines archives the live lines into the batch, guaranteeing
	// at-most-once accounting per finish.
	ClearLines bool
}

type UsersRepo interface {
	CreateUser(ctx context.Context, name string, category domain.Category, iconURL string) (domain.User, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
	ListUsers(ctx context.Context, category domain.Category) ([]domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type MenuRepo interface {
	CreateItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)
	ListItems(ctx context.Context, category domain.Category) ([]domain.MenuItem, error)
	DeleteItem(ctx context.Context, id int64) error
}

type ShiftsRepo interface {
	Upsert(ctx context.Context, p UpsertShiftParams) (domain.ShiftCell, error)
	ListForDate(ctx context.Context, date string) ([]DatedCell, error)
}

type OrdersRepo interface {
	AddLine(ctx context.Context, line domain.OrderLine) (domain.OrderLine, error)
	ListLines(ctx context.Context, date string, category domain.Category, slotIndex int) ([]domain.OrderLine, error)
	DeleteLine(ctx context.Context, id int64) error
	FinishBatch(ctx context.Context, p FinishBatchParams) (domain.OrderBatch, error)
	ListHistory(ctx context.Context) ([]domain.OrderBatch, error)
	DeleteHistoryEntry(ctx context.Context, batchID string) error
}

type Repository struct {
	Users  UsersRepo
	Menu   MenuRepo
	Shifts ShiftsRepo
	Orders OrdersRepo
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Users:  NewUsersPG(pool),
		Menu:   NewMenuPG(pool),
		Shifts: NewShiftsPG(pool),
		Orders: NewOrdersPG(pool),
	}
}
