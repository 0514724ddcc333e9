package domain

import "time"

type Category string

const (
	CategoryHost Category = "host"
	CategoryMaid Category = "maid"
)

func (c Category) Valid() bool {
	return c == CategoryHost || c == CategoryMaid
}

type ShiftStatus string

const (
	StatusEmpty    ShiftStatus = "empty"
	StatusReserved ShiftStatus = "reserved"
	StatusBusy     ShiftStatus = "busy"
)

func (s ShiftStatus) Valid() bool {
	return s == StatusEmpty || s == StatusReserved || s == StatusBusy
}

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	IconURL   string    `json:"icon_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ShiftCell is one staff member's state for one slot on one date.
// An absent row means status=empty.
type ShiftCell struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"user_id"`
	Date         string      `json:"date"` // YYYY-MM-DD
	SlotIndex    int         `json:"slot_index"`
	Status       ShiftStatus `json:"status"`
	ReservedName string      `json:"reserved_name,omitempty"`
	TotalAmount  int64       `json:"total_amount"`
	Version      int64       `json:"version"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type MenuItem struct {
	ID          int64     `json:"id"`
	Category    Category  `json:"category"`
	OwnerUserID *int64    `json:"owner_user_id,omitempty"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"` // rrc
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderLine is one priced item attached to a slot's service session.
// Name and price are copied from the menu at write time; later menu
// edits never rewrite recorded lines.
type OrderLine struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Category  Category  `json:"category"`
	SlotIndex int       `json:"slot_index"`
	ItemName  string    `json:"item_name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

type BatchLine struct {
	ItemName  string `json:"item_name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// OrderBatch is the durable snapshot written when a slot's service
// window is closed out.
type OrderBatch struct {
	BatchID   string      `json:"batch_id"`
	Date      string      `json:"date"`
	Category  Category    `json:"category"`
	SlotIndex int         `json:"slot_index"`
	Lines     []BatchLine `json:"lines"`
	Total     int64       `json:"total"`
	ClosedAt  time.Time   `json:"closed_at"`
}

// SumLines computes the running total of live lines in rrc.
func SumLines(lines []OrderLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}
