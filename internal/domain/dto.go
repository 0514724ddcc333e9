package domain

type CreateUserRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	IconURL  string `json:"icon_url"`
}

type CreateMenuItemRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	OwnerUserID *int64 `json:"owner_user_id,omitempty"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

type UpsertShiftRequest struct {
	UserID       int64  `json:"user_id"`
	Date         string `json:"date"`
	SlotIndex    int    `json:"slot_index"`
	Status       string `json:"status"`
	ReservedName string `json:"reserved_name"`
	AmountDelta  int64  `json:"amount_delta,omitempty"`
	// ExpectedVersion, when set, rejects stale writes with a conflict.
	// Absent means last-write-wins.
	ExpectedVersion *int64 `json:"expected_version,omitempty"`
}

type AddOrderLineRequest struct {
	Date      string `json:"date"`
	Category  string `json:"category"`
	SlotIndex int    `json:"slot_index"`
	ItemName  string `json:"item_name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type FinishBatchRequest struct {
	Date      string `json:"date"`
	Category  string `json:"category"`
	SlotIndex int    `json:"slot_index"`
}

type SlotInfo struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

type ViewCell struct {
	UserID        int64       `json:"user_id"`
	Status        ShiftStatus `json:"status"`
	ReservedName  string      `json:"reserved_name,omitempty"`
	DisplayAmount int64       `json:"display_amount"`
}

type ViewRow struct {
	Slot  SlotInfo   `json:"slot"`
	Cells []ViewCell `json:"cells"`
}

// ShiftView is the joined read model: one row per time slot, one cell
// per staff member of the requested category.
type ShiftView struct {
	Date     string    `json:"date"`
	Category Category  `json:"category"`
	Users    []User    `json:"users"`
	Rows     []ViewRow `json:"rows"`
}
