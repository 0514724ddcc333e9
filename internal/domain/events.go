package domain

import "time"

// Outbound event payloads for presentation/export collaborators.

type ShiftUpdatedEvent struct {
	UserID       int64       `json:"user_id"`
	Category     Category    `json:"category"`
	Date         string      `json:"date"`
	SlotIndex    int         `json:"slot_index"`
	Status       ShiftStatus `json:"status"`
	ReservedName string      `json:"reserved_name,omitempty"`
	TotalAmount  int64       `json:"total_amount"`
	Version      int64       `json:"version"`
	OccurredAt   time.Time   `json:"occurred_at"`
}

type BatchClosedEvent struct {
	BatchID    string    `json:"batch_id"`
	Category   Category  `json:"category"`
	Date       string    `json:"date"`
	SlotIndex  int       `json:"slot_index"`
	Total      int64     `json:"total"`
	LineCount  int       `json:"line_count"`
	OccurredAt time.Time `json:"occurred_at"`
}
