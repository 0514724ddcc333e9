package service

import (
	"context"
	"encoding/json"
	"time"

	"shiftboard/internal/common/logger"
	"shiftboard/internal/config"
	"shiftboard/internal/repository"
)

// EventPublisher feeds shift and batch events to external
// presentation/export collaborators. A nil publisher disables the
// feed; core semantics never depend on publish success.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type Service struct {
	Shifts    *ShiftService
	Orders    *OrderService
	Board     *BoardService
	Directory *DirectoryService
	Menu      *MenuService
}

func New(repo *repository.Repository, pub EventPublisher, lg *logger.Logger, pol config.Policy) *Service {
	return &Service{
		Shifts:    &ShiftService{shifts: repo.Shifts, users: repo.Users, pub: pub, lg: lg, policy: pol},
		Orders:    &OrderService{orders: repo.Orders, pub: pub, lg: lg, policy: pol},
		Board:     &BoardService{users: repo.Users, shifts: repo.Shifts, lg: lg},
		Directory: &DirectoryService{users: repo.Users, lg: lg},
		Menu:      &MenuService{menu: repo.Menu, users: repo.Users},
	}
}

const dateLayout = "2006-01-02"

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func publishEvent(ctx context.Context, pub EventPublisher, lg *logger.Logger, key string, payload any) {
	if pub == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		lg.Error("event_marshal_failed", err, map[string]any{"routing_key": key})
		return
	}
	if err := pub.Publish(ctx, key, body); err != nil {
		lg.Warn("event_publish_failed", map[string]any{"routing_key": key, "error": err.Error()})
	}
}
