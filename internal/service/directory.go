package service

import (
	"context"
	"fmt"
	"strings"

	"shiftboard/internal/common/logger"
	"shiftboard/internal/domain"
	"shiftboard/internal/repository"
)

type DirectoryService struct {
	users repository.UsersRepo
	lg    *logger.Logger
}

func (s *DirectoryService) Register(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.User{}, fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	cat := domain.Category(req.Category)
	if !cat.Valid() {
		return domain.User{}, fmt.Errorf("category %q: %w", req.Category, domain.ErrValidation)
	}

	u, err := s.users.CreateUser(ctx, name, cat, req.IconURL)
	if err != nil {
		return domain.User{}, err
	}
	s.lg.Info("user_registered", map[string]any{"user_id": u.ID, "category": string(u.Category)})
	return u, nil
}

func (s *DirectoryService) List(ctx context.Context, category string) ([]domain.User, error) {
	cat := domain.Category(category)
	if !cat.Valid() {
		return nil, fmt.Errorf("category %q: %w", category, domain.ErrValidation)
	}
	return s.users.ListUsers(ctx, cat)
}

// Delete removes a staff member; their shift rows and owned menu rows
// cascade away in the store.
func (s *DirectoryService) Delete(ctx context.Context, id int64) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.lg.Info("user_deleted", map[string]any{"user_id": id})
	return nil
}
