package service

import (
	"context"
	"fmt"
	"strings"

	"shiftboard/internal/domain"
	"shiftboard/internal/repository"
)

type MenuService struct {
	menu  repository.MenuRepo
	users repository.UsersRepo
}

func (s *MenuService) AddItem(ctx context.Context, req domain.CreateMenuItemRequest) (domain.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.MenuItem{}, fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	cat := domain.Category(req.Category)
	if !cat.Valid() {
		return domain.MenuItem{}, fmt.Errorf("category %q: %w", req.Category, domain.ErrValidation)
	}
	if req.Price < 0 {
		return domain.MenuItem{}, fmt.Errorf("price %d must not be negative: %w", req.Price, domain.ErrValidation)
	}
	if req.OwnerUserID != nil {
		if _, err := s.users.GetUser(ctx, *req.OwnerUserID); err != nil {
			return domain.MenuItem{}, err
		}
	}

	return s.menu.CreateItem(ctx, domain.MenuItem{
		Category:    cat,
		OwnerUserID: req.OwnerUserID,
		Name:        name,
		Price:       req.Price,
		Description: req.Description,
	})
}

func (s *MenuService) List(ctx context.Context, category string) ([]domain.MenuItem, error) {
	cat := domain.Category(category)
	if !cat.Valid() {
		return nil, fmt.Errorf("category %q: %w", category, domain.ErrValidation)
	}
	return s.menu.ListItems(ctx, cat)
}

func (s *MenuService) Delete(ctx context.Context, id int64) error {
	return s.menu.DeleteItem(ctx, id)
}
