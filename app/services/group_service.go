package services

import (
	"context"
	"errors"
	"fmt"

	"yatube/app/models"
	"yatube/app/repositories"
)

type GroupService struct {
	store *repositories.Store
}

func NewGroupService(store *repositories.Store) *GroupService {
	return &GroupService{store: store}
}

// Create validates and stores a group; the slug must be free.
func (s *GroupService) Create(ctx context.Context, group *models.Group) error {
	if err := group.Validate(); err != nil {
		return fmt.Errorf("invalid group: %w", err)
	}
	if err := s.store.Groups.Create(ctx, group); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return fmt.Errorf("group %q: %w", group.Slug, err)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (s *GroupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.store.Groups.List(ctx)
}
